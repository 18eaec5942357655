package source

import (
	"context"
	"errors"
	"image"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlice(t *testing.T) {
	ctx := context.Background()

	frames := []image.Image{
		image.NewGray(image.Rect(0, 0, 1, 1)),
		image.NewGray(image.Rect(0, 0, 2, 2)),
	}
	s := NewSlice(frames...)

	_, ok := s.FrameRate()
	require.False(t, ok)

	for _, want := range frames {
		got, err := s.ReadFrame(ctx)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := s.ReadFrame(ctx)
	require.ErrorIs(t, err, io.EOF)

	require.NoError(t, s.Close(ctx))
	require.NoError(t, s.Close(ctx))
	require.Equal(t, uint64(2), s.CloseCount.Load())

	_, err = s.ReadFrame(ctx)
	require.ErrorAs(t, err, &ErrClosed{})
}

func TestSliceInjectedError(t *testing.T) {
	ctx := context.Background()
	errBroken := errors.New("broken")

	s := NewSlice(image.NewGray(image.Rect(0, 0, 1, 1)), image.NewGray(image.Rect(0, 0, 1, 1)))
	s.Errors = map[int]error{1: errBroken}

	_, err := s.ReadFrame(ctx)
	require.NoError(t, err)
	_, err = s.ReadFrame(ctx)
	require.ErrorIs(t, err, errBroken)
}

func TestOpenMissingFile(t *testing.T) {
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "does-not-exist.mp4")
	s, err := Open(ctx, "", path, LibAVConfig{})
	require.Error(t, err)
	require.Nil(t, s)

	var errOpen ErrOpen
	require.ErrorAs(t, err, &errOpen)
	require.Equal(t, path, errOpen.URL)
}

func TestOpenEmptyURL(t *testing.T) {
	_, err := NewLibAV(context.Background(), "", LibAVConfig{})
	require.ErrorAs(t, err, &ErrOpen{})
}

func TestOpenUnknownKind(t *testing.T) {
	_, err := Open(context.Background(), "gstreamer", "file.mp4", LibAVConfig{})
	require.Error(t, err)
}
