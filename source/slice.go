package source

import (
	"context"
	"fmt"
	"image"
	"io"

	"go.uber.org/atomic"
)

// Slice serves frames from memory.
type Slice struct {
	Frames []image.Image

	// Errors makes ReadFrame fail with the given error when the frame of
	// the given index is requested.
	Errors map[int]error

	Rate *Rational

	next       int
	CloseCount atomic.Uint64
}

var (
	_ Source     = (*Slice)(nil)
	_ FrameRater = (*Slice)(nil)
)

func NewSlice(frames ...image.Image) *Slice {
	return &Slice{Frames: frames}
}

func (s *Slice) String() string {
	return fmt.Sprintf("Slice(%d frames)", len(s.Frames))
}

func (s *Slice) ReadFrame(ctx context.Context) (image.Image, error) {
	if s.CloseCount.Load() > 0 {
		return nil, ErrClosed{}
	}
	if err := s.Errors[s.next]; err != nil {
		return nil, err
	}
	if s.next >= len(s.Frames) {
		return nil, io.EOF
	}
	f := s.Frames[s.next]
	s.next++
	return f, nil
}

func (s *Slice) Close(ctx context.Context) error {
	s.CloseCount.Inc()
	return nil
}

func (s *Slice) FrameRate() (Rational, bool) {
	if s.Rate == nil {
		return Rational{}, false
	}
	return *s.Rate, true
}
