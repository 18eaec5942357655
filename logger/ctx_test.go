package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCtxWithLogger(t *testing.T) {
	l := New(LevelDebug)
	ctx := CtxWithLogger(context.Background(), l)
	require.Equal(t, LevelDebug, FromCtx(ctx).Level())

	ctx = CtxWithField(ctx, "url", "file.mp4")
	require.Equal(t, LevelDebug, FromCtx(ctx).Level())
}
