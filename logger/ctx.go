package logger

import (
	"context"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
)

// FromCtx returns the logger carried by ctx, or the default one.
func FromCtx(ctx context.Context) Logger {
	return logger.FromCtx(ctx)
}

func CtxWithLogger(ctx context.Context, l Logger) context.Context {
	return logger.CtxWithLogger(ctx, l)
}

// CtxWithField attaches a structured field to every message logged
// through the returned context.
func CtxWithField(ctx context.Context, key string, value any) context.Context {
	return belt.WithField(ctx, key, value)
}
