package internal

import (
	"context"
	"runtime"

	"github.com/xaionaro-go/avlatency/logger"
)

// SetFinalizer releases obj through callback if it becomes unreachable
// without being closed explicitly.
func SetFinalizer[T any](
	ctx context.Context,
	obj T,
	callback func(in T),
) {
	runtime.SetFinalizer(obj, func(obj T) {
		logger.Debugf(ctx, "finalizing %T", obj)
		callback(obj)
	})
}
