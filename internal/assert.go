package internal

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avlatency/logger"
)

// Assert panics if mustBeTrue is false. The failure is logged first, so
// that it reaches the log sink even if the panic is recovered.
func Assert(
	ctx context.Context,
	mustBeTrue bool,
	extraArgs ...any,
) {
	if mustBeTrue {
		return
	}

	msg := fmt.Sprintf("assertion failed: %v", extraArgs)
	logger.Errorf(ctx, "%s", msg)
	panic(msg)
}
