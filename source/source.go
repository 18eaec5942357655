// source.go defines the Source interface for pull-based frame readers.

// Package source provides video frame sources for the analyzer.
package source

import (
	"context"
	"fmt"
	"image"
)

// Source yields decoded video frames in presentation order.
type Source interface {
	fmt.Stringer

	// ReadFrame blocks until the next frame is available. It returns
	// io.EOF once the stream is exhausted. The returned image is owned by
	// the caller and is not modified by later calls.
	ReadFrame(ctx context.Context) (image.Image, error)

	// Close releases the underlying resources. It is safe to call it
	// more than once.
	Close(ctx context.Context) error
}

// FrameRater is implemented by sources that know their native frame rate.
type FrameRater interface {
	FrameRate() (Rational, bool)
}

type ErrOpen struct {
	URL string
	Err error
}

func (e ErrOpen) Error() string {
	return fmt.Sprintf("unable to open '%s': %v", e.URL, e.Err)
}

func (e ErrOpen) Unwrap() error {
	return e.Err
}

type ErrClosed struct{}

func (ErrClosed) Error() string {
	return "the source is closed"
}
