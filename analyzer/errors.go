package analyzer

import (
	"fmt"
)

// ErrSourceUnreadable means no frame could be read at all: the source
// failed on the very first frame (or contained none).
type ErrSourceUnreadable struct {
	Source string
	Err    error
}

func (e ErrSourceUnreadable) Error() string {
	return fmt.Sprintf("unable to read the first frame of %s: %v", e.Source, e.Err)
}

func (e ErrSourceUnreadable) Unwrap() error {
	return e.Err
}

func (ErrSourceUnreadable) Is(target error) bool {
	_, ok := target.(ErrSourceUnreadable)
	return ok
}

// ErrStreamRead means the source failed after at least one frame was read.
// It is returned together with the partial Result.
type ErrStreamRead struct {
	FrameIndex uint64
	Err        error
}

func (e ErrStreamRead) Error() string {
	return fmt.Sprintf("unable to read frame #%d: %v", e.FrameIndex, e.Err)
}

func (e ErrStreamRead) Unwrap() error {
	return e.Err
}

func (ErrStreamRead) Is(target error) bool {
	_, ok := target.(ErrStreamRead)
	return ok
}

// ErrEmptyResult means not a single frame had both markers decoded.
type ErrEmptyResult struct {
	FramesRead uint64
}

func (e ErrEmptyResult) Error() string {
	return fmt.Sprintf("no frame out of %d had both markers decodable", e.FramesRead)
}

func (ErrEmptyResult) Is(target error) bool {
	_, ok := target.(ErrEmptyResult)
	return ok
}

type ErrInvalidConfig struct {
	Err error
}

func (e ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid analyzer config: %v", e.Err)
}

func (e ErrInvalidConfig) Unwrap() error {
	return e.Err
}

type ErrBusy struct{}

func (ErrBusy) Error() string {
	return "the analyzer is already running"
}
