// marker.go defines the Decoder interface for embedded frame-index markers.

// Package marker extracts embedded integer markers (QR symbols) from a
// rectangular region of a video frame.
//
// A failed decode is a routine outcome and is reported as an absent value,
// never as an error.
package marker

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/xaionaro-go/avlatency/types"
)

// Value is the integer payload of a marker.
type Value uint64

type Decoder interface {
	fmt.Stringer

	// Decode returns the marker value found in the region of the frame.
	// The bool is false if the region holds no marker, more than one marker,
	// or a payload that is not a base-10 non-negative integer.
	//
	// Implementations must be safe for concurrent use.
	Decode(ctx context.Context, frame image.Image, region types.Region) (Value, bool)
}

// Func adapts a plain function into a Decoder.
type Func func(ctx context.Context, frame image.Image, region types.Region) (Value, bool)

var _ Decoder = Func(nil)

func (fn Func) Decode(ctx context.Context, frame image.Image, region types.Region) (Value, bool) {
	return fn(ctx, frame, region)
}

func (fn Func) String() string {
	return "Func"
}

// ParsePayload interprets a decoded marker text.
func ParsePayload(text string) (Value, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(text, 10, 63)
	if err != nil {
		return 0, false
	}
	return Value(v), true
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Crop returns the part of the frame covered by the region, clamped to the
// frame bounds. It returns false if the intersection is empty.
func Crop(frame image.Image, region types.Region) (image.Image, bool) {
	if frame == nil {
		return nil, false
	}
	rect := region.Clamp(frame.Bounds())
	if rect.Empty() {
		return nil, false
	}
	if s, ok := frame.(subImager); ok {
		return s.SubImage(rect), true
	}
	return transform.Crop(frame, rect), true
}
