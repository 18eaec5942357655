package source

import (
	"fmt"
	"image"

	"github.com/asticode/go-astiav"
)

// rgbaConverter converts frames in pixel formats that Go's image package
// cannot represent directly.
type rgbaConverter struct {
	*astiav.SoftwareScaleContext
	dst *astiav.Frame
}

func newRGBAConverter(src *astiav.Frame) (*rgbaConverter, error) {
	swSCtx, err := astiav.CreateSoftwareScaleContext(
		src.Width(),
		src.Height(),
		src.PixelFormat(),
		src.Width(),
		src.Height(),
		astiav.PixelFormatRgba,
		astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagBilinear),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create a software scale context: %w", err)
	}

	dst := astiav.AllocFrame()
	dst.SetWidth(src.Width())
	dst.SetHeight(src.Height())
	dst.SetPixelFormat(astiav.PixelFormatRgba)
	if err := dst.AllocBuffer(1); err != nil {
		dst.Free()
		swSCtx.Free()
		return nil, fmt.Errorf("unable to allocate frame buffer: %w", err)
	}

	return &rgbaConverter{
		SoftwareScaleContext: swSCtx,
		dst:                  dst,
	}, nil
}

func (c *rgbaConverter) String() string {
	return fmt.Sprintf(
		"rgbaConverter(%dx%d:%s -> %dx%d:%s)",
		c.SoftwareScaleContext.SourceWidth(),
		c.SoftwareScaleContext.SourceHeight(),
		c.SoftwareScaleContext.SourcePixelFormat(),
		c.SoftwareScaleContext.DestinationWidth(),
		c.SoftwareScaleContext.DestinationHeight(),
		c.SoftwareScaleContext.DestinationPixelFormat(),
	)
}

func (c *rgbaConverter) Matches(f *astiav.Frame) bool {
	return c.SourceWidth() == f.Width() &&
		c.SourceHeight() == f.Height() &&
		c.SourcePixelFormat() == f.PixelFormat()
}

func (c *rgbaConverter) Convert(src *astiav.Frame) (image.Image, error) {
	if err := c.SoftwareScaleContext.ScaleFrame(src, c.dst); err != nil {
		return nil, fmt.Errorf("unable to scale a frame: %w", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, c.dst.Width(), c.dst.Height()))
	if err := c.dst.Data().ToImage(img); err != nil {
		return nil, fmt.Errorf("unable to convert the image into Go's format: %w", err)
	}
	return img, nil
}

func (c *rgbaConverter) Close() {
	c.dst.Free()
	c.SoftwareScaleContext.Free()
}
