package marker

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"
)

// Preprocess is a fixed transformation applied to a cropped region before
// the symbol is searched for.
type Preprocess struct {
	Grayscale bool `yaml:"grayscale"`

	// Invert swaps dark and light, for markers drawn light-on-dark.
	Invert bool `yaml:"invert"`

	// Upscale enlarges the region by the integer factor using
	// nearest-neighbour resampling, which keeps module edges sharp.
	// Values below 2 disable it.
	Upscale int `yaml:"upscale"`
}

func (p Preprocess) IsNoop() bool {
	return !p.Grayscale && !p.Invert && p.Upscale < 2
}

func (p Preprocess) String() string {
	if p.IsNoop() {
		return "none"
	}
	return fmt.Sprintf("grayscale:%t,invert:%t,upscale:%d", p.Grayscale, p.Invert, p.Upscale)
}

func (p Preprocess) Apply(img image.Image) image.Image {
	if p.Grayscale {
		img = effect.Grayscale(img)
	}
	if p.Invert {
		img = effect.Invert(img)
	}
	if p.Upscale >= 2 {
		b := img.Bounds()
		img = transform.Resize(img, b.Dx()*p.Upscale, b.Dy()*p.Upscale, transform.NearestNeighbor)
	}
	return img
}
