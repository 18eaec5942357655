// Package testimage renders synthetic frames with QR markers for tests.
package testimage

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// QR renders text as a square QR symbol of the given size, including the
// quiet zone.
func QR(text string, size int) (image.Image, error) {
	m, err := qrcode.NewQRCodeWriter().Encode(text, gozxing.BarcodeFormat_QR_CODE, size, size, nil)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Placement puts a marker with the given text at the given top-left point.
// Inverted markers are drawn light-on-dark.
type Placement struct {
	Text     string
	At       image.Point
	Size     int
	Inverted bool
}

func Number(v uint64, at image.Point, size int) Placement {
	return Placement{
		Text: strconv.FormatUint(v, 10),
		At:   at,
		Size: size,
	}
}

// Frame returns a white frame with the given markers drawn on it.
func Frame(width, height int, placements ...Placement) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	for _, p := range placements {
		qr, err := QR(p.Text, p.Size)
		if err != nil {
			return nil, err
		}
		dst := image.Rectangle{Min: p.At, Max: p.At.Add(qr.Bounds().Size())}
		draw.Draw(img, dst, qr, qr.Bounds().Min, draw.Src)
		if p.Inverted {
			invert(img, dst.Intersect(img.Bounds()))
		}
	}
	return img, nil
}

func invert(img *image.RGBA, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.RGBAAt(x, y)
			img.SetRGBA(x, y, color.RGBA{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: c.A})
		}
	}
}
