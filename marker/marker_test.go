package marker

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avlatency/types"
)

func TestParsePayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		want   Value
		wantOK bool
	}{
		{"0", 0, true},
		{"12345", 12345, true},
		{" 17\n", 17, true},
		{"007", 7, true},
		{"", 0, false},
		{"   ", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{"1.5", 0, false},
		{"0x10", 0, false},
		{"frame 3", 0, false},
		{"99999999999999999999", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParsePayload(tt.input)
		require.Equal(t, tt.wantOK, ok, "%q", tt.input)
		require.Equal(t, tt.want, got, "%q", tt.input)
	}
}

// noSubImage hides the SubImage method of the wrapped image.
type noSubImage struct {
	image.Image
}

func TestCrop(t *testing.T) {
	t.Parallel()

	src := image.NewRGBA(image.Rect(0, 0, 100, 80))

	img, ok := Crop(src, types.NewRegion(10, 10, 30, 40))
	require.True(t, ok)
	require.Equal(t, image.Rect(10, 10, 30, 40), img.Bounds())

	img, ok = Crop(src, types.NewRegion(90, 70, 500, 500))
	require.True(t, ok)
	require.Equal(t, image.Rect(90, 70, 100, 80), img.Bounds())

	img, ok = Crop(noSubImage{src}, types.NewRegion(10, 10, 30, 40))
	require.True(t, ok)
	require.Equal(t, 20, img.Bounds().Dx())
	require.Equal(t, 30, img.Bounds().Dy())

	_, ok = Crop(src, types.NewRegion(100, 0, 200, 80))
	require.False(t, ok)

	_, ok = Crop(nil, types.NewRegion(0, 0, 1, 1))
	require.False(t, ok)
}

func TestPreprocessApply(t *testing.T) {
	t.Parallel()

	src := image.NewRGBA(image.Rect(0, 0, 10, 6))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	require.True(t, Preprocess{}.IsNoop())
	require.Equal(t, src, Preprocess{}.Apply(src))

	out := Preprocess{Grayscale: true, Invert: true, Upscale: 3}.Apply(src)
	require.Equal(t, 30, out.Bounds().Dx())
	require.Equal(t, 18, out.Bounds().Dy())

	r, g, b, _ := out.At(out.Bounds().Min.X, out.Bounds().Min.Y).RGBA()
	require.Equal(t, uint32(0xffff), r)
	require.Equal(t, r, g)
	require.Equal(t, r, b)
}

func TestNew(t *testing.T) {
	d, err := New("", Preprocess{})
	require.NoError(t, err)
	require.IsType(t, &ZXing{}, d)

	d, err = New("ZXing", Preprocess{Upscale: 2})
	require.NoError(t, err)
	require.Equal(t, 2, d.(*ZXing).Preprocess.Upscale)

	_, err = New("tesseract", Preprocess{})
	require.Error(t, err)
}

func TestFunc(t *testing.T) {
	var d Decoder = Func(func(_ context.Context, _ image.Image, r types.Region) (Value, bool) {
		return Value(r.XMin), r.XMin > 0
	})
	v, ok := d.Decode(context.Background(), nil, types.NewRegion(5, 0, 6, 1))
	require.True(t, ok)
	require.Equal(t, Value(5), v)
}
