package marker

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avlatency/internal/testimage"
	"github.com/xaionaro-go/avlatency/types"
)

func TestZXingDecode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	single, err := testimage.Frame(640, 360, testimage.Number(42, image.Pt(20, 20), 200))
	require.NoError(t, err)

	twoInOne, err := testimage.Frame(640, 360,
		testimage.Number(1, image.Pt(20, 20), 200),
		testimage.Number(2, image.Pt(400, 20), 200),
	)
	require.NoError(t, err)

	text, err := testimage.Frame(640, 360, testimage.Placement{Text: "hello", At: image.Pt(20, 20), Size: 200})
	require.NoError(t, err)

	negative, err := testimage.Frame(640, 360, testimage.Placement{Text: "-3", At: image.Pt(20, 20), Size: 200})
	require.NoError(t, err)

	nearEdge, err := testimage.Frame(640, 360, testimage.Number(7, image.Pt(440, 160), 200))
	require.NoError(t, err)

	tests := []struct {
		name   string
		frame  image.Image
		region types.Region
		want   Value
		wantOK bool
	}{
		{
			name:   "single marker",
			frame:  single,
			region: types.NewRegion(0, 0, 260, 260),
			want:   42,
			wantOK: true,
		},
		{
			name:   "empty region",
			frame:  single,
			region: types.NewRegion(300, 0, 640, 360),
		},
		{
			name:   "two markers are ambiguous",
			frame:  twoInOne,
			region: types.NewRegion(0, 0, 640, 260),
		},
		{
			name:   "one of two markers",
			frame:  twoInOne,
			region: types.NewRegion(380, 0, 640, 260),
			want:   2,
			wantOK: true,
		},
		{
			name:   "not an integer",
			frame:  text,
			region: types.NewRegion(0, 0, 260, 260),
		},
		{
			name:   "negative integer",
			frame:  negative,
			region: types.NewRegion(0, 0, 260, 260),
		},
		{
			name:   "region partially outside the frame",
			frame:  nearEdge,
			region: types.NewRegion(420, 140, 1000, 1000),
			want:   7,
			wantOK: true,
		},
		{
			name:   "region entirely outside the frame",
			frame:  single,
			region: types.NewRegion(1000, 1000, 1200, 1200),
		},
		{
			name:   "nil frame",
			region: types.NewRegion(0, 0, 10, 10),
		},
	}

	d := NewZXing(Preprocess{})
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := d.Decode(ctx, tt.frame, tt.region)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestZXingDecodeInverted(t *testing.T) {
	ctx := context.Background()

	frame, err := testimage.Frame(400, 300, testimage.Placement{
		Text:     "1234",
		At:       image.Pt(50, 50),
		Size:     200,
		Inverted: true,
	})
	require.NoError(t, err)

	d := NewZXing(Preprocess{Grayscale: true, Invert: true})
	got, ok := d.Decode(ctx, frame, types.NewRegion(50, 50, 250, 250))
	require.True(t, ok)
	require.Equal(t, Value(1234), got)
}

func TestZXingDecodeIsRepeatable(t *testing.T) {
	ctx := context.Background()

	frame, err := testimage.Frame(320, 240, testimage.Number(99, image.Pt(40, 20), 200))
	require.NoError(t, err)

	d := NewZXing(Preprocess{})
	region := types.NewRegion(0, 0, 320, 240)
	first, firstOK := d.Decode(ctx, frame, region)
	for range 3 {
		v, ok := d.Decode(ctx, frame, region)
		require.Equal(t, firstOK, ok)
		require.Equal(t, first, v)
	}
	require.True(t, firstOK)
	require.Equal(t, Value(99), first)
}
