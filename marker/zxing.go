package marker

import (
	"context"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	multiqrcode "github.com/makiuchi-d/gozxing/multi/qrcode"
	"github.com/xaionaro-go/avlatency/logger"
	"github.com/xaionaro-go/avlatency/types"
)

// ZXing finds QR symbols with the pure-Go port of ZXing.
type ZXing struct {
	Preprocess Preprocess
	TryHarder  bool
}

var _ Decoder = (*ZXing)(nil)

func NewZXing(preprocess Preprocess) *ZXing {
	return &ZXing{
		Preprocess: preprocess,
		TryHarder:  true,
	}
}

func (d *ZXing) String() string {
	return fmt.Sprintf("ZXing(preprocess:%s)", d.Preprocess)
}

func (d *ZXing) Decode(
	ctx context.Context,
	frame image.Image,
	region types.Region,
) (Value, bool) {
	img, ok := Crop(frame, region)
	if !ok {
		logger.Tracef(ctx, "region %s is outside of the frame", region)
		return 0, false
	}
	img = d.Preprocess.Apply(img)

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		logger.Tracef(ctx, "unable to binarize region %s: %v", region, err)
		return 0, false
	}

	hints := map[gozxing.DecodeHintType]interface{}{}
	if d.TryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}

	// a reader must not be shared between goroutines
	results, err := multiqrcode.NewQRCodeMultiReader().DecodeMultiple(bmp, hints)
	if err != nil {
		logger.Tracef(ctx, "no marker in region %s: %v", region, err)
		return 0, false
	}
	if len(results) != 1 {
		logger.Tracef(ctx, "ambiguous region %s: %d markers", region, len(results))
		return 0, false
	}

	return ParsePayload(results[0].GetText())
}
