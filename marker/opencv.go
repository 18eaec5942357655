//go:build with_cv
// +build with_cv

package marker

import (
	"context"
	"fmt"
	"image"

	"github.com/xaionaro-go/avlatency/logger"
	"github.com/xaionaro-go/avlatency/types"
	"gocv.io/x/gocv"
)

// OpenCV finds QR symbols with OpenCV's QRCodeDetector.
type OpenCV struct {
	Preprocess Preprocess
}

var _ Decoder = (*OpenCV)(nil)

func newOpenCV(preprocess Preprocess) (Decoder, error) {
	return &OpenCV{Preprocess: preprocess}, nil
}

func (d *OpenCV) String() string {
	return fmt.Sprintf("OpenCV(preprocess:%s)", d.Preprocess)
}

func (d *OpenCV) Decode(
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

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		logger.Tracef(ctx, "unable to convert region %s to a Mat: %v", region, err)
		return 0, false
	}
	defer mat.Close()

	// QRCodeDetector holds native state and is not goroutine-safe
	detector := gocv.NewQRCodeDetector()
	defer detector.Close()

	points := gocv.NewMat()
	defer points.Close()
	if detector.DetectMulti(mat, &points) && points.Total() > 4 {
		logger.Tracef(ctx, "ambiguous region %s: %d corner points", region, points.Total())
		return 0, false
	}

	straight := gocv.NewMat()
	defer straight.Close()
	text := detector.DetectAndDecode(mat, &points, &straight)
	if text == "" {
		logger.Tracef(ctx, "no marker in region %s", region)
		return 0, false
	}

	return ParsePayload(text)
}
