//go:build with_cv
// +build with_cv

package source

import (
	"context"
	"fmt"
	"image"
	"io"

	"github.com/xaionaro-go/avlatency/logger"
	"github.com/xaionaro-go/xsync"
	"gocv.io/x/gocv"
)

// OpenCV reads frames through OpenCV's VideoCapture.
type OpenCV struct {
	URL string

	locker  xsync.Mutex
	capture *gocv.VideoCapture
	mat     gocv.Mat
	closed  bool
}

var (
	_ Source     = (*OpenCV)(nil)
	_ FrameRater = (*OpenCV)(nil)
)

func newOpenCV(
	ctx context.Context,
	url string,
) (Source, error) {
	logger.Debugf(ctx, "opening '%s' with OpenCV", url)
	capture, err := gocv.OpenVideoCapture(url)
	if err != nil {
		return nil, ErrOpen{URL: url, Err: err}
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, ErrOpen{URL: url, Err: fmt.Errorf("VideoCapture is not opened")}
	}
	return &OpenCV{
		URL:     url,
		capture: capture,
		mat:     gocv.NewMat(),
	}, nil
}

func (s *OpenCV) String() string {
	return fmt.Sprintf("OpenCV(%s)", s.URL)
}

func (s *OpenCV) FrameRate() (Rational, bool) {
	return xsync.DoR2(context.Background(), &s.locker, func() (Rational, bool) {
		if s.closed {
			return Rational{}, false
		}
		fps := s.capture.Get(gocv.VideoCaptureFPS)
		if fps <= 0 {
			return Rational{}, false
		}
		return RationalFromApproxFloat64(fps), true
	})
}

func (s *OpenCV) ReadFrame(ctx context.Context) (image.Image, error) {
	return xsync.DoR2(ctx, &s.locker, func() (image.Image, error) {
		if s.closed {
			return nil, ErrClosed{}
		}
		if !s.capture.Read(&s.mat) || s.mat.Empty() {
			return nil, io.EOF
		}
		img, err := s.mat.ToImage()
		if err != nil {
			return nil, fmt.Errorf("unable to convert the Mat to an image: %w", err)
		}
		return img, nil
	})
}

func (s *OpenCV) Close(ctx context.Context) error {
	return xsync.DoR1(ctx, &s.locker, func() error {
		if s.closed {
			return nil
		}
		s.closed = true
		s.mat.Close()
		return s.capture.Close()
	})
}
