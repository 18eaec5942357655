package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avlatency/internal"
	"github.com/xaionaro-go/avlatency/logger"
	"github.com/xaionaro-go/xsync"
)

type LibAVConfig struct {
	// InputFormat forces the demuxer (e.g. "v4l2"); empty means autodetect.
	InputFormat string `yaml:"input_format,omitempty"`

	// Options are passed to the demuxer as an AVDictionary.
	Options map[string]string `yaml:"options,omitempty"`

	// DecoderThreads is the decoder thread count; zero lets libav decide.
	DecoderThreads int `yaml:"decoder_threads,omitempty"`
}

// LibAV demuxes and decodes the best video stream of a file or URL.
type LibAV struct {
	URL string

	locker        xsync.Mutex
	formatContext *astiav.FormatContext
	codecContext  *astiav.CodecContext
	stream        *astiav.Stream
	packet        *astiav.Packet
	frame         *astiav.Frame
	converter     *rgbaConverter
	flushed       bool
	closed        bool
}

var (
	_ Source     = (*LibAV)(nil)
	_ FrameRater = (*LibAV)(nil)
)

func NewLibAV(
	ctx context.Context,
	url string,
	cfg LibAVConfig,
) (_ret *LibAV, _err error) {
	ctx = logger.CtxWithField(ctx, "url", url)
	logger.Debugf(ctx, "NewLibAV")
	defer func() { logger.Debugf(ctx, "/NewLibAV: %v", _err) }()

	if url == "" {
		return nil, ErrOpen{URL: url, Err: fmt.Errorf("the provided URL is empty")}
	}

	s := &LibAV{URL: url}
	defer func() {
		if _err != nil {
			s.closeLocked(ctx)
		}
	}()

	s.formatContext = astiav.AllocFormatContext()
	if s.formatContext == nil {
		return nil, ErrOpen{URL: url, Err: fmt.Errorf("unable to allocate a format context")}
	}

	var inputFormat *astiav.InputFormat
	if cfg.InputFormat != "" {
		inputFormat = astiav.FindInputFormat(cfg.InputFormat)
		if inputFormat == nil {
			return nil, ErrOpen{URL: url, Err: fmt.Errorf("unable to find input format by name '%s'", cfg.InputFormat)}
		}
	}

	var dict *astiav.Dictionary
	if len(cfg.Options) > 0 {
		dict = astiav.NewDictionary()
		defer dict.Free()
		for k, v := range cfg.Options {
			logger.Debugf(ctx, "input.Dictionary['%s'] = '%s'", k, v)
			if err := dict.Set(k, v, 0); err != nil {
				return nil, ErrOpen{URL: url, Err: fmt.Errorf("unable to set option '%s': %w", k, err)}
			}
		}
	}

	if err := s.formatContext.OpenInput(url, inputFormat, dict); err != nil {
		s.formatContext.Free()
		s.formatContext = nil
		return nil, ErrOpen{URL: url, Err: err}
	}
	if err := s.formatContext.FindStreamInfo(nil); err != nil {
		s.formatContext.CloseInput()
		s.formatContext.Free()
		s.formatContext = nil
		return nil, ErrOpen{URL: url, Err: fmt.Errorf("unable to get stream info: %w", err)}
	}

	for _, stream := range s.formatContext.Streams() {
		if stream.CodecParameters().MediaType() == astiav.MediaTypeVideo {
			s.stream = stream
			break
		}
	}
	if s.stream == nil {
		return nil, ErrOpen{URL: url, Err: fmt.Errorf("no video stream found")}
	}
	logger.Debugf(ctx, "using stream #%d (codec: %s)", s.stream.Index(), s.stream.CodecParameters().CodecID())

	codec := astiav.FindDecoder(s.stream.CodecParameters().CodecID())
	if codec == nil {
		return nil, ErrOpen{URL: url, Err: fmt.Errorf("unable to find a decoder for codec %s", s.stream.CodecParameters().CodecID())}
	}
	s.codecContext = astiav.AllocCodecContext(codec)
	if s.codecContext == nil {
		return nil, ErrOpen{URL: url, Err: fmt.Errorf("unable to allocate a codec context")}
	}
	if err := s.stream.CodecParameters().ToCodecContext(s.codecContext); err != nil {
		return nil, ErrOpen{URL: url, Err: fmt.Errorf("codecParameters.ToCodecContext(...) returned error: %w", err)}
	}
	if cfg.DecoderThreads > 0 {
		s.codecContext.SetThreadCount(cfg.DecoderThreads)
	}
	if err := s.codecContext.Open(codec, nil); err != nil {
		return nil, ErrOpen{URL: url, Err: fmt.Errorf("unable to open the decoder: %w", err)}
	}

	s.packet = astiav.AllocPacket()
	s.frame = astiav.AllocFrame()
	internal.SetFinalizer(ctx, s, func(s *LibAV) {
		s.closeLocked(ctx)
	})
	return s, nil
}

func (s *LibAV) String() string {
	return fmt.Sprintf("LibAV(%s)", s.URL)
}

// FrameRate returns the average frame rate declared by the container.
func (s *LibAV) FrameRate() (Rational, bool) {
	return xsync.DoR2(context.Background(), &s.locker, func() (Rational, bool) {
		if s.stream == nil {
			return Rational{}, false
		}
		for _, r := range []astiav.Rational{s.stream.AvgFrameRate(), s.stream.RFrameRate()} {
			v := Rational{Num: r.Num(), Den: r.Den()}
			if v.IsPositive() {
				return v, true
			}
		}
		return Rational{}, false
	})
}

func (s *LibAV) ReadFrame(
	ctx context.Context,
) (image.Image, error) {
	return xsync.DoA1R2(ctx, &s.locker, s.readFrameLocked, ctx)
}

func (s *LibAV) readFrameLocked(
	ctx context.Context,
) (image.Image, error) {
	if s.closed {
		return nil, ErrClosed{}
	}

	for {
		err := s.codecContext.ReceiveFrame(s.frame)
		switch {
		case err == nil:
			img, err := s.toImage(ctx, s.frame)
			s.frame.Unref()
			if err != nil {
				return nil, fmt.Errorf("unable to convert the frame to an image: %w", err)
			}
			return img, nil
		case errors.Is(err, astiav.ErrEof):
			return nil, io.EOF
		case errors.Is(err, astiav.ErrEagain):
		default:
			return nil, fmt.Errorf("unable to receive a frame from the decoder: %w", err)
		}

		if s.flushed {
			return nil, io.EOF
		}

		if err := s.sendNextPacket(ctx); err != nil {
			return nil, err
		}
	}
}

func (s *LibAV) sendNextPacket(
	ctx context.Context,
) error {
	for {
		err := s.formatContext.ReadFrame(s.packet)
		switch {
		case err == nil:
		case errors.Is(err, astiav.ErrEof), errors.Is(err, astiav.ErrEio):
			logger.Debugf(ctx, "end of input, draining the decoder")
			s.flushed = true
			if err := s.codecContext.SendPacket(nil); err != nil && !errors.Is(err, astiav.ErrEof) {
				return fmt.Errorf("unable to flush the decoder: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("unable to read a packet: %T:%w", err, err)
		}

		if s.packet.StreamIndex() != s.stream.Index() {
			s.packet.Unref()
			continue
		}

		err = s.codecContext.SendPacket(s.packet)
		s.packet.Unref()
		if err != nil {
			return fmt.Errorf("unable to send a packet to the decoder: %w", err)
		}
		return nil
	}
}

func (s *LibAV) toImage(
	ctx context.Context,
	f *astiav.Frame,
) (image.Image, error) {
	img, err := f.Data().GuessImageFormat()
	if err == nil {
		if err := f.Data().ToImage(img); err != nil {
			return nil, fmt.Errorf("unable to convert the image into Go's format: %w", err)
		}
		return img, nil
	}
	logger.Tracef(ctx, "pixel format %s is not directly convertible (%v), scaling to RGBA", f.PixelFormat(), err)

	if s.converter == nil || !s.converter.Matches(f) {
		if s.converter != nil {
			s.converter.Close()
		}
		s.converter, err = newRGBAConverter(f)
		if err != nil {
			return nil, err
		}
	}
	return s.converter.Convert(f)
}

func (s *LibAV) Close(
	ctx context.Context,
) error {
	return xsync.DoA1R1(ctx, &s.locker, s.closeLocked, ctx)
}

func (s *LibAV) closeLocked(
	ctx context.Context,
) error {
	if s.closed {
		return nil
	}
	s.closed = true
	logger.Debugf(ctx, "closing %s", s.URL)
	if s.converter != nil {
		s.converter.Close()
		s.converter = nil
	}
	if s.frame != nil {
		s.frame.Free()
		s.frame = nil
	}
	if s.packet != nil {
		s.packet.Free()
		s.packet = nil
	}
	if s.codecContext != nil {
		s.codecContext.Free()
		s.codecContext = nil
	}
	if s.formatContext != nil {
		s.formatContext.CloseInput()
		s.formatContext.Free()
		s.formatContext = nil
	}
	return nil
}
