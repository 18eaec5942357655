// Package avlatency measures the end-to-end latency of a video path by
// comparing two frame-counter markers visible in the same recording.
//
// A typical setup displays a QR code with the current frame number on a
// screen (region A) next to a re-capture of that screen going through the
// measured path (region B). Recording both and analyzing the recording
// gives, for every frame, how many frames B lags behind A.
package avlatency

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avlatency/analyzer"
	"github.com/xaionaro-go/avlatency/config"
	"github.com/xaionaro-go/avlatency/logger"
	"github.com/xaionaro-go/avlatency/marker"
	"github.com/xaionaro-go/avlatency/source"
	"github.com/xaionaro-go/avlatency/types"
)

// Analysis is an opened source together with an analyzer configured for it.
type Analysis struct {
	Config   config.Config
	FPS      types.Rational
	Source   source.Source
	Analyzer *analyzer.Analyzer
}

type OnSample = func(ctx context.Context, sample types.SamplePoint)

// Open opens cfg.Video and prepares the analysis. Failing to open the video
// is reported as analyzer.ErrSourceUnreadable.
func Open(
	ctx context.Context,
	cfg config.Config,
	onSample OnSample,
) (_ret *Analysis, _err error) {
	logger.Debugf(ctx, "Open(%s)", cfg.Video)
	defer func() { logger.Debugf(ctx, "/Open(%s): %v", cfg.Video, _err) }()

	if err := cfg.Validate(); err != nil {
		return nil, analyzer.ErrInvalidConfig{Err: err}
	}

	src, err := source.Open(ctx, cfg.Source, cfg.Video, cfg.LibAV)
	if err != nil {
		return nil, analyzer.ErrSourceUnreadable{Source: cfg.Video, Err: err}
	}
	a, err := NewAnalysis(ctx, cfg, src, onSample)
	if err != nil {
		if err := src.Close(ctx); err != nil {
			logger.Warnf(ctx, "unable to close %s: %v", src, err)
		}
		return nil, err
	}
	return a, nil
}

// NewAnalysis prepares the analysis of an already opened source. If
// cfg.FPS is not set, the frame rate is taken from the source.
func NewAnalysis(
	ctx context.Context,
	cfg config.Config,
	src source.Source,
	onSample OnSample,
) (*Analysis, error) {
	fps, err := resolveFPS(ctx, cfg, src)
	if err != nil {
		return nil, err
	}

	decoder, err := marker.New(cfg.Decoder, cfg.Preprocess)
	if err != nil {
		return nil, analyzer.ErrInvalidConfig{Err: err}
	}

	a, err := analyzer.New(analyzer.Config{
		FPS:            fps,
		RegionA:        cfg.RegionA,
		RegionB:        cfg.RegionB,
		Decoder:        decoder,
		ParallelDecode: cfg.ParallelDecode,
		OnSample:       onSample,
	})
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Config:   cfg,
		FPS:      fps,
		Source:   src,
		Analyzer: a,
	}, nil
}

func resolveFPS(
	ctx context.Context,
	cfg config.Config,
	src source.Source,
) (types.Rational, error) {
	if cfg.FPS != nil {
		return *cfg.FPS, nil
	}
	rater, ok := src.(source.FrameRater)
	if !ok {
		return types.Rational{}, analyzer.ErrInvalidConfig{Err: fmt.Errorf("%s does not report a frame rate, please set it explicitly", src)}
	}
	fps, ok := rater.FrameRate()
	if !ok {
		return types.Rational{}, analyzer.ErrInvalidConfig{Err: fmt.Errorf("unable to detect the frame rate of %s, please set it explicitly", src)}
	}
	logger.Infof(ctx, "using the frame rate from the container: %s (%.3f fps)", fps, fps.Float64())
	return fps, nil
}

// Run analyzes the whole source; the source is closed afterwards.
func (a *Analysis) Run(ctx context.Context) (*analyzer.Result, error) {
	return a.Analyzer.Analyze(ctx, a.Source)
}

// Close releases the source without analyzing it. Run closes the source
// by itself, so Close is only needed when Run is never reached.
func (a *Analysis) Close(ctx context.Context) error {
	return a.Source.Close(ctx)
}

// AnalyzeFile is Open followed by Run.
func AnalyzeFile(ctx context.Context, cfg config.Config) (*analyzer.Result, error) {
	a, err := Open(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}
	return a.Run(ctx)
}
