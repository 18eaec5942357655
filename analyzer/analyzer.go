// analyzer.go implements the frame-by-frame marker pairing loop.

// Package analyzer measures the frame-index offset between two regions of a
// video: each frame is decoded in both regions, and every frame where both
// markers are readable yields a (time, delta) sample.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/xaionaro-go/avlatency/internal"
	"github.com/xaionaro-go/avlatency/logger"
	"github.com/xaionaro-go/avlatency/marker"
	"github.com/xaionaro-go/avlatency/source"
	"github.com/xaionaro-go/avlatency/types"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/xcontext"
	"go.uber.org/atomic"
)

type Config struct {
	FPS types.Rational

	// RegionA and RegionB are the two marker locations. Deltas are always
	// computed as B minus A, so B is normally the region showing the
	// delayed (re-captured) marker.
	RegionA types.Region
	RegionB types.Region

	Decoder marker.Decoder

	// ParallelDecode decodes the two regions of a frame concurrently.
	ParallelDecode bool

	// OnSample, if set, is called synchronously for every sample in
	// frame order.
	OnSample func(ctx context.Context, sample types.SamplePoint)
}

func (cfg Config) Validate() error {
	if !cfg.FPS.IsPositive() {
		return ErrInvalidConfig{Err: fmt.Errorf("fps must be positive, got %s", cfg.FPS)}
	}
	if cfg.RegionA.IsEmpty() {
		return ErrInvalidConfig{Err: fmt.Errorf("region A (%s) is empty", cfg.RegionA)}
	}
	if cfg.RegionB.IsEmpty() {
		return ErrInvalidConfig{Err: fmt.Errorf("region B (%s) is empty", cfg.RegionB)}
	}
	if cfg.Decoder == nil {
		return ErrInvalidConfig{Err: fmt.Errorf("marker decoder is not set")}
	}
	return nil
}

type Analyzer struct {
	Config
	counters
	running atomic.Bool
}

func New(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{Config: cfg}, nil
}

func (a *Analyzer) String() string {
	return fmt.Sprintf("Analyzer(A:%s, B:%s, fps:%s, %s)", a.RegionA, a.RegionB, a.FPS, a.Decoder)
}

// Stats may be called concurrently with Analyze.
func (a *Analyzer) Stats() Stats {
	return a.counters.Convert()
}

func (a *Analyzer) State() State {
	return State(a.counters.State.Load())
}

func (a *Analyzer) setState(ctx context.Context, s State) {
	old := State(a.counters.State.Swap(uint32(s)))
	logger.Debugf(ctx, "state: %s -> %s", old, s)
}

// Analyze reads src until it is exhausted and pairs the markers of every
// frame. The source is closed before returning, on every path.
//
// On a mid-stream read failure or cancellation the partial Result is
// returned together with the error.
func (a *Analyzer) Analyze(
	ctx context.Context,
	src source.Source,
) (_ret *Result, _err error) {
	logger.Debugf(ctx, "Analyze(%s)", src)
	defer func() { logger.Debugf(ctx, "/Analyze(%s): %v", src, _err) }()

	if !a.running.CompareAndSwap(false, true) {
		return nil, ErrBusy{}
	}
	defer a.running.Store(false)

	a.counters.reset()
	a.setState(ctx, StateOpen)
	defer func() {
		if err := src.Close(xcontext.DetachDone(ctx)); err != nil {
			logger.Warnf(ctx, "unable to close %s: %v", src, err)
		}
		a.setState(ctx, StateClosed)
	}()

	var (
		samples []types.SamplePoint
		termErr error
	)
	a.setState(ctx, StateStreaming)
	for frameIndex := uint64(0); ; frameIndex++ {
		if err := ctx.Err(); err != nil {
			a.setState(ctx, StateCanceled)
			termErr = err
			break
		}

		frame, err := src.ReadFrame(ctx)
		if err != nil {
			if frameIndex == 0 {
				a.setState(ctx, StateReadError)
				return nil, ErrSourceUnreadable{Source: src.String(), Err: err}
			}
			if errors.Is(err, io.EOF) {
				a.setState(ctx, StateExhausted)
				break
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				a.setState(ctx, StateCanceled)
				termErr = ctxErr
				break
			}
			a.setState(ctx, StateReadError)
			termErr = ErrStreamRead{FrameIndex: frameIndex, Err: err}
			break
		}
		a.counters.FramesRead.Inc()

		sample, ok := a.processFrame(ctx, frameIndex, frame)
		if !ok {
			continue
		}
		if n := len(samples); n > 0 {
			internal.Assert(ctx, samples[n-1].FrameIndex < sample.FrameIndex, samples[n-1], sample)
		}
		samples = append(samples, sample)
		a.counters.Samples.Inc()
		if a.OnSample != nil {
			a.OnSample(ctx, sample)
		}
	}

	stats := a.counters.Convert()
	result := &Result{
		Samples:       samples,
		FramesRead:    stats.FramesRead,
		DecodeMissesA: stats.DecodeMissesA,
		DecodeMissesB: stats.DecodeMissesB,
		FinalState:    stats.State,
	}

	if len(samples) == 0 {
		errEmpty := ErrEmptyResult{FramesRead: stats.FramesRead}
		if termErr != nil {
			return result, errors.Join(termErr, errEmpty)
		}
		return result, errEmpty
	}

	result.Statistics, _err = ComputeStatistics(samples)
	if _err != nil {
		return result, _err
	}
	logger.Debugf(ctx, "frames:%d samples:%d misses(A:%d, B:%d) statistics:%+v",
		stats.FramesRead, len(samples), stats.DecodeMissesA, stats.DecodeMissesB, *result.Statistics)
	return result, termErr
}

func (a *Analyzer) processFrame(
	ctx context.Context,
	frameIndex uint64,
	frame image.Image,
) (types.SamplePoint, bool) {
	valueA, okA, valueB, okB := a.decodeRegions(ctx, frame)
	if !okA {
		a.counters.DecodeMissesA.Inc()
	}
	if !okB {
		a.counters.DecodeMissesB.Inc()
	}
	if !okA || !okB {
		logger.Tracef(ctx, "frame #%d skipped: A:%t B:%t", frameIndex, okA, okB)
		return types.SamplePoint{}, false
	}

	sample := types.SamplePoint{
		FrameIndex: frameIndex,
		Time:       a.FPS.FrameTime(frameIndex),
		Delta:      int64(valueB) - int64(valueA),
	}
	logger.Tracef(ctx, "frame #%d: A:%d B:%d -> %+v", frameIndex, valueA, valueB, sample)
	return sample, true
}

func (a *Analyzer) decodeRegions(
	ctx context.Context,
	frame image.Image,
) (valueA marker.Value, okA bool, valueB marker.Value, okB bool) {
	if !a.ParallelDecode {
		valueA, okA = a.Decoder.Decode(ctx, frame, a.RegionA)
		valueB, okB = a.Decoder.Decode(ctx, frame, a.RegionB)
		return
	}

	done := make(chan struct{})
	observability.Go(ctx, func(ctx context.Context) {
		defer close(done)
		valueA, okA = a.Decoder.Decode(ctx, frame, a.RegionA)
	})
	valueB, okB = a.Decoder.Decode(ctx, frame, a.RegionB)
	<-done
	return
}
