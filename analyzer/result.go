package analyzer

import (
	"github.com/xaionaro-go/avlatency/types"
)

type Result struct {
	// Samples are in frame order.
	Samples    []types.SamplePoint
	Statistics *types.Statistics `json:",omitempty"`

	FramesRead    uint64
	DecodeMissesA uint64
	DecodeMissesB uint64

	// FinalState is the terminal state the stream reached before the
	// source was closed.
	FinalState State
}

func (r *Result) Times() []float64 {
	times := make([]float64, 0, len(r.Samples))
	for _, s := range r.Samples {
		times = append(times, s.Time)
	}
	return times
}

func (r *Result) Deltas() []int64 {
	deltas := make([]int64, 0, len(r.Samples))
	for _, s := range r.Samples {
		deltas = append(deltas, s.Delta)
	}
	return deltas
}
