package analyzer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avlatency/types"
)

func samplesOf(deltas ...int64) []types.SamplePoint {
	samples := make([]types.SamplePoint, 0, len(deltas))
	for i, d := range deltas {
		samples = append(samples, types.SamplePoint{FrameIndex: uint64(i), Time: float64(i), Delta: d})
	}
	return samples
}

func TestComputeStatistics(t *testing.T) {
	for _, tc := range []struct {
		name   string
		deltas []int64
		want   types.Statistics
	}{
		{
			name:   "single",
			deltas: []int64{7},
			want:   types.Statistics{Count: 1, Mean: 7, Min: 7, Max: 7, StdDev: 0, Median: 7},
		},
		{
			name:   "even count",
			deltas: []int64{4, 1, 3, 2},
			want:   types.Statistics{Count: 4, Mean: 2.5, Min: 1, Max: 4, StdDev: math.Sqrt(1.25), Median: 2.5},
		},
		{
			name:   "negative",
			deltas: []int64{-3, -3, -1},
			want:   types.Statistics{Count: 3, Mean: -7.0 / 3, Min: -3, Max: -1, StdDev: math.Sqrt(8.0 / 9), Median: -3},
		},
		{
			name:   "sum beyond int64",
			deltas: []int64{1 << 62, 1 << 62},
			want:   types.Statistics{Count: 2, Mean: 1 << 62, Min: 1 << 62, Max: 1 << 62, StdDev: 0, Median: 1 << 62},
		},
		{
			name:   "sum below int64",
			deltas: []int64{math.MinInt64 + 1, math.MinInt64 + 1, math.MinInt64 + 1},
			want: types.Statistics{
				Count: 3, Mean: math.MinInt64 + 1, Min: math.MinInt64 + 1, Max: math.MinInt64 + 1,
				StdDev: 0, Median: math.MinInt64 + 1,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeStatistics(samplesOf(tc.deltas...))
			require.NoError(t, err)
			require.Equal(t, tc.want.Count, got.Count)
			require.Equal(t, tc.want.Min, got.Min)
			require.Equal(t, tc.want.Max, got.Max)
			require.InDelta(t, tc.want.Mean, got.Mean, 1e-12)
			require.GreaterOrEqual(t, got.Mean, float64(got.Min))
			require.LessOrEqual(t, got.Mean, float64(got.Max))
			require.InDelta(t, tc.want.StdDev, got.StdDev, 1e-12)
			require.InDelta(t, tc.want.Median, got.Median, 1e-12)
		})
	}
}

func TestComputeStatisticsEmpty(t *testing.T) {
	_, err := ComputeStatistics(nil)
	require.ErrorIs(t, err, ErrEmptyResult{})
}

func TestStateString(t *testing.T) {
	require.Equal(t, "streaming", StateStreaming.String())
	require.True(t, StateExhausted.IsTerminal())
	require.True(t, StateCanceled.IsTerminal())
	require.False(t, StateStreaming.IsTerminal())
}
