package analyzer

import (
	"fmt"
	"math/big"

	"github.com/montanaflynn/stats"
	"github.com/xaionaro-go/avlatency/types"
)

// ComputeStatistics summarizes the deltas of the samples. The mean is
// computed from the exact integer sum, which may exceed the int64 range.
func ComputeStatistics(samples []types.SamplePoint) (*types.Statistics, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyResult{}
	}

	data := make(stats.Float64Data, 0, len(samples))
	sum := new(big.Int)
	var delta big.Int
	result := &types.Statistics{
		Count: len(samples),
		Min:   samples[0].Delta,
		Max:   samples[0].Delta,
	}
	for _, s := range samples {
		sum.Add(sum, delta.SetInt64(s.Delta))
		result.Min = min(result.Min, s.Delta)
		result.Max = max(result.Max, s.Delta)
		data = append(data, float64(s.Delta))
	}
	result.Mean, _ = new(big.Rat).SetFrac(sum, big.NewInt(int64(len(samples)))).Float64()

	var err error
	result.StdDev, err = stats.StandardDeviationPopulation(data)
	if err != nil {
		return nil, fmt.Errorf("unable to compute the standard deviation: %w", err)
	}
	result.Median, err = stats.Median(data)
	if err != nil {
		return nil, fmt.Errorf("unable to compute the median: %w", err)
	}
	return result, nil
}
