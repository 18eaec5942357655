package types

// SamplePoint is a single paired observation: both regions decoded
// on the same frame.
type SamplePoint struct {
	FrameIndex uint64  `json:"frame"`
	Time       float64 `json:"time"`
	Delta      int64   `json:"delta"`
}

// Statistics summarizes the deltas of a non-empty set of SamplePoint-s.
//
// StdDev is the population standard deviation.
type Statistics struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Min    int64   `json:"min"`
	Max    int64   `json:"max"`
	StdDev float64 `json:"std"`
	Median float64 `json:"median"`
}
