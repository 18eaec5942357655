package analyzer

import (
	"go.uber.org/atomic"
)

// Stats is a snapshot of the counters of the current (or last) run.
type Stats struct {
	State         State
	FramesRead    uint64
	DecodeMissesA uint64
	DecodeMissesB uint64
	Samples       uint64
}

type counters struct {
	State         atomic.Uint32
	FramesRead    atomic.Uint64
	DecodeMissesA atomic.Uint64
	DecodeMissesB atomic.Uint64
	Samples       atomic.Uint64
}

func (c *counters) reset() {
	c.FramesRead.Store(0)
	c.DecodeMissesA.Store(0)
	c.DecodeMissesB.Store(0)
	c.Samples.Store(0)
}

func (c *counters) Convert() Stats {
	return Stats{
		State:         State(c.State.Load()),
		FramesRead:    c.FramesRead.Load(),
		DecodeMissesA: c.DecodeMissesA.Load(),
		DecodeMissesB: c.DecodeMissesB.Load(),
		Samples:       c.Samples.Load(),
	}
}
