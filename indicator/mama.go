// Package indicator smooths noisy measurement series.
package indicator

import (
	indicators "github.com/lmpizarro/go_ehlers_indicators"
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// MAMA is the MESA adaptive moving average evaluated over a sliding window
// of the latest values.
type MAMA[T Number] struct {
	FastLimit float64
	SlowLimit float64

	ring    []float64
	ordered []float64
	next    int
	count   int
}

func NewMAMADefault[T Number](window int) *MAMA[T] {
	return NewMAMA[T](window, 0.5, 0.05)
}

func NewMAMA[T Number](
	window int,
	fastLimit float64,
	slowLimit float64,
) *MAMA[T] {
	return &MAMA[T]{
		FastLimit: fastLimit,
		SlowLimit: slowLimit,
		ring:      make([]float64, window),
		ordered:   make([]float64, window),
	}
}

// Push adds a value and returns the smoothed one. Until the window is
// full the value is returned as is and ok is false.
func (m *MAMA[T]) Push(v T) (_ float64, ok bool) {
	m.ring[m.next] = float64(v)
	m.next = (m.next + 1) % len(m.ring)
	m.count++
	if m.count < len(m.ring) {
		return float64(v), false
	}

	// oldest first: ring[next:] then ring[:next]
	n := copy(m.ordered, m.ring[m.next:])
	copy(m.ordered[n:], m.ring[:m.next])

	result := indicators.MAMA(m.ordered, m.FastLimit, m.SlowLimit)
	return result[len(result)-1], true
}

func (m *MAMA[T]) Window() int {
	return len(m.ring)
}

func (m *MAMA[T]) Ready() bool {
	return m.count >= len(m.ring)
}

// Smooth returns the MAMA of every prefix of values. The first window-1
// entries are the values themselves.
func Smooth[T Number](values []T, window int) []float64 {
	out := make([]float64, 0, len(values))
	if window < 1 {
		for _, v := range values {
			out = append(out, float64(v))
		}
		return out
	}
	m := NewMAMADefault[T](window)
	for _, v := range values {
		s, _ := m.Push(v)
		out = append(out, s)
	}
	return out
}
