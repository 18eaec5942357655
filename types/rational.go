package types

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Rational struct {
	Num int
	Den int
}

func (r Rational) Reverse() Rational {
	return Rational{
		Num: r.Den,
		Den: r.Num,
	}
}

func newNTSCRationalFromFloat64(f float64) *big.Rat {
	den := 1001 // common denominator for NTSC frame rates
	num := math.Ceil(f) * 1000
	r := big.NewRat(int64(num), int64(den))
	confirmValue, _ := r.Float64()
	if math.Abs(f-confirmValue) < 1e-2 {
		return r
	}
	return nil
}

func RationalFromApproxFloat64(fps float64) (r Rational) {
	if float64(int(fps)) == fps {
		r.Num = int(fps)
		r.Den = 1
		return
	}

	rat := newNTSCRationalFromFloat64(fps)
	if rat != nil {
		r.Num = int(rat.Num().Int64())
		r.Den = int(rat.Denom().Int64())
		return
	}

	return RationalFromFloat64(fps)
}

// RationalFromFloat64 converts the shortest decimal representation
// of the value into an exact fraction: 29.97 becomes 2997/100.
func RationalFromFloat64(fps float64) Rational {
	if float64(int(fps)) == fps {
		return Rational{Num: int(fps), Den: 1}
	}
	rat, ok := new(big.Rat).SetString(strconv.FormatFloat(fps, 'f', -1, 64))
	if !ok || !rat.Num().IsInt64() || !rat.Denom().IsInt64() {
		return Rational{Num: int(fps * 1000000), Den: 1000000}
	}
	return Rational{
		Num: int(rat.Num().Int64()),
		Den: int(rat.Denom().Int64()),
	}
}

func RationalFromString(s string) (*Rational, error) {
	var r Rational
	s = strings.TrimSpace(s)
	switch {
	case len(s) == 0:
		return nil, fmt.Errorf("unable to parse Rational from empty string")
	case strings.Contains(s, "/"):
		if _, err := fmt.Sscanf(s, "%d/%d", &r.Num, &r.Den); err != nil {
			return nil, fmt.Errorf("unable to parse Rational from %q: %w", s, err)
		}
	case s[0] == '~':
		fps, err := strconv.ParseFloat(s[1:], 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse Rational from %q: %w", s, err)
		}
		r = RationalFromApproxFloat64(fps)
	default:
		fps, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse Rational from %q: %w", s, err)
		}
		r = RationalFromFloat64(fps)
	}
	if r.Den == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}
	return &r, nil
}

func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

// IsPositive reports whether the value is a usable frame rate.
func (r Rational) IsPositive() bool {
	if r.Den == 0 {
		return false
	}
	return (r.Num > 0) == (r.Den > 0) && r.Num != 0
}

// FrameTime returns the timestamp in seconds of the frame with the given
// zero-based index when frames come at rate r.
func (r Rational) FrameTime(frameIndex uint64) float64 {
	return float64(frameIndex) * float64(r.Den) / float64(r.Num)
}

func (r Rational) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rational) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unable to unmarshal Rational from JSON '%s': %w", b, err)
	}
	v, err := RationalFromString(s)
	if err != nil {
		return fmt.Errorf("unable to unmarshal Rational from string %q: %w", s, err)
	}
	*r = *v
	return nil
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func (r *Rational) UnmarshalYAML(node *yaml.Node) error {
	v, err := RationalFromString(node.Value)
	if err != nil {
		return fmt.Errorf("unable to unmarshal Rational from YAML %q: %w", node.Value, err)
	}
	*r = *v
	return nil
}

func (r Rational) MarshalYAML() (any, error) {
	return r.String(), nil
}

// Set implements pflag.Value.
func (r *Rational) Set(s string) error {
	v, err := RationalFromString(s)
	if err != nil {
		return err
	}
	*r = *v
	return nil
}

// Type implements pflag.Value.
func (r *Rational) Type() string {
	return "rational"
}
