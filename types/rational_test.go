package types

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRationalFromString(t *testing.T) {
	tests := []struct {
		input          string
		expectedNum    int
		expectedDen    int
		expectingError bool
	}{
		{"30", 30, 1, false},
		{"30/1", 30, 1, false},
		{"30000/1001", 30000, 1001, false}, // NTSC
		{"~23.976", 24000, 1001, false},    // NTSC
		{"~23.98", 24000, 1001, false},     // NTSC
		{"~29.93", 2993, 100, false},       // non-NTSC
		{"~29.97", 30000, 1001, false},     // NTSC
		{"29.97", 2997, 100, false},
		{"~25", 25, 1, false},
		{"~47.952", 48000, 1001, false},
		{"~119.88", 120000, 1001, false},
		{"~60", 60, 1, false},
		{"~0.3", 3, 10, false},
		{"0.33333", 33333, 100000, false},
		{" 2 ", 2, 1, false},
		{"0/1", 0, 1, false},
		{"1/0", 0, 0, true},
		{"", 0, 0, true},
		{"invalid", 0, 0, true},
		{"10/invalid", 0, 0, true},
	}

	for _, test := range tests {
		rational, err := RationalFromString(test.input)
		if test.expectingError {
			require.Error(t, err, test.input)
			continue
		}
		require.NoError(t, err, test.input)
		require.Equal(t, test.expectedNum, rational.Num, test.input)
		require.Equal(t, test.expectedDen, rational.Den, test.input)
	}
}

func TestRationalFrameTime(t *testing.T) {
	fps := Rational{Num: 2, Den: 1}
	require.Equal(t, 0.0, fps.FrameTime(0))
	require.Equal(t, 0.5, fps.FrameTime(1))
	require.Equal(t, 1.5, fps.FrameTime(3))

	ntsc := Rational{Num: 30000, Den: 1001}
	require.InEpsilon(t, 100/ntsc.Float64(), ntsc.FrameTime(100), 1e-12)
}

func TestRationalIsPositive(t *testing.T) {
	require.True(t, Rational{Num: 30, Den: 1}.IsPositive())
	require.True(t, Rational{Num: -30, Den: -1}.IsPositive())
	require.False(t, Rational{Num: 0, Den: 1}.IsPositive())
	require.False(t, Rational{Num: 30, Den: 0}.IsPositive())
	require.False(t, Rational{Num: -30, Den: 1}.IsPositive())
}

func TestRationalYAML(t *testing.T) {
	var v struct {
		FPS Rational `yaml:"fps"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("fps: 30000/1001\n"), &v))
	require.Equal(t, Rational{Num: 30000, Den: 1001}, v.FPS)

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, "fps: 30000/1001\n", string(out))
}
