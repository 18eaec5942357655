package logger

import (
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"
)

func TestAstiavLevels(t *testing.T) {
	for _, level := range []Level{LevelFatal, LevelError, LevelWarning, LevelInfo, LevelDebug, LevelTrace} {
		require.Equal(t, level, LevelFromAstiav(LevelToAstiav(level)), level.String())
	}
	require.Equal(t, LevelFatal, LevelFromAstiav(astiav.LogLevelPanic))
}
