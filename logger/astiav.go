package logger

import (
	"strings"

	"github.com/asticode/go-astiav"
)

func LevelToAstiav(level Level) astiav.LogLevel {
	switch level {
	case LevelFatal:
		return astiav.LogLevelFatal
	case LevelError:
		return astiav.LogLevelError
	case LevelWarning:
		return astiav.LogLevelWarning
	case LevelInfo:
		return astiav.LogLevelInfo
	case LevelDebug:
		return astiav.LogLevelVerbose
	case LevelTrace:
		return astiav.LogLevelDebug
	default:
		return astiav.LogLevelQuiet
	}
}

func LevelFromAstiav(level astiav.LogLevel) Level {
	switch {
	case level <= astiav.LogLevelFatal:
		return LevelFatal
	case level <= astiav.LogLevelError:
		return LevelError
	case level <= astiav.LogLevelWarning:
		return LevelWarning
	case level <= astiav.LogLevelInfo:
		return LevelInfo
	case level <= astiav.LogLevelVerbose:
		return LevelDebug
	default:
		return LevelTrace
	}
}

// RouteAstiav sends libav logs to l.
func RouteAstiav(l Logger) {
	astiav.SetLogLevel(LevelToAstiav(l.Level()))
	astiav.SetLogCallback(func(c astiav.Classer, level astiav.LogLevel, fmt, msg string) {
		var cs string
		if c != nil {
			if cl := c.Class(); cl != nil {
				cs = " - class: " + cl.String()
			}
		}
		l.Logf(LevelFromAstiav(level), "%s%s", strings.TrimSpace(msg), cs)
	})
}
