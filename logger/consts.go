package logger

import (
	"github.com/facebookincubator/go-belt/tool/logger"
)

type Level = logger.Level

const (
	// LevelFatal will report about Fatalf-s only.
	LevelFatal = logger.LevelFatal

	// LevelError will report about Errorf-s and Fatalf-s.
	LevelError = logger.LevelError

	// LevelWarning will report about Warnf-s, Errorf-s, ...
	LevelWarning = logger.LevelWarning

	// LevelInfo will report about Infof-s, Warnf-s, ...
	LevelInfo = logger.LevelInfo

	// LevelDebug will report about Debugf-s, Infof-s, ...
	LevelDebug = logger.LevelDebug

	// LevelTrace will report about Tracef-s, Debugf-s, ...
	LevelTrace = logger.LevelTrace
)
