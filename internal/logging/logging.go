// Package logging configures the process-wide diagnostic logger.
//
// User-facing output never goes through here; that is the console's
// job. The zap logger carries internal diagnostics (stage timings,
// schema lookups, subprocess argv) and is a nop unless --debug is set.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a sugared logger. With debug enabled it logs to stderr
// at debug level in the development format; otherwise it discards
// everything.
func New(debug bool) *zap.SugaredLogger {
	if !debug {
		return zap.NewNop().Sugar()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	logger, err := cfg.Build()
	if err != nil {
		// Development config only fails on bad sink paths; fall back
		// to silence rather than aborting the session over logging.
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
