// Package logger constructs the structured loggers used throughout ferrule.
// The engine and storage layers take a *zap.SugaredLogger when they are
// opened, and compaction takes one on each run; they log lifecycle events at
// Info, and recovery warns when it drops a truncated tail record. The index
// takes no logger, and no per-call detail is logged. This follows the
// pattern the teacher repository already used at its call sites even though
// it shipped without this package.
package logger

import (
	"go.uber.org/zap"
)

// New builds a production-configured, JSON-encoded SugaredLogger tagged with
// the given service name. It is suitable for embedding in a larger
// application's own log pipeline.
func New(service string) *zap.SugaredLogger {
	base, err := zap.NewProduction()
	if err != nil {
		base = zap.NewNop()
	}
	return base.Named(service).Sugar()
}

// NewDevelopment builds a human-readable, console-encoded SugaredLogger
// suitable for local development and tests.
func NewDevelopment(service string) *zap.SugaredLogger {
	base, err := zap.NewDevelopment()
	if err != nil {
		base = zap.NewNop()
	}
	return base.Named(service).Sugar()
}

// Noop returns a logger that discards everything, for callers that do not
// want ferrule's logging.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
