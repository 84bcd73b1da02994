// Package ferrule is the public library surface of the embedded key/value
// store: Open a directory, then Set, Get, and Remove keys against the
// returned Instance. There is no server, no CLI, and no network protocol
// here — an embedding application links this package directly.
//
// Grounded on iamNilotpal/ignite's top-level package, which plays the same
// "thin public wrapper over internal/storage" role; ferrule's Instance
// plays that role over internal/engine instead.
package ferrule

import (
	"go.uber.org/zap"

	"github.com/tmarlowe/ferrule/internal/engine"
	"github.com/tmarlowe/ferrule/pkg/logger"
	"github.com/tmarlowe/ferrule/pkg/options"
)

// Instance is a single open store. It exclusively owns its data directory
// for the duration between Open and Close (spec.md §5) — two Instances
// opened against the same directory in the same process, or from two
// processes on the same host, are unsupported.
type Instance struct {
	eng *engine.Engine
	log *zap.SugaredLogger
}

// Open creates the data directory if needed, replays any existing
// generations to rebuild the in-memory index, and returns a ready
// Instance. With no opts, the defaults in pkg/options apply.
func Open(opts ...options.OptionFunc) (*Instance, error) {
	resolved := options.NewDefaultOptions()
	for _, apply := range opts {
		apply(&resolved)
	}

	log := logger.New("ferrule")
	eng, err := engine.Open(&resolved, log)
	if err != nil {
		return nil, err
	}

	return &Instance{eng: eng, log: log}, nil
}

// OpenWithLogger is Open, but lets the embedder supply its own
// *zap.SugaredLogger instead of constructing a default production one —
// useful for embedding inside an application that already owns a zap
// logger and wants ferrule's lifecycle events folded into it.
func OpenWithLogger(log *zap.SugaredLogger, opts ...options.OptionFunc) (*Instance, error) {
	resolved := options.NewDefaultOptions()
	for _, apply := range opts {
		apply(&resolved)
	}

	eng, err := engine.Open(&resolved, log)
	if err != nil {
		return nil, err
	}

	return &Instance{eng: eng, log: log}, nil
}

// OpenFromFile loads Options from a YAML configuration file (optionally
// overlaid with a sibling .env file, or the process environment) and opens
// an Instance against them — the file-driven counterpart to Open's
// functional-options surface.
func OpenFromFile(configPath string) (*Instance, error) {
	resolved, err := options.LoadFromFile(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.New("ferrule")
	eng, err := engine.Open(&resolved, log)
	if err != nil {
		return nil, err
	}

	return &Instance{eng: eng, log: log}, nil
}

// Set installs value as key's current value, persisting it before
// returning.
func (i *Instance) Set(key, value string) error {
	return i.eng.Set(key, value)
}

// Get returns key's current value. ok is false, with a nil error, when the
// key is absent.
func (i *Instance) Get(key string) (value string, ok bool, err error) {
	return i.eng.Get(key)
}

// Remove deletes key. It fails with a KeyNotFound-coded error
// (see pkg/errors.IsKeyNotFound) if key is absent, and persists nothing in
// that case.
func (i *Instance) Remove(key string) error {
	return i.eng.Remove(key)
}

// Close flushes and closes every open generation file and releases the
// advisory lock, if one was held. The Instance must not be used afterward.
func (i *Instance) Close() error {
	return i.eng.Close()
}
