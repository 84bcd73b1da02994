// Package options provides data structures and functions for configuring a
// ferrule store: the data directory, the compaction threshold, and the
// in-memory index's sharding behavior.
package options

import "strings"

// HashAlgorithm selects the hash function internal/index uses to choose a
// shard for a given key. Mirrors jpl-au-folio's Config.HashAlgorithm, which
// selects among the same three algorithms for its own hash table.
type HashAlgorithm int

const (
	// HashXXH3 shards keys using zeebo/xxh3 (xxHash3). Fast, good default.
	HashXXH3 HashAlgorithm = iota + 1
	// HashFNV1a shards keys using the standard library's hash/fnv (FNV-1a).
	HashFNV1a
	// HashBlake2b shards keys using golang.org/x/crypto/blake2b.
	HashBlake2b
)

// Options defines the configuration parameters for a ferrule Instance.
type Options struct {
	// DataDir is the directory where generation files are stored.
	DataDir string `yaml:"dataDir"`

	// CompactionThreshold is the number of compactable bytes that triggers
	// a synchronous compaction (spec.md §6's COMPACTION_THRESHOLD).
	CompactionThreshold uint64 `yaml:"compactionThreshold"`

	// ShardCount is the number of shards the in-memory index is split
	// across. Must be a positive power of two; non-conforming values are
	// rounded down to the nearest valid one by the index package.
	ShardCount int `yaml:"shardCount"`

	// HashAlgorithm selects the hash function used to pick a shard.
	HashAlgorithm HashAlgorithm `yaml:"hashAlgorithm"`

	// AdvisoryLock controls whether Open takes an advisory lock on the
	// store directory (pkg/lock). Disabling it is only safe when the
	// embedder already guarantees single-instance access some other way.
	AdvisoryLock bool `yaml:"advisoryLock"`
}

// OptionFunc is a function type that modifies a ferrule Instance's configuration.
type OptionFunc func(*Options)

// WithDefaultOptions resets every field to its documented default.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		*o = NewDefaultOptions()
	}
}

// WithDataDir sets the directory in which generation files are stored.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithCompactionThreshold overrides the number of compactable bytes that
// triggers a synchronous compaction. Per spec.md §6, this does not change
// the documented default; it only lets a given Instance run with a
// different threshold, as the testable-property suite (spec.md §8) requires
// for exercising compaction deterministically.
func WithCompactionThreshold(bytes uint64) OptionFunc {
	return func(o *Options) {
		if bytes > 0 {
			o.CompactionThreshold = bytes
		}
	}
}

// WithShardCount sets the number of shards the in-memory index is split
// across.
func WithShardCount(n int) OptionFunc {
	return func(o *Options) {
		if n > 0 {
			o.ShardCount = n
		}
	}
}

// WithHashAlgorithm selects the hash function used to pick an index shard.
func WithHashAlgorithm(alg HashAlgorithm) OptionFunc {
	return func(o *Options) {
		o.HashAlgorithm = alg
	}
}

// WithAdvisoryLock enables or disables the directory-level advisory lock
// taken by Open.
func WithAdvisoryLock(enabled bool) OptionFunc {
	return func(o *Options) {
		o.AdvisoryLock = enabled
	}
}
