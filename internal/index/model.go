// Package index implements the in-memory key directory described in
// spec.md §4.2: a map from key to the (generation, start offset, length)
// triple identifying the most recent surviving record for that key.
//
// Lookups and updates are frequent enough, and the spec's single-process
// model permissive enough about internal concurrency, that the index is
// split into shards the way jpl-au-folio's Store shards its own hash
// table — each shard guarded by its own mutex, with the shard chosen by
// hashing the key via one of three algorithms (spec.md is silent on which;
// this is a supplemented, user-selectable knob, see DESIGN.md).
package index

import (
	"sync"

	"github.com/tmarlowe/ferrule/pkg/options"
)

// Pointer locates a single record inside the generation log: which
// generation file it lives in, the byte offset the record starts at, and
// how many bytes long the whole record (the JSON-encoded command) is.
type Pointer struct {
	Generation uint64
	Start      int64
	Length     int64
}

// shard is one partition of the index, holding a subset of keys behind its
// own lock.
type shard struct {
	mu      sync.RWMutex
	entries map[string]Pointer
}

// Index is the sharded key directory. It tracks no generation or
// compaction state of its own — internal/engine owns that — it only maps
// keys to the location of their most recent record.
type Index struct {
	shards []*shard
	hash   func(string) uint64
}

// New builds an empty Index with opts.ShardCount shards (rounded down to
// the nearest positive power of two) and the hash function selected by
// opts.HashAlgorithm.
func New(opts *options.Options) *Index {
	n := nextPowerOfTwoAtMost(opts.ShardCount)
	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = &shard{entries: make(map[string]Pointer)}
	}
	return &Index{shards: shards, hash: hashFuncFor(opts.HashAlgorithm)}
}

func nextPowerOfTwoAtMost(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}

func (ix *Index) shardFor(key string) *shard {
	h := ix.hash(key)
	return ix.shards[h&uint64(len(ix.shards)-1)]
}
