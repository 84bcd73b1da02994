// Package engine implements the store engine of spec.md §4.3: the single
// component that owns a directory, drives the positioned writer/readers in
// internal/storage, keeps internal/index up to date, and runs compaction
// synchronously when the compactable-bytes counter crosses its threshold.
//
// Grounded on iamNilotpal/ignite's internal/storage.Storage, which plays
// the same "owns everything, drives every subsystem" role for its own
// segment-file model; engine here is the generation-oriented equivalent.
package engine

import (
	"go.uber.org/zap"

	"github.com/tmarlowe/ferrule/internal/index"
	"github.com/tmarlowe/ferrule/internal/storage"
	"github.com/tmarlowe/ferrule/pkg/lock"
)

// Engine is the store engine. Per spec.md §5, it is single-threaded and
// non-reentrant: the caller (pkg/ferrule) is responsible for not issuing a
// second operation before the first returns. Engine itself holds no mutex.
type Engine struct {
	log *zap.SugaredLogger

	store *storage.Store
	idx   *index.Index
	lock  *lock.Lock

	currentGen       uint64
	compactableBytes uint64
	threshold        uint64
}
