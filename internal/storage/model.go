package storage

import (
	"os"

	"go.uber.org/zap"

	"github.com/tmarlowe/ferrule/internal/posio"
)

// Store owns a store directory, its immutable generation readers, and the
// single active generation's writer+reader pair. It is the only component
// that opens, creates or deletes generation files; internal/engine and
// internal/compaction drive it but never open generation files themselves.
//
// spec.md §5: a Store instance exclusively owns its directory. There is no
// internal locking here — the single-threaded, non-reentrant model is the
// caller's (internal/engine's) responsibility to uphold.
type Store struct {
	dir string
	log *zap.SugaredLogger

	activeGen    uint64
	activeFile   *os.File
	activeWriter *posio.Writer

	files   map[uint64]*os.File
	readers map[uint64]*posio.Reader

	// writeFiles holds the write handle for every generation created via
	// CreateGeneration that has not yet been claimed as the active
	// generation (by PromoteActive) or explicitly closed (by CloseWriter).
	// createActive's own write handle lives in activeFile instead, since it
	// is always the active generation from the moment it is created.
	writeFiles map[uint64]*os.File
}
