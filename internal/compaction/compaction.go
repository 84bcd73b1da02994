// Package compaction implements spec.md §4.4: rewriting only the records
// the index still references into a fresh generation, then discarding
// every generation that compaction has fully superseded.
//
// Grounded on iamNilotpal/ignite's compaction pass over its own segment
// files, adapted from size-triggered segment merging to the two-generation
// (compaction_gen, new_active_gen) scheme spec.md requires.
package compaction

import (
	"go.uber.org/zap"

	"github.com/tmarlowe/ferrule/internal/index"
	"github.com/tmarlowe/ferrule/internal/posio"
	"github.com/tmarlowe/ferrule/internal/storage"
	ferrors "github.com/tmarlowe/ferrule/pkg/errors"
)

// Run executes one compaction pass against currentGen, the generation
// active immediately before compaction was triggered. It returns the
// generation number that is active immediately after compaction — the
// caller (internal/engine) must update its own notion of the active
// generation to this value.
func Run(store *storage.Store, idx *index.Index, currentGen uint64, log *zap.SugaredLogger) (uint64, error) {
	compactionGen := currentGen + 1
	newActiveGen := currentGen + 2

	log.Infow("compaction starting", "currentGeneration", currentGen, "compactionGeneration", compactionGen, "newActiveGeneration", newActiveGen, "liveKeys", idx.Len())

	compactionWriter, _, err := store.CreateGeneration(compactionGen)
	if err != nil {
		return 0, err
	}

	newActiveWriter, _, err := store.CreateGeneration(newActiveGen)
	if err != nil {
		return 0, err
	}

	if err := copyLiveRecords(store, idx, compactionWriter, compactionGen); err != nil {
		return 0, err
	}

	if err := compactionWriter.Flush(); err != nil {
		return 0, ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to flush compaction generation").WithGeneration(compactionGen)
	}
	// compactionGen is only ever read from this point forward, through the
	// reader Store already registered for it; its write handle can close.
	if err := store.CloseWriter(compactionGen); err != nil {
		return 0, err
	}

	if err := store.PromoteActive(newActiveGen, newActiveWriter); err != nil {
		return 0, err
	}

	if err := store.RemoveGenerationsBelow(compactionGen); err != nil {
		return 0, err
	}

	log.Infow("compaction finished", "compactionGeneration", compactionGen, "newActiveGeneration", newActiveGen)
	return newActiveGen, nil
}

// copyLiveRecords copies, byte for byte, every record the index currently
// references into dst, and repoints each index entry at its new location.
// Repointing is deferred until every copy has succeeded so a failure
// partway through leaves the index describing only generations that still
// exist on disk.
func copyLiveRecords(store *storage.Store, idx *index.Index, dst *posio.Writer, compactionGen uint64) error {
	type relocation struct {
		key     string
		pointer index.Pointer
	}

	var (
		relocations []relocation
		copyErr     error
	)

	idx.Each(func(key string, p index.Pointer) {
		if copyErr != nil {
			return
		}
		newStart := dst.Pos()
		n, err := store.CopyRecord(p.Generation, p.Start, p.Length, dst)
		if err != nil {
			copyErr = err
			return
		}
		relocations = append(relocations, relocation{
			key: key,
			pointer: index.Pointer{
				Generation: compactionGen,
				Start:      newStart,
				Length:     n,
			},
		})
	})
	if copyErr != nil {
		return copyErr
	}

	for _, r := range relocations {
		idx.Update(r.key, r.pointer)
	}
	return nil
}
