package engine

import (
	"go.uber.org/zap"

	"github.com/tmarlowe/ferrule/internal/codec"
	"github.com/tmarlowe/ferrule/internal/compaction"
	"github.com/tmarlowe/ferrule/internal/index"
	"github.com/tmarlowe/ferrule/internal/storage"
	ferrors "github.com/tmarlowe/ferrule/pkg/errors"
	"github.com/tmarlowe/ferrule/pkg/filesys"
	"github.com/tmarlowe/ferrule/pkg/lock"
	"github.com/tmarlowe/ferrule/pkg/options"
)

// Open implements spec.md §4.3's open(path): ensures the directory exists,
// optionally takes an advisory lock, opens every existing generation and
// replays it to rebuild the index (§4.5), then creates a fresh active
// generation for subsequent writes.
func Open(opts *options.Options, log *zap.SugaredLogger) (*Engine, error) {
	if err := filesys.CreateDir(opts.DataDir, 0o755, true); err != nil {
		return nil, ferrors.ClassifyDirectoryCreationError(err, opts.DataDir)
	}

	var lk *lock.Lock
	if opts.AdvisoryLock {
		acquired, ok, err := lock.Acquire(opts.DataDir)
		if err != nil {
			return nil, ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to acquire advisory lock").WithPath(opts.DataDir)
		}
		if !ok {
			return nil, ferrors.NewStorageError(nil, ferrors.ErrorCodeLocked, "store directory is already locked by another instance").WithPath(opts.DataDir)
		}
		lk = acquired
	}

	store, gens, err := storage.Open(opts.DataDir, log)
	if err != nil {
		releaseOnFailure(lk)
		return nil, err
	}

	idx := index.New(opts)
	compactableBytes, err := Recover(store, idx, gens, log)
	if err != nil {
		store.Close()
		releaseOnFailure(lk)
		return nil, err
	}

	e := &Engine{
		log:              log,
		store:            store,
		idx:              idx,
		lock:             lk,
		currentGen:       store.ActiveGeneration(),
		compactableBytes: compactableBytes,
		threshold:        opts.CompactionThreshold,
	}

	log.Infow("engine opened",
		"dir", opts.DataDir,
		"activeGeneration", e.currentGen,
		"compactableBytes", e.compactableBytes,
		"liveKeys", idx.Len(),
	)
	return e, nil
}

func releaseOnFailure(lk *lock.Lock) {
	if lk != nil {
		_ = lk.Release()
	}
}

// Set implements spec.md §4.3's set(key, value).
func (e *Engine) Set(key, value string) error {
	if key == "" {
		return ferrors.NewRequiredFieldError("key").WithProvided(key)
	}

	writer := e.store.Writer()
	start := writer.Pos()

	if err := codec.Encode(writer, codec.NewSet(key, value)); err != nil {
		return ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to write Set record").
			WithGeneration(e.currentGen).WithOffset(start)
	}
	if err := writer.Flush(); err != nil {
		return ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to flush Set record").
			WithGeneration(e.currentGen).WithOffset(start)
	}
	end := writer.Pos()

	old, had := e.idx.Put(key, index.Pointer{Generation: e.currentGen, Start: start, Length: end - start})
	if had {
		e.compactableBytes += uint64(old.Length)
	}

	return e.maybeCompact()
}

// Get implements spec.md §4.3's get(key). ok is false when the key is
// absent — that is success, not an error.
func (e *Engine) Get(key string) (value string, ok bool, err error) {
	p, found := e.idx.Get(key)
	if !found {
		return "", false, nil
	}

	data, err := e.store.ReadRecord(p.Generation, p.Start, p.Length)
	if err != nil {
		return "", false, err
	}

	cmd, err := codec.DecodeOne(data)
	if err != nil {
		return "", false, ferrors.NewStorageError(err, ferrors.ErrorCodeDecodeFailure, "failed to decode record at index-pinned offset").
			WithGeneration(p.Generation).WithOffset(p.Start)
	}
	if !cmd.IsSet() {
		return "", false, ferrors.NewUnexpectedCommandTypeError(key, p.Generation)
	}

	value, _ = cmd.Value()
	return value, true, nil
}

// Remove implements spec.md §4.3's remove(key).
func (e *Engine) Remove(key string) error {
	if key == "" {
		return ferrors.NewRequiredFieldError("key").WithProvided(key)
	}

	if _, found := e.idx.Get(key); !found {
		return ferrors.NewKeyNotFoundError(key)
	}

	writer := e.store.Writer()
	start := writer.Pos()

	if err := codec.Encode(writer, codec.NewRemove(key)); err != nil {
		return ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to write Remove record").
			WithGeneration(e.currentGen).WithOffset(start)
	}
	if err := writer.Flush(); err != nil {
		return ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to flush Remove record").
			WithGeneration(e.currentGen).WithOffset(start)
	}
	end := writer.Pos()

	old, _ := e.idx.Delete(key)
	// Both the superseded Set's length and the Remove record's own length
	// are dead as of this call (the Remove record itself is only ever read
	// during recovery, never by Get) — the stricter of the two choices
	// spec.md §9 open question 1 permits.
	e.compactableBytes += uint64(old.Length) + uint64(end-start)

	return e.maybeCompact()
}

// maybeCompact runs compaction (§4.4) when compactableBytes has crossed
// the configured threshold, synchronously, before returning to the
// caller that triggered it.
func (e *Engine) maybeCompact() error {
	if e.compactableBytes <= e.threshold {
		return nil
	}
	newActiveGen, err := compaction.Run(e.store, e.idx, e.currentGen, e.log)
	if err != nil {
		return err
	}
	e.currentGen = newActiveGen
	e.compactableBytes = 0
	return nil
}

// Close flushes and closes every open generation file and releases the
// advisory lock, if one was taken.
func (e *Engine) Close() error {
	err := e.store.Close()
	if e.lock != nil {
		if lerr := e.lock.Release(); lerr != nil && err == nil {
			err = ferrors.NewStorageError(lerr, ferrors.ErrorCodeIO, "failed to release advisory lock")
		}
	}
	return err
}

// CompactableBytes reports the current value of the compaction counter —
// exposed for tests exercising spec.md §8's compaction-triggering
// scenarios.
func (e *Engine) CompactableBytes() uint64 {
	return e.compactableBytes
}

// ActiveGeneration reports the generation currently open for append.
func (e *Engine) ActiveGeneration() uint64 {
	return e.currentGen
}
