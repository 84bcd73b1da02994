package engine

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/tmarlowe/ferrule/internal/codec"
	"github.com/tmarlowe/ferrule/internal/index"
	"github.com/tmarlowe/ferrule/internal/storage"
	ferrors "github.com/tmarlowe/ferrule/pkg/errors"
)

// Recover implements spec.md §4.5: streaming every generation in gens, in
// the ascending order the caller already sorted them in, replaying each
// record against idx and accumulating the bytes each decoded record makes
// dead. It returns the rebuilt compactableBytes total.
//
// A record stream can end two ways: cleanly, at a record boundary (io.EOF),
// or mid-record, with a truncated tail left by a crash between "bytes
// written" and "flush returned" (io.ErrUnexpectedEOF). spec.md §9 requires
// recovery to tolerate the second case rather than fail open; internal/codec
// itself stays agnostic about which kind of EOF it hit, so this is the one
// place that decides a truncated tail is not a decode error.
func Recover(store *storage.Store, idx *index.Index, gens []uint64, log *zap.SugaredLogger) (uint64, error) {
	var compactableBytes uint64

	for _, gen := range gens {
		n, err := recoverGeneration(store, idx, gen, log)
		if err != nil {
			return 0, err
		}
		compactableBytes += n
	}

	return compactableBytes, nil
}

func recoverGeneration(store *storage.Store, idx *index.Index, gen uint64, log *zap.SugaredLogger) (uint64, error) {
	reader, ok := store.Reader(gen)
	if !ok {
		return 0, ferrors.NewStorageError(nil, ferrors.ErrorCodeIO, "no reader registered for generation during recovery").WithGeneration(gen)
	}

	dec := codec.NewDecoder(reader)

	var (
		compactableBytes uint64
		pos              int64
		recordCount      int
	)

	for {
		cmd, endPos, err := dec.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				log.Warnw("truncated tail record tolerated during recovery",
					"generation", gen, "offset", pos)
				break
			}
			return 0, ferrors.NewStorageError(err, ferrors.ErrorCodeDecodeFailure, "failed to decode record during recovery").
				WithGeneration(gen).WithOffset(pos)
		}

		switch {
		case cmd.IsSet():
			if old, had := idx.Get(cmd.Key()); had {
				compactableBytes += uint64(old.Length)
			}
			idx.Put(cmd.Key(), index.Pointer{Generation: gen, Start: pos, Length: endPos - pos})
		case cmd.IsRemove():
			if old, had := idx.Delete(cmd.Key()); had {
				compactableBytes += uint64(old.Length)
			}
			compactableBytes += uint64(endPos - pos)
		}

		pos = endPos
		recordCount++
	}

	log.Infow("generation recovered", "generation", gen, "records", recordCount, "compactableBytes", compactableBytes)
	return compactableBytes, nil
}
