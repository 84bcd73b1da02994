// Package storage manages the lifecycle of generation files on disk:
// discovering existing generations at Open, creating the active generation
// and a reader for every generation, and — when compaction runs — creating
// fresh generations and deleting superseded ones.
//
// Grounded on iamNilotpal/ignite/internal/storage/storage.go's
// discover-then-open-active-segment bootstrap flow, adapted from
// size-based segment rotation to the generation numbering spec.md §4.3
// and §4.4 require: a Store never rotates mid-write, only at Open and at
// compaction.
package storage

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	ferrors "github.com/tmarlowe/ferrule/pkg/errors"

	"github.com/tmarlowe/ferrule/internal/posio"
	"github.com/tmarlowe/ferrule/pkg/filesys"
)

// Open discovers existing generation files under dir, opens a reader for
// each, and creates a fresh active generation numbered one past the
// highest existing generation (or 1, if dir held none) — spec.md §4.3
// steps 1 and 3.
func Open(dir string, log *zap.SugaredLogger) (*Store, []uint64, error) {
	if err := filesys.CreateDir(dir, 0o755, true); err != nil {
		return nil, nil, ferrors.ClassifyDirectoryCreationError(err, dir)
	}

	gens, err := ListGenerations(dir)
	if err != nil {
		return nil, nil, ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to list generation files").WithPath(dir)
	}

	s := &Store{
		dir:        dir,
		log:        log,
		files:      make(map[uint64]*os.File),
		readers:    make(map[uint64]*posio.Reader),
		writeFiles: make(map[uint64]*os.File),
	}

	for _, gen := range gens {
		if err := s.openReader(gen); err != nil {
			s.Close()
			return nil, nil, err
		}
	}

	var activeGen uint64 = 1
	if len(gens) > 0 {
		activeGen = gens[len(gens)-1] + 1
	}

	if err := s.createActive(activeGen); err != nil {
		s.Close()
		return nil, nil, err
	}

	log.Infow("storage opened", "dir", dir, "recoveredGenerations", gens, "activeGeneration", activeGen)
	return s, gens, nil
}

// openReader opens an existing, immutable generation file for reading and
// registers it. It does not create the file.
func (s *Store) openReader(gen uint64) error {
	path := filepath.Join(s.dir, FileName(gen))
	f, err := os.OpenFile(path, os.O_RDONLY, 0o644)
	if err != nil {
		return ferrors.ClassifyFileOpenError(err, path, gen)
	}
	r, err := posio.NewReader(f)
	if err != nil {
		f.Close()
		return ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to position reader").WithPath(path).WithGeneration(gen)
	}
	s.files[gen] = f
	s.readers[gen] = r
	return nil
}

// createActive creates (or opens, if re-entering an already-created
// generation) gen as the active generation, with both a writer and a
// reader — Get must be able to read records from the generation currently
// being written, within the same process.
func (s *Store) createActive(gen uint64) error {
	path := filepath.Join(s.dir, FileName(gen))

	wf, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return ferrors.ClassifyFileOpenError(err, path, gen)
	}
	writer, err := posio.NewWriter(wf)
	if err != nil {
		wf.Close()
		return ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to position writer").WithPath(path).WithGeneration(gen)
	}

	rf, err := os.OpenFile(path, os.O_RDONLY, 0o644)
	if err != nil {
		wf.Close()
		return ferrors.ClassifyFileOpenError(err, path, gen)
	}
	reader, err := posio.NewReader(rf)
	if err != nil {
		wf.Close()
		rf.Close()
		return ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to position reader").WithPath(path).WithGeneration(gen)
	}

	s.activeGen = gen
	s.activeFile = wf
	s.activeWriter = writer
	s.files[gen] = rf
	s.readers[gen] = reader

	s.log.Infow("generation created", "generation", gen, "path", path)
	return nil
}

// ActiveGeneration returns the generation number currently open for
// append.
func (s *Store) ActiveGeneration() uint64 {
	return s.activeGen
}

// Writer returns the active generation's writer — the sole writer in the
// store, per spec.md §5.
func (s *Store) Writer() *posio.Writer {
	return s.activeWriter
}

// Reader returns the reader registered for gen, if any.
func (s *Store) Reader(gen uint64) (*posio.Reader, bool) {
	r, ok := s.readers[gen]
	return r, ok
}

// CreateGeneration creates a brand-new, empty generation file and opens
// both a writer and reader for it — used by compaction to create its
// destination (compactionGen) and the store's next active generation
// (newActiveGen), spec.md §4.4 steps 2 and 3.
func (s *Store) CreateGeneration(gen uint64) (*posio.Writer, *posio.Reader, error) {
	path := filepath.Join(s.dir, FileName(gen))

	wf, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o644)
	if err != nil {
		return nil, nil, ferrors.ClassifyFileOpenError(err, path, gen)
	}
	writer, err := posio.NewWriter(wf)
	if err != nil {
		wf.Close()
		return nil, nil, ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to position writer").WithPath(path).WithGeneration(gen)
	}

	rf, err := os.OpenFile(path, os.O_RDONLY, 0o644)
	if err != nil {
		wf.Close()
		return nil, nil, ferrors.ClassifyFileOpenError(err, path, gen)
	}
	reader, err := posio.NewReader(rf)
	if err != nil {
		wf.Close()
		rf.Close()
		return nil, nil, ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to position reader").WithPath(path).WithGeneration(gen)
	}

	s.files[gen] = rf
	s.readers[gen] = reader
	s.writeFiles[gen] = wf

	s.log.Infow("generation created", "generation", gen, "path", path)
	return writer, reader, nil
}

// CloseWriter closes and forgets the write handle CreateGeneration opened
// for gen, for a generation that was created as a compaction destination
// but never promoted to active — once compaction has flushed it, nothing
// writes to it again; it is read thereafter through its already-registered
// reader. Calling it on a generation with no pending write handle (already
// closed, or the active generation, which PromoteActive/Close handle
// instead) is a no-op.
func (s *Store) CloseWriter(gen uint64) error {
	wf, ok := s.writeFiles[gen]
	if !ok {
		return nil
	}
	delete(s.writeFiles, gen)
	if err := wf.Close(); err != nil {
		return ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to close generation write handle").WithGeneration(gen)
	}
	return nil
}

// PromoteActive switches the store's active writer to the generation just
// created by CreateGeneration, closing the previous active write handle
// (its reader stays registered, since the file is still a live
// generation). Used by compaction's step 2.
func (s *Store) PromoteActive(gen uint64, writer *posio.Writer) error {
	if s.activeFile != nil {
		if err := s.activeFile.Close(); err != nil {
			return ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to close previous active generation write handle").WithGeneration(s.activeGen)
		}
	}

	wf, ok := s.writeFiles[gen]
	if !ok {
		return ferrors.NewStorageError(nil, ferrors.ErrorCodeIO, "no pending write handle for generation promoted to active").WithGeneration(gen)
	}
	delete(s.writeFiles, gen)

	s.activeGen = gen
	s.activeWriter = writer
	s.activeFile = wf
	return nil
}

// RemoveGenerationsBelow closes and deletes every generation strictly less
// than keepFrom — spec.md §4.4 step 6, run after compaction has copied
// every live record forward.
func (s *Store) RemoveGenerationsBelow(keepFrom uint64) error {
	for gen, f := range s.files {
		if gen >= keepFrom {
			continue
		}
		path := f.Name()
		if err := f.Close(); err != nil {
			return ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to close superseded generation").WithPath(path).WithGeneration(gen)
		}
		delete(s.files, gen)
		delete(s.readers, gen)
		if wf, ok := s.writeFiles[gen]; ok {
			delete(s.writeFiles, gen)
			_ = wf.Close()
		}
		if err := filesys.DeleteFile(path); err != nil {
			return ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to delete superseded generation").WithPath(path).WithGeneration(gen)
		}
		s.log.Infow("generation removed", "generation", gen, "path", path)
	}
	return nil
}

// CopyRecord copies exactly length raw bytes starting at start in the
// source generation's reader to dst, returning the number of bytes copied.
// Compaction uses this to carry surviving Set records forward byte-for-byte
// (spec.md §4.4: "compaction copies raw bytes; it does not re-encode").
func (s *Store) CopyRecord(srcGen uint64, start, length int64, dst io.Writer) (int64, error) {
	reader, ok := s.readers[srcGen]
	if !ok {
		return 0, ferrors.NewStorageError(nil, ferrors.ErrorCodeIO, "no reader registered for generation").WithGeneration(srcGen)
	}
	if _, err := reader.Seek(start, io.SeekStart); err != nil {
		return 0, ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to seek source generation").WithGeneration(srcGen).WithOffset(start)
	}
	n, err := io.CopyN(dst, reader, length)
	if err != nil {
		return n, ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to copy record during compaction").WithGeneration(srcGen).WithOffset(start)
	}
	return n, nil
}

// ReadRecord reads exactly length bytes starting at start from the given
// generation's reader — the byte range an index entry pins (spec.md §4.3
// Get step 2).
func (s *Store) ReadRecord(gen uint64, start, length int64) ([]byte, error) {
	reader, ok := s.readers[gen]
	if !ok {
		return nil, ferrors.NewStorageError(nil, ferrors.ErrorCodeIO, "no reader registered for generation").WithGeneration(gen)
	}
	if _, err := reader.Seek(start, io.SeekStart); err != nil {
		return nil, ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to seek generation").WithGeneration(gen).WithOffset(start)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return nil, ferrors.NewStorageError(err, ferrors.ErrorCodeIO, "failed to read record").WithGeneration(gen).WithOffset(start)
	}
	return buf, nil
}

// Close flushes the active writer and closes every open file handle.
func (s *Store) Close() error {
	var firstErr error
	if s.activeWriter != nil {
		if err := s.activeWriter.Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.activeFile != nil {
		if err := s.activeFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, f := range s.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, wf := range s.writeFiles {
		if err := wf.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return ferrors.NewStorageError(firstErr, ferrors.ErrorCodeIO, "failed to close storage cleanly")
	}
	return nil
}
