package compaction

import (
	"testing"

	"github.com/tmarlowe/ferrule/internal/codec"
	"github.com/tmarlowe/ferrule/internal/index"
	"github.com/tmarlowe/ferrule/internal/storage"
	"github.com/tmarlowe/ferrule/pkg/logger"
	"github.com/tmarlowe/ferrule/pkg/options"
)

func writeSet(t *testing.T, s *storage.Store, key, value string, gen uint64) index.Pointer {
	t.Helper()
	writer := s.Writer()
	start := writer.Pos()
	if err := codec.Encode(writer, codec.NewSet(key, value)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := writer.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	return index.Pointer{Generation: gen, Start: start, Length: writer.Pos() - start}
}

func TestCompactionPreservesValuesAndAdvancesGenerations(t *testing.T) {
	dir := t.TempDir()
	s, _, err := storage.Open(dir, logger.Noop())
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer s.Close()

	opts := options.NewDefaultOptions()
	ix := index.New(&opts)

	currentGen := s.ActiveGeneration()
	ix.Put("a", writeSet(t, s, "a", "1", currentGen))
	ix.Put("b", writeSet(t, s, "b", "2", currentGen))
	ix.Put("a", writeSet(t, s, "a", "1-updated", currentGen))

	newActiveGen, err := Run(s, ix, currentGen, logger.Noop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if newActiveGen != currentGen+2 {
		t.Fatalf("newActiveGen: got %d, want %d", newActiveGen, currentGen+2)
	}

	pa, ok := ix.Get("a")
	if !ok || pa.Generation != currentGen+1 {
		t.Fatalf("pointer for a after compaction: got (%+v, %v), want generation %d", pa, ok, currentGen+1)
	}
	data, err := s.ReadRecord(pa.Generation, pa.Start, pa.Length)
	if err != nil {
		t.Fatalf("ReadRecord a: %v", err)
	}
	cmd, err := codec.DecodeOne(data)
	if err != nil {
		t.Fatalf("DecodeOne a: %v", err)
	}
	if v, _ := cmd.Value(); v != "1-updated" {
		t.Fatalf("value for a after compaction: got %q, want %q", v, "1-updated")
	}

	pb, ok := ix.Get("b")
	if !ok || pb.Generation != currentGen+1 {
		t.Fatalf("pointer for b after compaction: got (%+v, %v)", pb, ok)
	}
	data, err = s.ReadRecord(pb.Generation, pb.Start, pb.Length)
	if err != nil {
		t.Fatalf("ReadRecord b: %v", err)
	}
	cmd, err = codec.DecodeOne(data)
	if err != nil {
		t.Fatalf("DecodeOne b: %v", err)
	}
	if v, _ := cmd.Value(); v != "2" {
		t.Fatalf("value for b after compaction: got %q, want %q", v, "2")
	}
}
