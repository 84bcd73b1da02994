package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileNameAndParseGenerationRoundTrip(t *testing.T) {
	for _, gen := range []uint64{0, 1, 42, 18446744073709551615} {
		name := FileName(gen)
		got, ok := ParseGeneration(name)
		if !ok || got != gen {
			t.Fatalf("round trip for %d: name=%q got=%d ok=%v", gen, name, got, ok)
		}
	}
}

func TestParseGenerationRejectsNonCanonicalNames(t *testing.T) {
	cases := []string{"01.log", "1.txt", "log", "-1.log", "1.log.bak", ".log"}
	for _, name := range cases {
		if _, ok := ParseGeneration(name); ok {
			t.Fatalf("ParseGeneration(%q) unexpectedly succeeded", name)
		}
	}
}

func TestListGenerationsSortsAscendingAndIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"3.log", "1.log", "2.log", "LOCK", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("seed file %q: %v", name, err)
		}
	}

	gens, err := ListGenerations(dir)
	if err != nil {
		t.Fatalf("ListGenerations: %v", err)
	}
	want := []uint64{1, 2, 3}
	if len(gens) != len(want) {
		t.Fatalf("ListGenerations: got %v, want %v", gens, want)
	}
	for i := range want {
		if gens[i] != want[i] {
			t.Fatalf("ListGenerations: got %v, want %v", gens, want)
		}
	}
}
