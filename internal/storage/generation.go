package storage

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// extension is the fixed suffix every generation file carries. Besides its
// {u64}.log generation files, the store directory holds only the LOCK file
// pkg/lock creates when advisory locking is on; ListGenerations skips it.
const extension = ".log"

// FileName returns the on-disk file name for a generation number.
func FileName(gen uint64) string {
	return strconv.FormatUint(gen, 10) + extension
}

// ParseGeneration extracts the generation number from a file name, if it
// matches the {u64}.log pattern exactly.
func ParseGeneration(name string) (uint64, bool) {
	if !strings.HasSuffix(name, extension) {
		return 0, false
	}
	trimmed := strings.TrimSuffix(name, extension)
	if trimmed == "" {
		return 0, false
	}
	gen, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0, false
	}
	// Reject non-canonical forms like "01.log" so generation file names
	// round-trip exactly through FileName.
	if FileName(gen) != name {
		return 0, false
	}
	return gen, true
}

// ListGenerations scans dir for generation files and returns their numbers
// in ascending order — the order spec.md §4.3 step 1 and §4.5 require
// recovery to process them in, so that later writes correctly supersede
// earlier ones.
func ListGenerations(dir string) ([]uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading store directory %s: %w", dir, err)
	}

	gens := make([]uint64, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if gen, ok := ParseGeneration(e.Name()); ok {
			gens = append(gens, gen)
		}
	}

	sort.Slice(gens, func(i, j int) bool { return gens[i] < gens[j] })
	return gens, nil
}
