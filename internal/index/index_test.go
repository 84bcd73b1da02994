package index

import (
	"testing"

	"github.com/tmarlowe/ferrule/pkg/options"
)

func testOptions(alg options.HashAlgorithm, shards int) *options.Options {
	o := options.NewDefaultOptions()
	o.HashAlgorithm = alg
	o.ShardCount = shards
	return &o
}

func TestPutGetDelete(t *testing.T) {
	for _, alg := range []options.HashAlgorithm{options.HashXXH3, options.HashFNV1a, options.HashBlake2b} {
		ix := New(testOptions(alg, 8))

		if _, ok := ix.Get("missing"); ok {
			t.Fatalf("alg %v: Get on empty index returned ok=true", alg)
		}

		old, had := ix.Put("k", Pointer{Generation: 1, Start: 0, Length: 10})
		if had {
			t.Fatalf("alg %v: first Put reported replacing an entry: %+v", alg, old)
		}

		p, ok := ix.Get("k")
		if !ok || p.Generation != 1 || p.Start != 0 || p.Length != 10 {
			t.Fatalf("alg %v: Get after Put: got (%+v, %v)", alg, p, ok)
		}

		old, had = ix.Put("k", Pointer{Generation: 2, Start: 5, Length: 20})
		if !had || old.Length != 10 {
			t.Fatalf("alg %v: second Put should report replacing length-10 entry, got had=%v old=%+v", alg, had, old)
		}

		old, had = ix.Delete("k")
		if !had || old.Generation != 2 {
			t.Fatalf("alg %v: Delete should report removing the second entry, got had=%v old=%+v", alg, had, old)
		}

		if _, ok := ix.Get("k"); ok {
			t.Fatalf("alg %v: key still present after Delete", alg)
		}

		if _, had = ix.Delete("k"); had {
			t.Fatalf("alg %v: Delete on an already-absent key reported had=true", alg)
		}
	}
}

func TestLenAndEachCoverAllShards(t *testing.T) {
	ix := New(testOptions(options.HashXXH3, 4))

	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for i, k := range keys {
		ix.Put(k, Pointer{Generation: 1, Start: int64(i), Length: 1})
	}

	if got := ix.Len(); got != len(keys) {
		t.Fatalf("Len: got %d, want %d", got, len(keys))
	}

	seen := make(map[string]bool)
	ix.Each(func(key string, p Pointer) { seen[key] = true })
	for _, k := range keys {
		if !seen[k] {
			t.Fatalf("Each never visited key %q", k)
		}
	}
}

func TestUpdateReplacesPointerWithoutAffectingLen(t *testing.T) {
	ix := New(testOptions(options.HashXXH3, 4))
	ix.Put("k", Pointer{Generation: 1, Start: 0, Length: 5})
	ix.Update("k", Pointer{Generation: 2, Start: 100, Length: 5})

	if got := ix.Len(); got != 1 {
		t.Fatalf("Len after Update: got %d, want 1", got)
	}
	p, ok := ix.Get("k")
	if !ok || p.Generation != 2 || p.Start != 100 {
		t.Fatalf("Get after Update: got (%+v, %v)", p, ok)
	}
}

func TestShardCountRoundsDownToPowerOfTwo(t *testing.T) {
	ix := New(testOptions(options.HashXXH3, 10))
	if got := len(ix.shards); got != 8 {
		t.Fatalf("shard count for requested 10: got %d, want 8", got)
	}
}
