package index

import (
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"

	"github.com/tmarlowe/ferrule/pkg/options"
)

// hashFuncFor returns the shard-selection hash for alg, defaulting to
// xxh3 for unrecognized values rather than panicking. Nothing upstream
// validates Options.HashAlgorithm, so an unset or out-of-range value ends
// up here.
func hashFuncFor(alg options.HashAlgorithm) func(string) uint64 {
	switch alg {
	case options.HashFNV1a:
		return fnv1aHash
	case options.HashBlake2b:
		return blake2bHash
	default:
		return xxh3Hash
	}
}

func xxh3Hash(key string) uint64 {
	return xxh3.HashString(key)
}

func fnv1aHash(key string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return h.Sum64()
}

// blake2bHash asks blake2b directly for an 8-byte (64-bit) digest, rather
// than truncating a longer one — the same New(8, nil) call jpl-au-folio
// uses for its own Blake2b identifier option. Offered as a cryptographic-
// strength alternative for embedders worried about hash-flooding a
// predictable shard, not for its speed.
func blake2bHash(key string) uint64 {
	h, _ := blake2b.New(8, nil)
	_, _ = h.Write([]byte(key))
	sum := h.Sum(nil)
	var v uint64
	for _, b := range sum {
		v = v<<8 | uint64(b)
	}
	return v
}
