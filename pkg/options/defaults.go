package options

const (
	// DefaultDataDir is used when no directory is supplied via WithDataDir.
	// Embedders are expected to override this in almost every real use.
	DefaultDataDir = "./ferrule-data"

	// DefaultCompactionThreshold is spec.md §6's COMPACTION_THRESHOLD: the
	// number of compactable bytes that triggers a synchronous compaction.
	// The spec requires implementations not to change this default.
	DefaultCompactionThreshold uint64 = 1048576

	// DefaultShardCount is the number of shards the in-memory index is
	// split across. One shard behaves like a single unsharded map.
	DefaultShardCount = 16

	// DefaultHashAlgorithm is the hash used to choose an index shard for a
	// given key.
	DefaultHashAlgorithm = HashXXH3
)

// defaultOptions holds the baseline configuration for a ferrule Instance.
var defaultOptions = Options{
	DataDir:             DefaultDataDir,
	CompactionThreshold: DefaultCompactionThreshold,
	ShardCount:          DefaultShardCount,
	HashAlgorithm:       DefaultHashAlgorithm,
	AdvisoryLock:        true,
}

// NewDefaultOptions returns a copy of the baseline configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
