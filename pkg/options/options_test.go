package options

import "testing"

func TestDefaults(t *testing.T) {
	o := NewDefaultOptions()
	if o.DataDir != DefaultDataDir {
		t.Errorf("DataDir: got %q, want %q", o.DataDir, DefaultDataDir)
	}
	if o.CompactionThreshold != 1048576 {
		t.Errorf("CompactionThreshold: got %d, want 1048576 (spec.md §6's default must never change)", o.CompactionThreshold)
	}
	if o.ShardCount != DefaultShardCount {
		t.Errorf("ShardCount: got %d, want %d", o.ShardCount, DefaultShardCount)
	}
	if o.HashAlgorithm != HashXXH3 {
		t.Errorf("HashAlgorithm: got %v, want HashXXH3", o.HashAlgorithm)
	}
	if !o.AdvisoryLock {
		t.Error("AdvisoryLock should default to true")
	}
}

func TestOptionFuncsApplyOverDefaults(t *testing.T) {
	o := NewDefaultOptions()
	for _, apply := range []OptionFunc{
		WithDataDir("/tmp/custom"),
		WithCompactionThreshold(2048),
		WithShardCount(32),
		WithHashAlgorithm(HashBlake2b),
		WithAdvisoryLock(false),
	} {
		apply(&o)
	}

	if o.DataDir != "/tmp/custom" {
		t.Errorf("DataDir: got %q", o.DataDir)
	}
	if o.CompactionThreshold != 2048 {
		t.Errorf("CompactionThreshold: got %d", o.CompactionThreshold)
	}
	if o.ShardCount != 32 {
		t.Errorf("ShardCount: got %d", o.ShardCount)
	}
	if o.HashAlgorithm != HashBlake2b {
		t.Errorf("HashAlgorithm: got %v", o.HashAlgorithm)
	}
	if o.AdvisoryLock {
		t.Error("AdvisoryLock: got true, want false")
	}
}

func TestWithDataDirIgnoresBlank(t *testing.T) {
	o := NewDefaultOptions()
	WithDataDir("   ")(&o)
	if o.DataDir != DefaultDataDir {
		t.Errorf("blank DataDir should be ignored, got %q", o.DataDir)
	}
}

func TestWithCompactionThresholdIgnoresZero(t *testing.T) {
	o := NewDefaultOptions()
	WithCompactionThreshold(0)(&o)
	if o.CompactionThreshold != DefaultCompactionThreshold {
		t.Errorf("zero threshold should be ignored, got %d", o.CompactionThreshold)
	}
}

func TestWithDefaultOptionsResetsEverything(t *testing.T) {
	o := NewDefaultOptions()
	WithDataDir("/somewhere/else")(&o)
	WithShardCount(64)(&o)
	WithDefaultOptions()(&o)

	if o.DataDir != DefaultDataDir || o.ShardCount != DefaultShardCount {
		t.Errorf("WithDefaultOptions did not fully reset: %+v", o)
	}
}
