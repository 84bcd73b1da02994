package index

// Get returns the pointer stored for key, if present.
func (ix *Index) Get(key string) (Pointer, bool) {
	s := ix.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.entries[key]
	return p, ok
}

// Put records p as key's current pointer, returning the pointer it
// replaced (if any) so callers can account for the bytes it superseded —
// spec.md §4.4's compactableBytes bookkeeping needs exactly this.
func (ix *Index) Put(key string, p Pointer) (Pointer, bool) {
	s := ix.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	old, had := s.entries[key]
	s.entries[key] = p
	return old, had
}

// Delete removes key from the index, returning the pointer it held (if
// any) so the caller can account for its superseded bytes.
func (ix *Index) Delete(key string) (Pointer, bool) {
	s := ix.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	old, had := s.entries[key]
	delete(s.entries, key)
	return old, had
}

// Len returns the total number of live keys across every shard.
func (ix *Index) Len() int {
	total := 0
	for _, s := range ix.shards {
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}

// Each calls fn once per live entry, in no particular order. Compaction
// uses this to enumerate every record that must be copied forward.
// fn must not call back into the Index — Each holds each shard's lock for
// the duration of its own iteration.
func (ix *Index) Each(fn func(key string, p Pointer)) {
	for _, s := range ix.shards {
		s.mu.RLock()
		for k, p := range s.entries {
			fn(k, p)
		}
		s.mu.RUnlock()
	}
}

// Update replaces key's pointer in place — used by compaction to rewrite
// pointers to their new generation without touching compactableBytes
// accounting, since compaction moves live bytes rather than superseding
// them.
func (ix *Index) Update(key string, p Pointer) {
	s := ix.shardFor(key)
	s.mu.Lock()
	s.entries[key] = p
	s.mu.Unlock()
}
