package store

import "sync"

// Backend is the raw byte storage a Store is built on. Implementations are
// injected so the persistence medium stays swappable: files on disk for the
// daemon, a map for tests, or nothing at all when no writable state location
// exists.
type Backend interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) ([]byte, bool)
	// Set stores the value under key, replacing any prior value.
	Set(key string, value []byte)
	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(key string)
}

// MemoryBackend keeps values in process memory.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (b *MemoryBackend) Get(key string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.values[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

func (b *MemoryBackend) Set(key string, value []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = append([]byte(nil), value...)
}

func (b *MemoryBackend) Delete(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.values, key)
}

// DisabledBackend is the "no storage available" environment. Every read
// misses and every write is discarded, so callers see empty defaults without
// ever failing.
type DisabledBackend struct{}

func (DisabledBackend) Get(string) ([]byte, bool) { return nil, false }
func (DisabledBackend) Set(string, []byte)        {}
func (DisabledBackend) Delete(string)             {}
