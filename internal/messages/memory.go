package messages

import (
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryStore)
}

// memoryStore keeps messages in an expirable LRU keyed by a monotonically
// increasing sequence number, so LRU order is insertion order.
type memoryStore struct {
	mu       sync.Mutex
	seq      uint64
	clearing atomic.Bool
	inner    *lru.LRU[uint64, string]
}

func newMemoryStore(cfg ProviderConfig) (Store, error) {
	m := &memoryStore{}
	var onEvict func(uint64, string)
	if cfg.OnEvict != nil {
		onEvict = func(_ uint64, message string) {
			// Purge reports every entry, a clear is not an eviction
			if m.clearing.Load() {
				return
			}
			cfg.OnEvict(message)
		}
	}
	m.inner = lru.NewLRU[uint64, string](cfg.Size, onEvict, cfg.TTL)
	return m, nil
}

func (m *memoryStore) Append(message string) {
	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.mu.Unlock()

	m.inner.Add(seq, message)
}

func (m *memoryStore) List() []string {
	return m.inner.Values()
}

func (m *memoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearing.Store(true)
	m.inner.Purge()
	m.clearing.Store(false)
}

func (m *memoryStore) Len() int {
	return m.inner.Len()
}

func (m *memoryStore) Close() error {
	return nil
}
