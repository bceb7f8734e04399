package redis

import (
	"context"
	"path"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is a process-local Cache with the same key and pattern semantics
// as RedisProvider. It backs single-instance deployments without Redis.
type MemoryCache struct {
	mu          sync.Mutex
	entries     map[string]memoryEntry
	generations map[string]int64
	ttl         time.Duration
	now         func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries:     make(map[string]memoryEntry),
		generations: make(map[string]int64),
		ttl:         ttl,
		now:         time.Now,
	}
}

func (m *MemoryCache) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	m.mu.Lock()
	e, ok := m.entries[key]
	if ok && !e.expiresAt.IsZero() && !e.expiresAt.After(m.now()) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return false
	}
	return json.Unmarshal(e.data, dst) == nil
}

func (m *MemoryCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if ttl <= 0 {
		ttl = m.ttl
	}

	// like a redis SET without EX, a zero ttl never expires
	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
}

func (m *MemoryCache) DeletePattern(ctx context.Context, pattern string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for k := range m.entries {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.entries, k)
			deleted++
		}
	}
	return deleted
}

func (m *MemoryCache) Generation(ctx context.Context, key string) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generations[key], true
}

func (m *MemoryCache) BumpGeneration(ctx context.Context, key string) {
	m.mu.Lock()
	m.generations[key]++
	m.mu.Unlock()
}
