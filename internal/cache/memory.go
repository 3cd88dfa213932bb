package cache

import (
	"context"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

var _ QueryCache = (*MemoryQueryCache)(nil)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// MemoryQueryCache keeps query results in a process local LRU.
type MemoryQueryCache struct {
	entries *lru.Cache[string, memoryEntry]
	now     func() time.Time
}

func NewMemoryQueryCache(size int) (*MemoryQueryCache, error) {
	if size <= 0 {
		size = 512
	}

	entries, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, err
	}

	return &MemoryQueryCache{entries: entries, now: time.Now}, nil
}

func (m *MemoryQueryCache) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	entry, ok := m.entries.Get(key.String())
	if !ok {
		return nil, false, nil
	}

	if !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		m.entries.Remove(key.String())
		return nil, false, nil
	}

	return entry.value, true, nil
}

func (m *MemoryQueryCache) Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expires = m.now().Add(ttl)
	}

	m.entries.Add(key.String(), entry)
	return nil
}

func (m *MemoryQueryCache) Invalidate(ctx context.Context, key Key) error {
	m.entries.Remove(key.String())
	return nil
}

func (m *MemoryQueryCache) InvalidateEntity(ctx context.Context, entity string) error {
	for _, k := range m.entries.Keys() {
		if k == entity || strings.HasPrefix(k, entity+":") {
			m.entries.Remove(k)
		}
	}
	return nil
}
