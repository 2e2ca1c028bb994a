package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memEntry struct {
	val       []byte
	expiresAt time.Time
}

// Memory is the in-process Store used when no Redis address is configured.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memEntry),
		now:     time.Now,
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool) {
	_ = ctx

	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}
	return e.val, true
}

func (m *Memory) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	_ = ctx
	if ttl <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// opportunistic sweep keeps the map from growing unbounded
	now := m.now()
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
		}
	}

	m.entries[key] = memEntry{val: val, expiresAt: now.Add(ttl)}
}

func (m *Memory) InvalidatePrefix(ctx context.Context, prefix string) {
	_ = ctx

	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
}
