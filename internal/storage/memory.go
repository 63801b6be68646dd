package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultMemoryQuota mirrors the ~5 MiB ceiling of a browser's local storage.
const DefaultMemoryQuota = 5 * 1024 * 1024

// Memory is an in-process KV backend with a total byte quota. It backs unit
// tests and the memory storage backend.
type Memory struct {
	mu     sync.RWMutex
	docs   map[string][]byte
	quota  int
	used   int
	logger zerolog.Logger
}

// NewMemory creates an in-memory KV store. A quota of zero or less applies
// DefaultMemoryQuota.
func NewMemory(quota int, logger zerolog.Logger) *Memory {
	if quota <= 0 {
		quota = DefaultMemoryQuota
	}
	return &Memory{
		docs:   make(map[string][]byte),
		quota:  quota,
		logger: logger.With().Str("storage", "memory").Logger(),
	}
}

// Get returns the document stored under key, or ErrNotFound.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(doc))
	copy(out, doc)
	return out, nil
}

// Set stores doc under key. The write is rejected with ErrQuotaExceeded
// before any mutation if it would push total usage past the quota.
func (m *Memory) Set(ctx context.Context, key string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.used - len(m.docs[key]) + len(doc)
	if next > m.quota {
		m.logger.Warn().
			Str("key", key).
			Int("doc_bytes", len(doc)).
			Int("quota_bytes", m.quota).
			Msg("write rejected, quota exceeded")
		return fmt.Errorf("%w: %d bytes for %q would exceed %d byte quota", ErrQuotaExceeded, len(doc), key, m.quota)
	}

	stored := make([]byte, len(doc))
	copy(stored, doc)
	m.docs[key] = stored
	m.used = next
	return nil
}

// Remove deletes the document under key.
func (m *Memory) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.used -= len(m.docs[key])
	delete(m.docs, key)
	return nil
}

// Keys lists all keys holding a document.
func (m *Memory) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.docs))
	for key := range m.docs {
		keys = append(keys, key)
	}
	return keys, nil
}
