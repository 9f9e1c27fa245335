package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryBackend implements Backend with an in-process map. It is the
// default backend; all data is lost when the process exits.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string]*Record)}
}

// Save persists a record, replacing any record with the same id. The
// original CreatedAt is preserved on replacement.
func (m *MemoryBackend) Save(_ context.Context, record *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *record
	stored.UpdatedAt = time.Now().UTC()
	if existing, ok := m.records[record.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	}
	m.records[record.ID] = &stored
	return nil
}

// Get retrieves a record by statute id.
func (m *MemoryBackend) Get(_ context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *record
	return &copied, nil
}

// List returns records matching the filter, sorted by id.
func (m *MemoryBackend) List(_ context.Context, filter Filter) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Record
	for _, record := range m.records {
		if filter.matches(record) {
			copied := *record
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete removes a record by id.
func (m *MemoryBackend) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}

// Close is a no-op for the memory backend.
func (m *MemoryBackend) Close() error {
	return nil
}
