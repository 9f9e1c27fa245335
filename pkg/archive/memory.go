package archive

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage implements Storage in memory, for tests and ephemeral
// runs.
type MemoryStorage struct {
	mu      sync.RWMutex
	records []*Record
}

// NewMemoryStorage creates empty in-memory history storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Append writes one record.
func (m *MemoryStorage) Append(_ context.Context, record *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.records = append(m.records, &copied)
	return nil
}

// ListByStatute returns the records for one statute id, oldest first.
func (m *MemoryStorage) ListByStatute(_ context.Context, statuteID string) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Record
	for _, record := range m.records {
		if record.StatuteID == statuteID {
			copied := *record
			out = append(out, &copied)
		}
	}
	return out, nil
}

// Count returns the total number of records.
func (m *MemoryStorage) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

// PruneOlderThan deletes records older than the cutoff.
func (m *MemoryStorage) PruneOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	deleted := 0
	for _, record := range m.records {
		if record.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, record)
	}
	m.records = kept
	return deleted, nil
}

// Close is a no-op for memory storage.
func (m *MemoryStorage) Close() error {
	return nil
}
