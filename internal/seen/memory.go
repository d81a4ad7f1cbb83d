package seen

import (
	"context"
	"time"
)

// MemoryStore keeps the set in process memory. Used by check mode and tests:
// nothing survives the process.
type MemoryStore struct {
	ids     []string
	lastRun *time.Time
	saves   int
}

// NewMemoryStore returns a store preloaded with the given fingerprints.
func NewMemoryStore(fingerprints ...string) *MemoryStore {
	return &MemoryStore{ids: fingerprints}
}

func (m *MemoryStore) Load(_ context.Context) (*Set, error) {
	s := NewSet(m.ids...)
	s.LastRun = m.lastRun
	return s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Set) error {
	now := time.Now().UTC()
	s.LastRun = &now
	m.ids = s.Fingerprints()
	m.lastRun = &now
	m.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (m *MemoryStore) Saves() int { return m.saves }
