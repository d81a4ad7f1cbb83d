// Package seen tracks which listing fingerprints have already been emitted.
package seen

import (
	"context"
	"sort"
	"time"
)

// Set is the in-memory seen-set for one run. It is owned by a single run and
// is not safe for concurrent use.
type Set struct {
	ids     map[string]struct{}
	LastRun *time.Time // nil when no run has been saved yet
}

// NewSet returns a set holding the given fingerprints.
func NewSet(fingerprints ...string) *Set {
	s := &Set{ids: make(map[string]struct{}, len(fingerprints))}
	for _, fp := range fingerprints {
		s.ids[fp] = struct{}{}
	}
	return s
}

// Contains reports whether fp has been seen.
func (s *Set) Contains(fp string) bool {
	_, ok := s.ids[fp]
	return ok
}

// Add records fp as seen. Adding twice is a no-op.
func (s *Set) Add(fp string) {
	s.ids[fp] = struct{}{}
}

// Len returns the number of fingerprints in the set.
func (s *Set) Len() int {
	return len(s.ids)
}

// Fingerprints returns all fingerprints in sorted order.
func (s *Set) Fingerprints() []string {
	out := make([]string, 0, len(s.ids))
	for fp := range s.ids {
		out = append(out, fp)
	}
	sort.Strings(out)
	return out
}

// Store loads and persists a Set.
//
// Load returns an empty set with a nil LastRun when nothing has been stored
// yet, and an error wrapping model.ErrCorruptState when stored state exists but
// cannot be parsed. Save overwrites stored state with the full set and stamps
// LastRun with the time of the save; a crash mid-save must leave the previous
// state readable.
type Store interface {
	Load(ctx context.Context) (*Set, error)
	Save(ctx context.Context, s *Set) error
}
