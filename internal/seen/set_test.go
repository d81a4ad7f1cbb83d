package seen

import (
	"context"
	"testing"
)

func TestSet_AddContainsIdempotent(t *testing.T) {
	s := NewSet()
	if s.Contains("abc") {
		t.Fatal("empty set should not contain abc")
	}
	s.Add("abc")
	s.Add("abc")
	if !s.Contains("abc") {
		t.Error("expected abc after Add")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestSet_FingerprintsSorted(t *testing.T) {
	s := NewSet("c", "a", "b")
	got := s.Fingerprints()
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("Fingerprints = %v", got)
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore("seed")

	s, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.LastRun != nil {
		t.Error("fresh store should have nil LastRun")
	}
	s.Add("new")
	if err := m.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, _ := m.Load(ctx)
	if !again.Contains("seed") || !again.Contains("new") {
		t.Errorf("reloaded set missing entries: %v", again.Fingerprints())
	}
	if again.LastRun == nil {
		t.Error("LastRun should be set after Save")
	}
	if m.Saves() != 1 {
		t.Errorf("Saves = %d, want 1", m.Saves())
	}
}
