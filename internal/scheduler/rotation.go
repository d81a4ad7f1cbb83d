package scheduler

import "time"

// PickTerms returns count search terms starting at day.YearDay() % len(terms),
// wrapping around the list. Terms repeat when count exceeds len(terms).
func PickTerms(terms []string, count int, day time.Time) []string {
	if len(terms) == 0 || count <= 0 {
		return nil
	}
	start := day.YearDay() % len(terms)
	picked := make([]string, count)
	for i := range picked {
		picked[i] = terms[(start+i)%len(terms)]
	}
	return picked
}

// Rotation picks the day's terms from a fixed list using the UTC calendar day.
type Rotation struct {
	terms []string
	now   func() time.Time
}

// NewRotation returns a rotation over terms using the wall clock.
func NewRotation(terms []string) *Rotation {
	return &Rotation{terms: terms, now: time.Now}
}

// WithClock replaces the clock. Used by tests and by the audit view to preview
// another day's terms.
func (r *Rotation) WithClock(now func() time.Time) *Rotation {
	r.now = now
	return r
}

// Pick returns count terms for today.
func (r *Rotation) Pick(count int) []string {
	return PickTerms(r.terms, count, r.now().UTC())
}
