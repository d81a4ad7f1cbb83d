package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amishk599/medalerts/internal/model"
)

func TestPlanQueries(t *testing.T) {
	p := Plan{
		Terms:                  []string{"a", "b", "c", "d", "e"},
		PriorityMetro:          "Chicago, IL",
		PriorityQueries:        3,
		SecondaryMetros:        []string{"Dallas, TX", "Boston, MA"},
		SecondaryTermsPerMetro: 2,
	}
	// Jan 12 → offset 12 % 5 = 2.
	day := time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)

	want := []model.Query{
		{Term: "c", Metro: "Chicago, IL"},
		{Term: "d", Metro: "Chicago, IL"},
		{Term: "e", Metro: "Chicago, IL"},
		{Term: "c", Metro: "Dallas, TX"},
		{Term: "d", Metro: "Dallas, TX"},
		{Term: "c", Metro: "Boston, MA"},
		{Term: "d", Metro: "Boston, MA"},
	}
	assert.Equal(t, want, PlanQueries(p, day))
}

func TestPlanQueries_NoTerms(t *testing.T) {
	p := Plan{PriorityMetro: "Chicago, IL", PriorityQueries: 3, SecondaryMetros: []string{"Dallas, TX"}, SecondaryTermsPerMetro: 2}
	assert.Empty(t, PlanQueries(p, time.Now()))
}
