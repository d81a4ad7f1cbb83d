package pipeline

import (
	"time"

	"github.com/amishk599/medalerts/internal/model"
	"github.com/amishk599/medalerts/internal/scheduler"
)

// Plan describes which metros are searched on a run and how many rotated terms
// each one gets.
type Plan struct {
	Terms                  []string
	PriorityMetro          string
	PriorityQueries        int
	SecondaryMetros        []string
	SecondaryTermsPerMetro int
}

// PlanQueries expands a plan into the ordered query list for day: the
// priority metro's queries first, then each secondary metro in order.
func PlanQueries(p Plan, day time.Time) []model.Query {
	var queries []model.Query
	for _, term := range scheduler.PickTerms(p.Terms, p.PriorityQueries, day) {
		queries = append(queries, model.Query{Term: term, Metro: p.PriorityMetro})
	}
	secondary := scheduler.PickTerms(p.Terms, p.SecondaryTermsPerMetro, day)
	for _, metro := range p.SecondaryMetros {
		for _, term := range secondary {
			queries = append(queries, model.Query{Term: term, Metro: metro})
		}
	}
	return queries
}
