package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amishk599/medalerts/internal/model"
)

func TestScore_Examples(t *testing.T) {
	s := NewScorer()
	tests := []struct {
		name string
		l    model.Listing
		want int
	}{
		{
			name: "baseline only",
			l:    model.Listing{Title: "Sales Rep", CompanyName: "Acme"},
			want: 50,
		},
		{
			// associate(+10) medical sales(+5) title associate(+15) stryker(+15)
			name: "catalog company with associate title",
			l:    model.Listing{Title: "Medical Sales Associate", CompanyName: "Stryker", Location: "Chicago, IL"},
			want: 95,
		},
		{
			// clinical(+5) hospital(+5) minus staffing(-10)
			name: "staffing agency penalty",
			l:    model.Listing{Title: "Clinical Rep", CompanyName: "MedPro Staffing", Description: "hospital accounts"},
			want: 50,
		},
		{
			name: "empty listing",
			l:    model.Listing{},
			want: 50,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Score(tt.l))
		})
	}
}

func TestScore_CappedAt100(t *testing.T) {
	l := model.Listing{
		Title:       "Junior Associate Entry Level Surgical Sales Trainee",
		CompanyName: "Stryker",
		Description: "medical device orthopedic spine trauma implant cardiovascular endoscopy clinical sales hospital territory",
	}
	assert.Equal(t, 100, NewScorer().Score(l))
}

func TestScore_KnownCompanyCountsOnce(t *testing.T) {
	s := NewScorer()
	// "depuy synthes" matches "depuy", "synthes" and "depuy synthes".
	multi := model.Listing{Title: "Rep", CompanyName: "DePuy Synthes"}
	assert.Equal(t, 65, s.Score(multi))
}

func TestScore_CatalogBonusAtLeast15(t *testing.T) {
	s := NewScorer()
	known := model.Listing{Title: "Sales Associate", CompanyName: "Stryker", Description: "territory"}
	unknown := known
	unknown.CompanyName = "Acme Widgets"
	assert.GreaterOrEqual(t, s.Score(known)-s.Score(unknown), 15)
}

func TestScore_TitleBonusIsFlat(t *testing.T) {
	s := NewScorer()
	one := model.Listing{Title: "Entry Rep"}
	// "junior" also hits the high table, so compare against a description-only hit.
	both := model.Listing{Title: "Entry Junior Rep"}
	descOnly := model.Listing{Title: "Rep", Description: "junior"}
	assert.Equal(t, 65, s.Score(one))
	assert.Equal(t, s.Score(descOnly)+15, s.Score(both))
}

func TestScore_ExtraCompanies(t *testing.T) {
	s := NewScorer("  Acme Medical ")
	assert.True(t, s.IsKnownCompany("ACME Medical Inc."))
	assert.Equal(t, 65, s.Score(model.Listing{Title: "Rep", CompanyName: "Acme Medical"}))
}
