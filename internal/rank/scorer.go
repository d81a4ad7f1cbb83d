// Package rank scores listings for entry-level med-device sales relevance.
package rank

import (
	"strings"

	"github.com/amishk599/medalerts/internal/model"
)

const (
	baseline      = 50
	maxScore      = 100
	highWeight    = 10
	mediumWeight  = 5
	titleBonus    = 15
	staffingMalus = 10
	knownCoBonus  = 15
)

// Scorer maps a listing to an integer desirability score. Scores are capped at
// 100 and have no floor.
type Scorer struct {
	high      []string
	medium    []string
	title     []string
	staffing  []string
	companies []string
}

// NewScorer returns a scorer using the built-in tables plus any extra known
// companies (matched case-insensitively).
func NewScorer(extraCompanies ...string) *Scorer {
	companies := make([]string, 0, len(KnownCompanies)+len(extraCompanies))
	companies = append(companies, KnownCompanies...)
	for _, c := range extraCompanies {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			companies = append(companies, c)
		}
	}
	return &Scorer{
		high:      HighRelevanceKeywords,
		medium:    MediumRelevanceKeywords,
		title:     TitleSignalKeywords,
		staffing:  StaffingMarkers,
		companies: companies,
	}
}

// Score returns the listing's relevancy score.
func (s *Scorer) Score(l model.Listing) int {
	title := strings.ToLower(l.Title)
	company := strings.ToLower(l.CompanyName)
	text := title + " " + company + " " + strings.ToLower(l.Description)

	score := baseline
	for _, kw := range s.high {
		if strings.Contains(text, kw) {
			score += highWeight
		}
	}
	for _, kw := range s.medium {
		if strings.Contains(text, kw) {
			score += mediumWeight
		}
	}

	if containsAny(title, s.title) {
		score += titleBonus
	}
	if containsAny(company, s.staffing) {
		score -= staffingMalus
	}
	// One bonus no matter how many catalog entries match.
	if containsAny(company, s.companies) {
		score += knownCoBonus
	}

	return min(score, maxScore)
}

// IsKnownCompany reports whether the company name matches the catalog.
func (s *Scorer) IsKnownCompany(name string) bool {
	return containsAny(strings.ToLower(name), s.companies)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
