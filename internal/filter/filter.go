// Package filter decides whether a listing is an entry-level, in-domain role.
package filter

import (
	"strings"

	"github.com/amishk599/medalerts/internal/model"
)

// DefaultMaxYears is the most years of required experience a listing may ask for.
const DefaultMaxYears = 2

// DefaultExcludeTitleKeywords mark titles above entry level. The trailing
// spaces in "sr " and "vp " are significant.
var DefaultExcludeTitleKeywords = []string{
	"senior", "sr.", "sr ", "director", "vp ", "vice president", "principal",
	"manager", "lead", "head of", "chief", "executive", "staff",
}

// DefaultRequireTitleKeywords mark titles in the sales/clinical domain.
var DefaultRequireTitleKeywords = []string{
	"sales", "clinical", "account", "representative", "rep",
	"medical", "surgical", "med ", "associate", "device",
}

// Reason explains a filter decision.
type Reason string

const (
	ReasonAccepted          Reason = ""
	ReasonSeniorTitle       Reason = "senior title"
	ReasonNotRelevant       Reason = "not relevant"
	ReasonTooMuchExperience Reason = "too much experience"
)

// RelevanceFilter accepts entry-level listings whose title is in the target
// domain and whose description asks for at most maxYears of experience.
type RelevanceFilter struct {
	exclude  []string
	require  []string
	maxYears int
}

var _ model.ListingFilter = (*RelevanceFilter)(nil)

// NewRelevanceFilter returns a filter over the given keyword tables. Nil or
// empty tables fall back to the defaults; maxYears < 0 falls back to
// DefaultMaxYears. Keywords are matched case-insensitively.
func NewRelevanceFilter(exclude, require []string, maxYears int) *RelevanceFilter {
	if len(exclude) == 0 {
		exclude = DefaultExcludeTitleKeywords
	}
	if len(require) == 0 {
		require = DefaultRequireTitleKeywords
	}
	if maxYears < 0 {
		maxYears = DefaultMaxYears
	}
	return &RelevanceFilter{
		exclude:  lowerAll(exclude),
		require:  lowerAll(require),
		maxYears: maxYears,
	}
}

// NewDefaultFilter returns a filter over the built-in tables.
func NewDefaultFilter() *RelevanceFilter {
	return NewRelevanceFilter(nil, nil, DefaultMaxYears)
}

// Match reports whether the listing is in scope.
func (f *RelevanceFilter) Match(l model.Listing) bool {
	ok, _ := f.Evaluate(l)
	return ok
}

// Evaluate applies the rules in order and returns the first one that rejects.
func (f *RelevanceFilter) Evaluate(l model.Listing) (bool, Reason) {
	title := strings.ToLower(l.Title)

	if containsAny(title, f.exclude) {
		return false, ReasonSeniorTitle
	}
	if !containsAny(title, f.require) {
		return false, ReasonNotRelevant
	}
	for years := range RequiredYears(strings.ToLower(l.Description)) {
		if years > f.maxYears {
			return false, ReasonTooMuchExperience
		}
	}
	return true, ReasonAccepted
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out
}
