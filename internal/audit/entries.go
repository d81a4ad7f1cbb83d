package audit

import (
	"sort"

	"github.com/amishk599/medalerts/internal/filter"
	"github.com/amishk599/medalerts/internal/identity"
	"github.com/amishk599/medalerts/internal/model"
	"github.com/amishk599/medalerts/internal/seen"
)

// Classifier classifies one listing the way a run would.
// *pipeline.Orchestrator implements it.
type Classifier interface {
	Classify(l model.Listing, queried string) (model.Classified, filter.Reason, bool)
}

// Entry is a fetched listing together with its classification.
type Entry struct {
	Listing     model.Listing
	Fingerprint string
	Accepted    bool
	Reason      filter.Reason
	Score       int
	Metro       string
	Seen        bool // already in the seen-set; a run would skip it
}

// BuildEntries classifies every listing fetched for queried. set may be nil.
// The second result holds the accepted entries ordered by score, highest
// first; ties keep fetch order.
func BuildEntries(c Classifier, listings []model.Listing, queried string, set *seen.Set) (all, accepted []Entry) {
	for _, l := range listings {
		fp := identity.Fingerprint(l)
		e := Entry{
			Listing:     l,
			Fingerprint: fp,
			Seen:        set != nil && set.Contains(fp),
		}
		cl, reason, ok := c.Classify(l, queried)
		e.Accepted = ok
		e.Reason = reason
		if ok {
			e.Score = cl.Score
			e.Metro = cl.Metro
			accepted = append(accepted, e)
		}
		all = append(all, e)
	}
	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Score > accepted[j].Score
	})
	return all, accepted
}

// status is the one-word verdict shown in list rows.
func (e Entry) status() string {
	switch {
	case e.Seen:
		return "seen"
	case e.Accepted:
		return "accepted"
	default:
		return string(e.Reason)
	}
}
