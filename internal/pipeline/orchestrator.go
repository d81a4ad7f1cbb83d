// Package pipeline composes a run: query the provider, drop seen listings,
// filter, score, bucket by metro, and persist the seen-set.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/amishk599/medalerts/internal/filter"
	"github.com/amishk599/medalerts/internal/identity"
	"github.com/amishk599/medalerts/internal/model"
	"github.com/amishk599/medalerts/internal/seen"
)

// Scorer ranks an accepted listing.
type Scorer interface {
	Score(l model.Listing) int
}

// MetroResolver assigns a listing to a metro bucket given the metro it was
// queried under.
type MetroResolver interface {
	Resolve(l model.Listing, queried string) string
}

// reasoner is implemented by filters that can explain a rejection.
type reasoner interface {
	Evaluate(l model.Listing) (bool, filter.Reason)
}

// Orchestrator owns one run's classification pipeline.
type Orchestrator struct {
	searcher model.Searcher
	filter   model.ListingFilter
	scorer   Scorer
	resolver MetroResolver
	store    seen.Store
	limit    int
	logger   *slog.Logger
}

// NewOrchestrator creates an orchestrator wired with all its dependencies.
// limit is the per-query result count passed to the searcher.
func NewOrchestrator(
	searcher model.Searcher,
	f model.ListingFilter,
	scorer Scorer,
	resolver MetroResolver,
	store seen.Store,
	limit int,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		searcher: searcher,
		filter:   f,
		scorer:   scorer,
		resolver: resolver,
		store:    store,
		limit:    limit,
		logger:   logger,
	}
}

// Run loads the seen-set, collects the queries, and saves the set. A load
// failure aborts before any query is issued and nothing is saved; so does a
// cancelled ctx during collection. A save failure is returned together with
// the collected digest.
func (o *Orchestrator) Run(ctx context.Context, queries []model.Query) (*model.Digest, error) {
	set, err := o.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading seen-set: %w", err)
	}
	o.logger.Debug("loaded seen-set", "size", set.Len())

	d, err := o.Collect(ctx, set, queries)
	if err != nil {
		return nil, err
	}

	if err := o.store.Save(ctx, set); err != nil {
		return d, fmt.Errorf("saving seen-set: %w", err)
	}
	return d, nil
}

// Collect runs every query in order against set, which it mutates: every new
// fingerprint is added before filtering, so a rejected listing is never
// reconsidered. A failing query counts as zero results. Cancellation of ctx
// is not a query failure: Collect stops and returns ctx's error, and set must
// then be discarded.
func (o *Orchestrator) Collect(ctx context.Context, set *seen.Set, queries []model.Query) (*model.Digest, error) {
	d := model.NewDigest()
	d.Queries = len(queries)

	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("collecting: %w", err)
		}
		listings, err := o.searcher.Search(ctx, q.Term, q.Metro, o.limit)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("collecting: %w", ctxErr)
		}
		if err != nil {
			o.logger.Error("query failed", "term", q.Term, "metro", q.Metro, "error", err)
			continue
		}

		fresh := 0
		for _, l := range listings {
			fp := identity.Fingerprint(l)
			if set.Contains(fp) {
				continue
			}
			set.Add(fp)
			fresh++

			c, reason, ok := o.Classify(l, q.Metro)
			if !ok {
				d.Filtered++
				o.logger.Debug("filtered out", "reason", string(reason), "title", l.Title, "company", l.CompanyName)
				continue
			}
			d.Buckets[c.Metro] = append(d.Buckets[c.Metro], c)
		}

		o.logger.Info("queried",
			"term", q.Term,
			"metro", q.Metro,
			"results", len(listings),
			"new", fresh,
		)
	}

	for _, bucket := range d.Buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Score > bucket[j].Score
		})
	}

	o.logger.Info("collected",
		"queries", d.Queries,
		"accepted", d.Total(),
		"filtered", d.Filtered,
	)
	return d, nil
}

// Classify filters, scores, and buckets a single listing without touching the
// seen-set. ok is false when the filter rejects it.
func (o *Orchestrator) Classify(l model.Listing, queried string) (c model.Classified, reason filter.Reason, ok bool) {
	if r, isReasoner := o.filter.(reasoner); isReasoner {
		ok, reason = r.Evaluate(l)
	} else {
		ok = o.filter.Match(l)
		if !ok {
			reason = filter.ReasonNotRelevant
		}
	}
	if !ok {
		return model.Classified{}, reason, false
	}
	return model.Classified{
		Listing: l,
		Score:   o.scorer.Score(l),
		Metro:   o.resolver.Resolve(l, queried),
	}, filter.ReasonAccepted, true
}
