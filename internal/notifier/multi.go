package notifier

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/amishk599/medalerts/internal/model"
)

// Ensure MultiNotifier implements model.Notifier.
var _ model.Notifier = (*MultiNotifier)(nil)

// MultiNotifier delivers the same message through several notifiers at once.
type MultiNotifier struct {
	notifiers []model.Notifier
}

// NewMultiNotifier fans out to all of ns.
func NewMultiNotifier(ns ...model.Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: ns}
}

// Notify runs every notifier concurrently and returns the first error. One
// failing channel does not cancel the others.
func (m *MultiNotifier) Notify(ctx context.Context, msg model.Message) error {
	var g errgroup.Group
	for _, n := range m.notifiers {
		g.Go(func() error {
			return n.Notify(ctx, msg)
		})
	}
	return g.Wait()
}
