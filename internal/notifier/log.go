package notifier

import (
	"context"
	"log/slog"

	"github.com/amishk599/medalerts/internal/digest"
	"github.com/amishk599/medalerts/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes each digest listing to the given logger as a structured message.
type LogNotifier struct {
	priority string
	logger   *slog.Logger
}

// NewLogNotifier returns a notifier that logs each listing via slog. priority
// names the metro logged first.
func NewLogNotifier(priority string, logger *slog.Logger) *LogNotifier {
	return &LogNotifier{priority: priority, logger: logger}
}

// Notify logs one line per listing, then a summary. Returns nil (stdout
// logging does not fail).
func (n *LogNotifier) Notify(_ context.Context, msg model.Message) error {
	if msg.Digest == nil {
		n.logger.Info("digest", "subject", msg.Subject)
		return nil
	}
	d := msg.Digest
	for _, metro := range d.OrderedMetros(n.priority) {
		for _, c := range d.Buckets[metro] {
			n.logger.Info("new job",
				"metro", metro,
				"score", c.Score,
				"title", c.Title,
				"company", c.CompanyName,
				"location", c.Location,
				"url", digest.ApplyLink(c.Listing),
			)
		}
	}
	n.logger.Info("digest", "subject", msg.Subject, "total", d.Total(), "filtered", d.Filtered)
	return nil
}
