package notifier

import (
	"context"

	"github.com/amishk599/medalerts/internal/digest"
	"github.com/amishk599/medalerts/internal/model"
)

// SendTestMessage renders and delivers a one-listing digest to verify the
// integration works.
func SendTestMessage(ctx context.Context, n model.Notifier, r *digest.Renderer, metro string) error {
	d := model.NewDigest()
	d.Queries = 1
	d.Buckets[metro] = []model.Classified{{
		Listing: model.Listing{
			Title:        "Associate Sales Representative (Test Notification)",
			CompanyName:  "medalerts",
			Location:     metro,
			PostedAt:     "just now",
			ApplyOptions: []model.ApplyOption{{Title: "Google Jobs", Link: "https://www.google.com/search?ibp=htl;jobs&q=medical+device+sales"}},
		},
		Score: 100,
		Metro: metro,
	}}
	msg, err := r.Message(d)
	if err != nil {
		return err
	}
	return n.Notify(ctx, msg)
}
