package notifier

import (
	"context"
	"testing"

	"github.com/amishk599/medalerts/internal/digest"
	"github.com/amishk599/medalerts/internal/model"
)

type capturingNotifier struct {
	msg model.Message
}

func (c *capturingNotifier) Notify(_ context.Context, msg model.Message) error {
	c.msg = msg
	return nil
}

func TestSendTestMessage(t *testing.T) {
	n := &capturingNotifier{}
	r := digest.NewRenderer(digest.Options{PriorityMetro: "Chicago, IL", SubjectPrefix: "Med Device Sales Jobs"})

	if err := SendTestMessage(context.Background(), n, r, "Chicago, IL"); err != nil {
		t.Fatalf("SendTestMessage = %v", err)
	}
	if n.msg.Digest == nil || n.msg.Digest.Total() != 1 {
		t.Fatalf("digest = %+v, want one listing", n.msg.Digest)
	}
	if len(n.msg.Digest.Buckets["Chicago, IL"]) != 1 {
		t.Error("test listing should be in the requested metro")
	}
	if n.msg.HTML == "" || n.msg.Subject == "" {
		t.Error("message should be rendered")
	}
}
