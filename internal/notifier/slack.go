package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amishk599/medalerts/internal/digest"
	"github.com/amishk599/medalerts/internal/model"
)

// slackPerMetro is how many listings each metro section shows.
const slackPerMetro = 5

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// SlackNotifier posts the digest to a Slack channel via Incoming Webhooks.
type SlackNotifier struct {
	webhookURL string
	priority   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSlackNotifier returns a notifier that posts one Block Kit message per digest.
func NewSlackNotifier(webhookURL, priority string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		priority:   priority,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Notify sends the digest as a single message. A 429 is retried once after
// the Retry-After delay.
func (s *SlackNotifier) Notify(ctx context.Context, msg model.Message) error {
	if msg.Digest != nil && msg.Digest.Total() == 0 {
		return nil
	}

	body, err := json.Marshal(buildPayload(msg, s.priority))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	status, retryAfter, err := s.post(ctx, body)
	if err != nil {
		return err
	}

	if status == http.StatusTooManyRequests {
		s.logger.Warn("slack rate limited, retrying", "retry_after", retryAfter)
		select {
		case <-ctx.Done():
			return fmt.Errorf("slack retry cancelled: %w", ctx.Err())
		case <-time.After(retryAfter):
		}

		status, _, err = s.post(ctx, body)
		if err != nil {
			return fmt.Errorf("post to slack (retry): %w", err)
		}
		if status != http.StatusOK {
			return fmt.Errorf("slack returned %d on retry", status)
		}
		s.logger.Info("slack message sent", "subject", msg.Subject, "retried", true)
		return nil
	}

	if status != http.StatusOK {
		return fmt.Errorf("slack returned %d", status)
	}
	s.logger.Info("slack message sent", "subject", msg.Subject)
	return nil
}

func (s *SlackNotifier) post(ctx context.Context, body []byte) (int, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("post to slack: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	secs, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
	if secs <= 0 {
		secs = 1
	}
	return resp.StatusCode, time.Duration(secs) * time.Second, nil
}

// Block Kit payload types.

type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// slackEscape escapes the three characters Slack treats as control sequences.
func slackEscape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

func buildPayload(msg model.Message, priority string) slackPayload {
	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: "💼 " + msg.Subject},
		},
	}

	d := msg.Digest
	if d == nil {
		return slackPayload{Text: msg.Subject, Blocks: blocks}
	}

	for _, metro := range d.OrderedMetros(priority) {
		bucket := d.Buckets[metro]
		title := fmt.Sprintf("*%s* (%d)", slackEscape(metro), len(bucket))
		if metro == priority {
			title = "⭐ " + title
		}

		lines := []string{title}
		for i, c := range bucket {
			if i == slackPerMetro {
				lines = append(lines, fmt.Sprintf("_and %d more_", len(bucket)-slackPerMetro))
				break
			}
			name := slackEscape(c.Title)
			if link := digest.ApplyLink(c.Listing); link != "" {
				name = "<" + link + "|" + name + ">"
			}
			lines = append(lines, fmt.Sprintf("• %s | %s | %s | %d pts",
				name, slackEscape(c.CompanyName), slackEscape(c.Location), c.Score))
		}

		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: strings.Join(lines, "\n")},
		})
	}

	blocks = append(blocks,
		slackBlock{
			Type: "context",
			Elements: []slackText{
				{Type: "mrkdwn", Text: fmt.Sprintf("%d new | %d filtered | %d queries", d.Total(), d.Filtered, d.Queries)},
			},
		},
		slackBlock{Type: "divider"},
	)

	return slackPayload{Text: msg.Subject, Blocks: blocks}
}
