// Package adapter holds the job-search provider clients.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/amishk599/medalerts/internal/model"
)

// DefaultSerpAPIURL is the SerpAPI search endpoint.
const DefaultSerpAPIURL = "https://serpapi.com/search"

// SerpAPI reports an empty result page as an error string on a 200 response.
const serpNoResults = "hasn't returned any results"

type serpResponse struct {
	Error       string    `json:"error"`
	JobsResults []serpJob `json:"jobs_results"`
}

type serpJob struct {
	JobID              string            `json:"job_id"`
	Title              string            `json:"title"`
	CompanyName        string            `json:"company_name"`
	Location           string            `json:"location"`
	Via                string            `json:"via"`
	Description        string            `json:"description"`
	Extensions         []string          `json:"extensions"`
	DetectedExtensions serpExtensions    `json:"detected_extensions"`
	ApplyOptions       []serpApplyOption `json:"apply_options"`
}

type serpExtensions struct {
	PostedAt     string `json:"posted_at"`
	ScheduleType string `json:"schedule_type"`
}

type serpApplyOption struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// SerpAPISearcher queries SerpAPI's Google Jobs engine.
type SerpAPISearcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ model.Searcher = (*SerpAPISearcher)(nil)

// NewSerpAPISearcher creates a searcher. An empty baseURL uses DefaultSerpAPIURL.
func NewSerpAPISearcher(apiKey, baseURL string, client *http.Client) *SerpAPISearcher {
	if baseURL == "" {
		baseURL = DefaultSerpAPIURL
	}
	return &SerpAPISearcher{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
	}
}

// Search returns up to limit listings for term in location, in provider order.
func (s *SerpAPISearcher) Search(ctx context.Context, term, location string, limit int) ([]model.Listing, error) {
	params := url.Values{}
	params.Set("engine", "google_jobs")
	params.Set("q", term)
	params.Set("location", location)
	params.Set("api_key", s.apiKey)
	params.Set("hl", "en")
	params.Set("gl", "us")
	if limit > 0 {
		params.Set("num", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi search %q in %s: %w", term, location, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		// The url.Error carries the request URL, which includes the key.
		return nil, fmt.Errorf("serpapi search %q in %s: %s", term, location, s.redact(err.Error()))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("serpapi search %q in %s: reading body: %w", term, location, err)
	}

	var sr serpResponse
	decodeErr := json.Unmarshal(body, &sr)

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("unexpected status %d", resp.StatusCode)
		if decodeErr == nil && sr.Error != "" {
			msg += ": " + sr.Error
		}
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("serpapi search %q in %s: %s", term, location, msg),
		}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("serpapi search %q in %s: %w", term, location, decodeErr)
	}
	if sr.Error != "" {
		if strings.Contains(sr.Error, serpNoResults) {
			return nil, nil
		}
		return nil, fmt.Errorf("serpapi search %q in %s: %s", term, location, sr.Error)
	}

	listings := make([]model.Listing, 0, len(sr.JobsResults))
	// Title, company and location stay exactly as returned; they feed the
	// fingerprint, and stored seen-sets were keyed on the untrimmed values.
	for _, j := range sr.JobsResults {
		l := model.Listing{
			JobID:        j.JobID,
			Title:        j.Title,
			CompanyName:  j.CompanyName,
			Location:     j.Location,
			Via:          j.Via,
			Description:  extractText(j.Description),
			PostedAt:     j.DetectedExtensions.PostedAt,
			ScheduleType: j.DetectedExtensions.ScheduleType,
			Extensions:   j.Extensions,
		}
		for _, o := range j.ApplyOptions {
			l.ApplyOptions = append(l.ApplyOptions, model.ApplyOption{Title: o.Title, Link: o.Link})
		}
		listings = append(listings, l)
	}
	if limit > 0 && len(listings) > limit {
		listings = listings[:limit]
	}
	return listings, nil
}

func (s *SerpAPISearcher) redact(msg string) string {
	if s.apiKey == "" {
		return msg
	}
	return strings.ReplaceAll(msg, url.QueryEscape(s.apiKey), "REDACTED")
}
