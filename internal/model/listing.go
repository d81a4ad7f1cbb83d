package model

import (
	"context"
	"strings"
)

// Listing is a raw job listing as returned by the search provider. Every field
// may be empty; classification treats absence as the empty string.
type Listing struct {
	JobID        string // provider id, used to build a fallback apply link
	Title        string
	CompanyName  string
	Location     string // free text, e.g. "Naperville, IL" or "Anywhere"
	Via          string // board the provider found it on, e.g. "via LinkedIn"
	Description  string
	PostedAt     string // relative posting age as reported, e.g. "3 days ago"
	ScheduleType string
	Extensions   []string
	ApplyOptions []ApplyOption
}

// ApplyOption is one place the listing can be applied to.
type ApplyOption struct {
	Title string
	Link  string
}

// ApplyLink returns the first apply option that carries a link, or "".
func (l Listing) ApplyLink() string {
	for _, o := range l.ApplyOptions {
		if strings.TrimSpace(o.Link) != "" {
			return o.Link
		}
	}
	return ""
}

// Classified is an accepted listing annotated with its score and metro bucket.
type Classified struct {
	Listing
	Score int
	Metro string
}

// Query is one (search term, queried metro) pair issued to the provider.
type Query struct {
	Term  string
	Metro string
}

// Searcher fetches raw listings for a search term in a location.
type Searcher interface {
	Search(ctx context.Context, term, location string, limit int) ([]Listing, error)
}

// ListingFilter decides whether a listing is in scope.
type ListingFilter interface {
	Match(l Listing) bool
}

// Message is what notifiers deliver: a rendered digest plus the data behind it.
type Message struct {
	Subject string
	HTML    string
	Text    string
	Digest  *Digest
}

// Notifier delivers a digest message.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}
