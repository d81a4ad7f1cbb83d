// Package digest renders a pipeline digest as an HTML email, a plain-text
// table, and a subject line.
package digest

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"

	"github.com/amishk599/medalerts/internal/model"
)

const (
	badgeTopMatch = "TOP MATCH"
	badgeGoodFit  = "GOOD FIT"
)

// Options configures a Renderer.
type Options struct {
	PriorityMetro string
	SubjectPrefix string
	MaxPerMetro   int // 0 means unlimited
	Quote         string
	Now           func() time.Time
}

// Renderer turns a digest into deliverable content.
type Renderer struct {
	opts Options
}

// NewRenderer returns a renderer. A nil Now uses the wall clock.
func NewRenderer(opts Options) *Renderer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Quote == "" {
		opts.Quote = DefaultQuote
	}
	return &Renderer{opts: opts}
}

// Subject returns e.g. "Med Device Sales Jobs - Mar 05, 2025 (7 new)".
func (r *Renderer) Subject(d *model.Digest) string {
	return fmt.Sprintf("%s - %s (%d new)", r.opts.SubjectPrefix, r.opts.Now().Format("Jan 02, 2006"), d.Total())
}

// Message renders everything a notifier needs.
func (r *Renderer) Message(d *model.Digest) (model.Message, error) {
	html, err := r.HTML(d)
	if err != nil {
		return model.Message{}, err
	}
	return model.Message{
		Subject: r.Subject(d),
		HTML:    html,
		Text:    r.Text(d),
		Digest:  d,
	}, nil
}

type pageData struct {
	Quote    string
	Date     string
	Summary  string
	Sections []sectionData
}

type sectionData struct {
	Metro    string
	Priority bool
	Count    int
	Rows     []rowData
	More     int
}

type rowData struct {
	Title    string
	Company  string
	Location string
	Posted   string
	Link     string
	Badge    string
	Odd      bool
}

// HTML renders the email body.
func (r *Renderer) HTML(d *model.Digest) (string, error) {
	data := pageData{
		Quote:   r.opts.Quote,
		Date:    r.opts.Now().Format("January 02, 2006"),
		Summary: english.Plural(d.Total(), "new entry-level listing", "new entry-level listings"),
	}
	for _, metro := range d.OrderedMetros(r.opts.PriorityMetro) {
		bucket := d.Buckets[metro]
		shown := r.capped(bucket)
		sec := sectionData{
			Metro:    metro,
			Priority: metro == r.opts.PriorityMetro,
			Count:    len(bucket),
			More:     len(bucket) - len(shown),
		}
		for i, c := range shown {
			sec.Rows = append(sec.Rows, rowData{
				Title:    orDefault(c.Title, "Unknown Title"),
				Company:  orDefault(c.CompanyName, "Unknown Company"),
				Location: orDefault(c.Location, metro),
				Posted:   orDefault(c.PostedAt, "Recently"),
				Link:     ApplyLink(c.Listing),
				Badge:    badge(i),
				Odd:      i%2 == 1,
			})
		}
		data.Sections = append(data.Sections, sec)
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render digest html: %w", err)
	}
	return buf.String(), nil
}

// Text renders the plain-text table used for the email's text part.
func (r *Renderer) Text(d *model.Digest) string {
	var b strings.Builder
	r.writeTable(&b, d, func(s string) string { return s })
	return b.String()
}

var metroHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

// WriteConsole prints the dry-run table with styled metro headers.
func (r *Renderer) WriteConsole(w io.Writer, d *model.Digest) {
	r.writeTable(w, d, func(s string) string { return metroHeaderStyle.Render(s) })
}

func (r *Renderer) writeTable(w io.Writer, d *model.Digest, header func(string) string) {
	rule := strings.Repeat("=", 60)
	for _, metro := range d.OrderedMetros(r.opts.PriorityMetro) {
		bucket := d.Buckets[metro]
		fmt.Fprintf(w, "\n%s\n  %s\n%s\n", rule, header(fmt.Sprintf("%s (%s)", metro, english.Plural(len(bucket), "job", "jobs"))), rule)
		shown := r.capped(bucket)
		for i, c := range shown {
			tag := ""
			if b := badge(i); b != "" {
				tag = " [" + b + "]"
			}
			fmt.Fprintf(w, "  %3dpts | %s @ %s%s\n", c.Score, orDefault(c.Title, "?"), orDefault(c.CompanyName, "?"), tag)
		}
		if more := len(bucket) - len(shown); more > 0 {
			fmt.Fprintf(w, "  ... and %d more\n", more)
		}
	}
}

func (r *Renderer) capped(bucket []model.Classified) []model.Classified {
	if r.opts.MaxPerMetro > 0 && len(bucket) > r.opts.MaxPerMetro {
		return bucket[:r.opts.MaxPerMetro]
	}
	return bucket
}

// ApplyLink returns the listing's first apply link, falling back to a Google
// Jobs search for the listing when only a provider id is known.
func ApplyLink(l model.Listing) string {
	if link := l.ApplyLink(); link != "" {
		return link
	}
	if l.JobID == "" {
		return ""
	}
	return "https://www.google.com/search?ibp=htl;jobs&q=" + url.QueryEscape(l.Title) + "&htidocid=" + url.QueryEscape(l.JobID)
}

func badge(rank int) string {
	switch {
	case rank == 0:
		return badgeTopMatch
	case rank <= 2:
		return badgeGoodFit
	default:
		return ""
	}
}

// orDefault trims s for display. Listings keep provider whitespace since it
// is part of their fingerprint.
func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
