package adapter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractText flattens a description that may carry HTML markup or entities
// into plain text with collapsed whitespace. Plain text passes through as is.
func extractText(content string) string {
	if !strings.ContainsAny(content, "<&") {
		return content
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}
	// Block elements run together in Text(); pad them so words stay apart.
	doc.Find("p, br, li, div, h1, h2, h3, h4, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}
