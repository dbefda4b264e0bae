// Package goquery provides a goquery-based implementation of
// atlascrape.Extractor for Confluence storage-format HTML.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/connexin/atlascrape"
)

// Ensure Extractor implements atlascrape.Extractor at compile time.
var _ atlascrape.Extractor = (*Extractor)(nil)

// Extractor strips Confluence storage-format markup down to plain text.
// Script and style elements and Confluence macros are removed; embedded
// macro bodies become empty text rather than failing extraction.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText parses the HTML, removes non-content elements, and returns
// the remaining text with whitespace collapsed to single spaces.
func (e *Extractor) ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", atlascrape.Errorf(atlascrape.EINVALID, "failed to parse HTML: %v", err)
	}

	// Storage format embeds macros in the ac: namespace. The html parser
	// keeps the colon as part of the tag name, so the selector escapes it.
	doc.Find("script, style").Remove()
	doc.Find(`ac\:structured-macro, ac\:macro`).Remove()

	return collapseWhitespace(doc.Text()), nil
}

// collapseWhitespace reduces all runs of whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
