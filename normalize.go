package atlascrape

import (
	"fmt"
	"strings"
	"time"
)

// Clock returns the current time. It is injected into the normalizers
// so tests can pin IndexedAt.
type Clock func() time.Time

// The normalizers are pure functions: raw record in, document out, no
// I/O and no failure path. Malformed input degrades to empty fields
// rather than erroring, favoring availability of output over rejecting
// partial data.

// NormalizePage maps a raw Confluence page onto the document schema.
// The body is stripped to plain text via the extractor; an extraction
// failure falls back to the raw body, and a missing body yields empty
// content. baseURL is used to construct the source URL when the API
// omitted a web link.
func NormalizePage(page *Page, baseURL string, extractor Extractor, now Clock) *Document {
	content := ""
	if page.Body != "" {
		content = page.Body
		if extractor != nil {
			if text, err := extractor.ExtractText(page.Body); err == nil {
				content = text
			}
		}
	}

	source := page.WebURL
	if source == "" {
		source = fmt.Sprintf("%s/wiki/spaces/%s/pages/%s",
			strings.TrimSuffix(baseURL, "/"), page.SpaceKey, page.ID)
	}

	return &Document{
		ID:         page.ID,
		Title:      page.Title,
		Content:    content,
		Source:     source,
		SourceType: SourceConfluence,
		Metadata: map[string]string{
			MetaSpace:    page.SpaceKey,
			MetaURL:      source,
			MetaCreated:  page.Created,
			MetaModified: page.Modified,
		},
		DocumentType: DocTypeWikiPage,
		IndexedAt:    now(),
	}
}

// NormalizeIssue maps a raw Jira issue onto the document schema.
// Content is the summary, followed by the description when present
// (blank line separator), followed by an activity section when the
// issue carries comments.
func NormalizeIssue(issue *Issue, baseURL string, now Clock) *Document {
	var b strings.Builder
	b.WriteString(issue.Summary)
	if issue.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(issue.Description)
	}
	if len(issue.Comments) > 0 {
		b.WriteString("\n\nActivity & Comments:")
		for _, c := range issue.Comments {
			fmt.Fprintf(&b, "\n[%s] %s: %s", c.Created, c.Author, c.Body)
		}
	}

	title := issue.Key
	if issue.Summary != "" {
		title = issue.Key + ": " + issue.Summary
	}

	source := strings.TrimSuffix(baseURL, "/") + "/browse/" + issue.Key

	return &Document{
		ID:         issue.Key,
		Title:      title,
		Content:    b.String(),
		Source:     source,
		SourceType: SourceJira,
		Metadata: map[string]string{
			MetaKey:       issue.Key,
			MetaProject:   issue.Project,
			MetaStatus:    issue.Status,
			MetaIssueType: issue.IssueType,
			MetaURL:       source,
			MetaCreated:   issue.Created,
			MetaUpdated:   issue.Updated,
		},
		DocumentType: DocTypeIssue,
		IndexedAt:    now(),
	}
}
