package atlascrape

import (
	"sort"
	"strings"
)

// Search returns documents whose title or content contains the query as
// a case-insensitive substring. Title matches rank above content-only
// matches; ties are broken by IndexedAt descending. The scan is linear,
// which is fine for result sets in the thousands.
func Search(docs []*Document, query string) []*Document {
	q := strings.ToLower(query)

	type match struct {
		doc     *Document
		inTitle bool
	}

	var matches []match
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		inTitle := strings.Contains(strings.ToLower(doc.Title), q)
		inContent := strings.Contains(strings.ToLower(doc.Content), q)
		if !inTitle && !inContent {
			continue
		}
		matches = append(matches, match{doc: doc, inTitle: inTitle})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].inTitle != matches[j].inTitle {
			return matches[i].inTitle
		}
		return matches[i].doc.IndexedAt.After(matches[j].doc.IndexedAt)
	})

	out := make([]*Document, len(matches))
	for i, m := range matches {
		out[i] = m.doc
	}
	return out
}
