package main

import (
	"fmt"
	"path/filepath"

	"github.com/connexin/atlascrape"
	"github.com/connexin/atlascrape/fs"
)

// Run executes the search command against the merged artifact.
func (c *SearchCmd) Run(deps *Dependencies) error {
	path := filepath.Join(c.OutputDir, atlascrape.ArtifactMerged)

	docs, err := fs.ReadDocuments(path)
	if err != nil {
		if atlascrape.ErrorCode(err) == atlascrape.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "No artifacts found. Run 'atlascrape scrape' first.")
		}
		return err
	}

	matches := atlascrape.Search(docs, c.Query)
	if len(matches) == 0 {
		fmt.Fprintf(deps.Stdout, "No documents match %q.\n", c.Query)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%d documents match %q:\n", len(matches), c.Query)
	limit := c.Limit
	if limit <= 0 || limit > len(matches) {
		limit = len(matches)
	}
	for _, doc := range matches[:limit] {
		fmt.Fprintf(deps.Stdout, "  [%s] %s\n      %s\n", doc.SourceType, doc.Title, doc.Source)
	}

	return nil
}
