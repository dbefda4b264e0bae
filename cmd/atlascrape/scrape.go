package main

import (
	"fmt"

	"github.com/connexin/atlascrape"
	"github.com/connexin/atlascrape/scrape"
)

// confluenceActive reports whether the Confluence walk should run.
func (c *ScrapeCmd) confluenceActive() bool {
	return !c.SkipConfluence && c.PageID != ""
}

// jiraActive reports whether the Jira search should run.
func (c *ScrapeCmd) jiraActive() bool {
	return !c.SkipJira && c.effectiveJQL() != ""
}

// effectiveJQL resolves the issue query: an explicit JQL wins, a project
// key expands to a project query, newest issues first.
func (c *ScrapeCmd) effectiveJQL() string {
	if c.JQL != "" {
		return c.JQL
	}
	if c.Project != "" {
		return fmt.Sprintf("project = %s ORDER BY created DESC", c.Project)
	}
	return ""
}

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	opts := scrape.Options{MaxDepth: c.MaxDepth}
	if c.confluenceActive() {
		opts.RootPageID = c.PageID
	}
	if c.jiraActive() {
		opts.JQL = c.effectiveJQL()
		opts.MaxResults = c.MaxResults
	}

	result, err := deps.Scraper.Run(deps.Ctx, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", atlascrape.ErrorMessage(err))
		return err
	}

	for _, failure := range result.Failures {
		fmt.Fprintf(deps.Stderr, "warning: %s %s: %s\n",
			failure.Source, failure.ID, atlascrape.ErrorMessage(failure.Err))
	}

	fmt.Fprintf(deps.Stdout, "Scraped %d Confluence pages and %d Jira issues (%d merged, %d failed).\n",
		result.ConfluenceCount, result.JiraCount, result.MergedCount, len(result.Failures))
	fmt.Fprintf(deps.Stdout, "Artifacts written to %s\n", c.OutputDir)

	return nil
}
