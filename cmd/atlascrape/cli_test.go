package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrapeCmd_effectiveJQL(t *testing.T) {
	t.Parallel()

	t.Run("explicit JQL wins over project shorthand", func(t *testing.T) {
		t.Parallel()

		c := &ScrapeCmd{JQL: "assignee = currentUser()", Project: "OPS"}
		assert.Equal(t, "assignee = currentUser()", c.effectiveJQL())
	})

	t.Run("project expands to a project query", func(t *testing.T) {
		t.Parallel()

		c := &ScrapeCmd{Project: "OPS"}
		assert.Equal(t, "project = OPS ORDER BY created DESC", c.effectiveJQL())
	})

	t.Run("empty without either", func(t *testing.T) {
		t.Parallel()

		c := &ScrapeCmd{}
		assert.Equal(t, "", c.effectiveJQL())
	})
}

func TestScrapeCmd_active(t *testing.T) {
	t.Parallel()

	t.Run("confluence requires a page ID", func(t *testing.T) {
		t.Parallel()

		assert.False(t, (&ScrapeCmd{}).confluenceActive())
		assert.True(t, (&ScrapeCmd{PageID: "100"}).confluenceActive())
		assert.False(t, (&ScrapeCmd{PageID: "100", SkipConfluence: true}).confluenceActive())
	})

	t.Run("jira requires a query", func(t *testing.T) {
		t.Parallel()

		assert.False(t, (&ScrapeCmd{}).jiraActive())
		assert.True(t, (&ScrapeCmd{JQL: "project = OPS"}).jiraActive())
		assert.True(t, (&ScrapeCmd{Project: "OPS"}).jiraActive())
		assert.False(t, (&ScrapeCmd{JQL: "project = OPS", SkipJira: true}).jiraActive())
	})
}
