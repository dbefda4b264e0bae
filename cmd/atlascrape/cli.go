package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/connexin/atlascrape"
	"github.com/connexin/atlascrape/scrape"
	"github.com/connexin/atlascrape/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	DB      *sqlite.DB
	Catalog atlascrape.Catalog
	Scraper *scrape.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape ScrapeCmd `cmd:"" help:"Scrape Confluence and Jira into JSON artifacts"`
	Search SearchCmd `cmd:"" help:"Search previously scraped documents"`
	Runs   RunsCmd   `cmd:"" help:"List past scrape runs"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	ConfluenceURL      string `env:"CONFLUENCE_URL" help:"Confluence base URL"`
	ConfluenceUsername string `env:"CONFLUENCE_USERNAME" help:"Confluence account email"`
	ConfluenceAPIKey   string `env:"CONFLUENCE_API_KEY" help:"Confluence API token"`
	PageID             string `name:"confluence-page-id" env:"CONFLUENCE_PAGE_ID" help:"Root page ID for the hierarchy walk"`
	MaxDepth           int    `default:"5" help:"Maximum child depth below the root page"`

	JiraURL      string `env:"JIRA_URL" help:"Jira base URL"`
	JiraUsername string `env:"JIRA_USERNAME" help:"Jira account email"`
	JiraAPIKey   string `env:"JIRA_API_KEY" help:"Jira API token"`
	JQL          string `env:"JIRA_JQL" help:"JQL query selecting the issues to scrape"`
	Project      string `name:"jira-project" help:"Jira project key; shorthand for a project JQL query"`
	MaxResults   int    `default:"1000" help:"Maximum number of issues to retrieve"`

	OutputDir      string  `env:"OUTPUT_DIR" default:"./output" help:"Directory for the JSON artifacts"`
	RateLimit      float64 `default:"5" help:"Requests per second per service"`
	SkipConfluence bool    `help:"Skip the Confluence walk"`
	SkipJira       bool    `help:"Skip the Jira search"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query     string `arg:"" help:"Substring to search for"`
	Limit     int    `default:"10" help:"Maximum number of results to print"`
	OutputDir string `env:"OUTPUT_DIR" default:"./output" help:"Directory holding the JSON artifacts"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct{}
