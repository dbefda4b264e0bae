// Package slog provides logging decorators for the atlascrape services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/connexin/atlascrape"
)

// Ensure LoggingPageSource implements atlascrape.PageSource.
var _ atlascrape.PageSource = (*LoggingPageSource)(nil)

// LoggingPageSource wraps a PageSource with operation logging.
type LoggingPageSource struct {
	next   atlascrape.PageSource
	logger *slog.Logger
}

// NewLoggingPageSource creates a new LoggingPageSource.
func NewLoggingPageSource(next atlascrape.PageSource, logger *slog.Logger) *LoggingPageSource {
	return &LoggingPageSource{next: next, logger: logger}
}

// FetchPage delegates to the wrapped source and logs the operation.
func (s *LoggingPageSource) FetchPage(ctx context.Context, id string) (page *atlascrape.Page, err error) {
	defer func(begin time.Time) {
		children := 0
		if page != nil {
			children = len(page.ChildIDs)
		}
		s.logger.Info("confluence fetch",
			"page_id", id,
			"children", children,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchPage(ctx, id)
}

// Ensure LoggingIssueSource implements atlascrape.IssueSource.
var _ atlascrape.IssueSource = (*LoggingIssueSource)(nil)

// LoggingIssueSource wraps an IssueSource with operation logging.
type LoggingIssueSource struct {
	next   atlascrape.IssueSource
	logger *slog.Logger
}

// NewLoggingIssueSource creates a new LoggingIssueSource.
func NewLoggingIssueSource(next atlascrape.IssueSource, logger *slog.Logger) *LoggingIssueSource {
	return &LoggingIssueSource{next: next, logger: logger}
}

// SearchIssues delegates to the wrapped source and logs the operation.
func (s *LoggingIssueSource) SearchIssues(ctx context.Context, jql string, max int) (issues []*atlascrape.Issue, err error) {
	defer func(begin time.Time) {
		s.logger.Info("jira search",
			"jql", jql,
			"count", len(issues),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchIssues(ctx, jql, max)
}
