// Package scrape provides scrape run orchestration.
// It coordinates the Confluence hierarchy walk and the Jira search,
// normalization into the shared document schema, artifact export, and
// catalog bookkeeping.
package scrape

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/connexin/atlascrape"
)

// Frontier configuration for the hierarchy walk.
const (
	// frontierExpectedPages is the expected page count for Bloom filter sizing.
	frontierExpectedPages = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// maxWalkPages limits the number of pages visited to prevent runaway walks.
	maxWalkPages = 10000
)

// DefaultMaxDepth bounds the hierarchy walk when no depth is given.
const DefaultMaxDepth = 5

// Scraper orchestrates a scrape run across both sources.
type Scraper struct {
	Pages     atlascrape.PageSource
	Issues    atlascrape.IssueSource
	Extractor atlascrape.Extractor
	Writer    atlascrape.ArtifactWriter

	// Catalog is optional; when set, documents and the run record are
	// persisted after the artifacts are written.
	Catalog atlascrape.Catalog

	// Base URLs used to construct document source URLs.
	ConfluenceBaseURL string
	JiraBaseURL       string

	// Now is the clock for IndexedAt stamps. Defaults to time.Now.
	Now atlascrape.Clock
}

// Options configures a single scrape run. An empty RootPageID skips the
// Confluence walk; an empty JQL skips the Jira search.
type Options struct {
	RootPageID string
	MaxDepth   int
	JQL        string
	MaxResults int
}

// Failure records a single item that could not be scraped. The run
// continues past failures; for a Confluence page the failure prunes the
// page's entire subtree, since its children cannot be discovered.
type Failure struct {
	Source atlascrape.SourceType
	ID     string // page ID, issue search query, or "catalog"
	Err    error
}

// Result holds the outcome of a scrape run.
type Result struct {
	RunID           string
	ConfluenceCount int
	JiraCount       int
	MergedCount     int
	Failures        []Failure
}

// Run executes a scrape: both sources are fetched in parallel, the
// results are normalized and deduplicated, and the per-source and
// merged artifacts are written. Authentication failures and artifact
// I/O failures abort the run; individual item failures are recorded in
// the result and the run continues.
func (s *Scraper) Run(ctx context.Context, opts Options) (*Result, error) {
	startedAt := s.now()

	var (
		confluenceDocs []*atlascrape.Document
		jiraDocs       []*atlascrape.Document
		confluenceFail []Failure
		jiraFail       []Failure
	)

	g, gctx := errgroup.WithContext(ctx)

	if opts.RootPageID != "" {
		g.Go(func() error {
			var err error
			confluenceDocs, confluenceFail, err = s.scrapeConfluence(gctx, opts)
			return err
		})
	}

	if opts.JQL != "" {
		g.Go(func() error {
			var err error
			jiraDocs, jiraFail, err = s.scrapeJira(gctx, opts)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := atlascrape.Dedupe(append(append([]*atlascrape.Document{}, confluenceDocs...), jiraDocs...))

	result := &Result{
		RunID:           uuid.New().String(),
		ConfluenceCount: len(confluenceDocs),
		JiraCount:       len(jiraDocs),
		MergedCount:     len(merged),
		Failures:        append(confluenceFail, jiraFail...),
	}

	// A skipped source leaves its previous artifact untouched.
	if opts.RootPageID != "" {
		if err := s.Writer.WriteDocuments(ctx, atlascrape.ArtifactConfluence, confluenceDocs); err != nil {
			return nil, err
		}
	}
	if opts.JQL != "" {
		if err := s.Writer.WriteDocuments(ctx, atlascrape.ArtifactJira, jiraDocs); err != nil {
			return nil, err
		}
	}
	if err := s.Writer.WriteDocuments(ctx, atlascrape.ArtifactMerged, merged); err != nil {
		return nil, err
	}

	if s.Catalog != nil {
		if err := s.recordRun(ctx, result, merged, startedAt); err != nil {
			result.Failures = append(result.Failures, Failure{ID: "catalog", Err: err})
		}
	}

	return result, nil
}

// scrapeConfluence walks the page hierarchy breadth-first from the root,
// bounded by MaxDepth. Each visited page is normalized; a page that
// cannot be fetched is recorded as a failure and its subtree is skipped.
func (s *Scraper) scrapeConfluence(ctx context.Context, opts Options) ([]*atlascrape.Document, []Failure, error) {
	maxDepth := opts.MaxDepth
	if maxDepth < 0 {
		maxDepth = DefaultMaxDepth
	}

	frontier := NewFrontier(frontierExpectedPages, frontierFalsePositiveRate)
	frontier.Push(opts.RootPageID, 0)

	var docs []*atlascrape.Document
	var failures []Failure
	visited := 0

	for {
		entry, ok := frontier.Pop()
		if !ok {
			break
		}
		if visited >= maxWalkPages {
			break
		}
		visited++

		if err := ctx.Err(); err != nil {
			return docs, failures, err
		}

		page, err := s.Pages.FetchPage(ctx, entry.ID)
		if err != nil {
			if atlascrape.ErrorCode(err) == atlascrape.EUNAUTHORIZED {
				return docs, failures, err
			}
			failures = append(failures, Failure{
				Source: atlascrape.SourceConfluence,
				ID:     entry.ID,
				Err:    err,
			})
			continue
		}

		docs = append(docs, atlascrape.NormalizePage(page, s.ConfluenceBaseURL, s.Extractor, s.clock()))

		if entry.Depth < maxDepth {
			for _, childID := range page.ChildIDs {
				frontier.Push(childID, entry.Depth+1)
			}
		}
	}

	return docs, failures, nil
}

// scrapeJira runs the issue search and normalizes the results. A
// credential failure or a malformed query aborts the run; a transient
// failure that exhausted retries is recorded and the run continues with
// whatever the other source produced.
func (s *Scraper) scrapeJira(ctx context.Context, opts Options) ([]*atlascrape.Document, []Failure, error) {
	issues, err := s.Issues.SearchIssues(ctx, opts.JQL, opts.MaxResults)
	if err != nil {
		switch atlascrape.ErrorCode(err) {
		case atlascrape.EUNAUTHORIZED, atlascrape.EINVALID:
			return nil, nil, err
		}
		return nil, []Failure{{
			Source: atlascrape.SourceJira,
			ID:     opts.JQL,
			Err:    err,
		}}, nil
	}

	docs := make([]*atlascrape.Document, 0, len(issues))
	for _, issue := range issues {
		docs = append(docs, atlascrape.NormalizeIssue(issue, s.JiraBaseURL, s.clock()))
	}

	return docs, nil, nil
}

// recordRun persists the merged documents and the run record.
func (s *Scraper) recordRun(ctx context.Context, result *Result, merged []*atlascrape.Document, startedAt time.Time) error {
	if err := s.Catalog.UpsertDocuments(ctx, merged); err != nil {
		return err
	}
	return s.Catalog.RecordRun(ctx, &atlascrape.Run{
		ID:              result.RunID,
		StartedAt:       startedAt,
		FinishedAt:      s.now(),
		ConfluenceCount: result.ConfluenceCount,
		JiraCount:       result.JiraCount,
		Failed:          len(result.Failures),
	})
}

func (s *Scraper) clock() atlascrape.Clock {
	if s.Now != nil {
		return s.Now
	}
	return time.Now
}

func (s *Scraper) now() time.Time {
	return s.clock()()
}
