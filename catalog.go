package atlascrape

import (
	"context"
	"time"
)

// Run records a single scrape run for the local catalog.
type Run struct {
	ID              string    `json:"id"`
	StartedAt       time.Time `json:"startedAt"`
	FinishedAt      time.Time `json:"finishedAt"`
	ConfluenceCount int       `json:"confluenceCount"`
	JiraCount       int       `json:"jiraCount"`
	Failed          int       `json:"failed"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.ID == "" {
		return Errorf(EINVALID, "run ID required")
	}
	return nil
}

// DocumentFilter represents a filter for Catalog.FindDocuments.
type DocumentFilter struct {
	SourceType *SourceType
	ID         *string

	Offset int
	Limit  int
}

// Catalog is the local store of previously scraped documents and run
// history. The JSON artifacts remain the export contract; the catalog
// exists so past runs can be inspected without re-scraping.
type Catalog interface {
	// UpsertDocuments inserts documents, overwriting any existing
	// document with the same (source_type, id).
	UpsertDocuments(ctx context.Context, docs []*Document) error

	// FindDocuments retrieves documents matching the filter, newest
	// IndexedAt first.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// RecordRun persists a run record.
	RecordRun(ctx context.Context, run *Run) error

	// FindRuns retrieves all recorded runs, newest first.
	FindRuns(ctx context.Context) ([]*Run, error)
}
