package mock

import (
	"context"

	"github.com/connexin/atlascrape"
)

var _ atlascrape.Catalog = (*Catalog)(nil)

// Catalog is a mock implementation of atlascrape.Catalog.
type Catalog struct {
	UpsertDocumentsFn func(ctx context.Context, docs []*atlascrape.Document) error
	FindDocumentsFn   func(ctx context.Context, filter atlascrape.DocumentFilter) ([]*atlascrape.Document, error)
	RecordRunFn       func(ctx context.Context, run *atlascrape.Run) error
	FindRunsFn        func(ctx context.Context) ([]*atlascrape.Run, error)
}

func (c *Catalog) UpsertDocuments(ctx context.Context, docs []*atlascrape.Document) error {
	return c.UpsertDocumentsFn(ctx, docs)
}

func (c *Catalog) FindDocuments(ctx context.Context, filter atlascrape.DocumentFilter) ([]*atlascrape.Document, error) {
	return c.FindDocumentsFn(ctx, filter)
}

func (c *Catalog) RecordRun(ctx context.Context, run *atlascrape.Run) error {
	return c.RecordRunFn(ctx, run)
}

func (c *Catalog) FindRuns(ctx context.Context) ([]*atlascrape.Run, error) {
	return c.FindRunsFn(ctx)
}
