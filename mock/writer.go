package mock

import (
	"context"

	"github.com/connexin/atlascrape"
)

var _ atlascrape.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of atlascrape.ArtifactWriter.
type ArtifactWriter struct {
	WriteDocumentsFn func(ctx context.Context, name string, docs []*atlascrape.Document) error
}

func (w *ArtifactWriter) WriteDocuments(ctx context.Context, name string, docs []*atlascrape.Document) error {
	return w.WriteDocumentsFn(ctx, name, docs)
}
