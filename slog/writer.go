package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/connexin/atlascrape"
)

// Ensure LoggingArtifactWriter implements atlascrape.ArtifactWriter.
var _ atlascrape.ArtifactWriter = (*LoggingArtifactWriter)(nil)

// LoggingArtifactWriter wraps an ArtifactWriter with operation logging.
type LoggingArtifactWriter struct {
	next   atlascrape.ArtifactWriter
	logger *slog.Logger
}

// NewLoggingArtifactWriter creates a new LoggingArtifactWriter.
func NewLoggingArtifactWriter(next atlascrape.ArtifactWriter, logger *slog.Logger) *LoggingArtifactWriter {
	return &LoggingArtifactWriter{next: next, logger: logger}
}

// WriteDocuments delegates to the wrapped writer and logs the operation.
func (w *LoggingArtifactWriter) WriteDocuments(ctx context.Context, name string, docs []*atlascrape.Document) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("artifact write",
			"artifact", name,
			"documents", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteDocuments(ctx, name, docs)
}
