package mock

import (
	"context"

	"github.com/connexin/atlascrape"
)

var _ atlascrape.PageSource = (*PageSource)(nil)

// PageSource is a mock implementation of atlascrape.PageSource.
type PageSource struct {
	FetchPageFn func(ctx context.Context, id string) (*atlascrape.Page, error)
}

func (s *PageSource) FetchPage(ctx context.Context, id string) (*atlascrape.Page, error) {
	return s.FetchPageFn(ctx, id)
}
