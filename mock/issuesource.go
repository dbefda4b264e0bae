package mock

import (
	"context"

	"github.com/connexin/atlascrape"
)

var _ atlascrape.IssueSource = (*IssueSource)(nil)

// IssueSource is a mock implementation of atlascrape.IssueSource.
type IssueSource struct {
	SearchIssuesFn func(ctx context.Context, jql string, max int) ([]*atlascrape.Issue, error)
}

func (s *IssueSource) SearchIssues(ctx context.Context, jql string, max int) ([]*atlascrape.Issue, error) {
	return s.SearchIssuesFn(ctx, jql, max)
}
