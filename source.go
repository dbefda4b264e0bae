package atlascrape

import "context"

// Page represents a raw Confluence page record as returned by the REST
// API, before normalization.
type Page struct {
	ID       string
	Title    string
	Body     string // storage-format HTML
	SpaceKey string
	WebURL   string // absolute URL to the page, empty if the API omitted it
	Created  string
	Modified string

	// ChildIDs lists the IDs of direct child pages. The fetcher follows
	// the child listing's pagination cursor until exhausted.
	ChildIDs []string
}

// Issue represents a raw Jira issue record as returned by the REST API,
// before normalization.
type Issue struct {
	Key         string
	Summary     string
	Description string // plain text, ADF already flattened by the fetcher
	IssueType   string
	Status      string
	Project     string
	Created     string
	Updated     string
	SelfURL     string
	Comments    []IssueComment
}

// IssueComment is a single comment attached to an issue.
type IssueComment struct {
	Author  string
	Created string
	Body    string
}

// PageSource retrieves raw page records from a Confluence instance.
type PageSource interface {
	// FetchPage retrieves a single page with its body and direct child
	// IDs. Returns EUNAUTHORIZED for credential failures (never retried)
	// and EUNAVAILABLE for transient failures that exhausted retries.
	FetchPage(ctx context.Context, id string) (*Page, error)
}

// IssueSource retrieves raw issue records from a Jira instance.
type IssueSource interface {
	// SearchIssues retrieves all issues matching the JQL query, following
	// offset pagination until the result set is exhausted or max issues
	// have been retrieved. max <= 0 means no limit. A malformed query
	// returns EINVALID immediately.
	SearchIssues(ctx context.Context, jql string, max int) ([]*Issue, error)
}
