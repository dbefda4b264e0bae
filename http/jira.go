package http

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/connexin/atlascrape"
)

// searchPageSize is the batch size for JQL search pagination.
const searchPageSize = 50

// searchFields is the field set requested for each issue.
const searchFields = "summary,description,issuetype,status,project,created,updated,comment"

// Ensure JiraService implements atlascrape.IssueSource at compile time.
var _ atlascrape.IssueSource = (*JiraService)(nil)

// JiraService retrieves issues from a Jira Cloud instance over its
// REST API.
type JiraService struct {
	client *Client
}

// NewJiraService creates a new JiraService for the instance described
// by cfg.
func NewJiraService(cfg Config, opts ...Option) *JiraService {
	return &JiraService{client: NewClient(cfg, opts...)}
}

// BaseURL returns the configured instance URL.
func (s *JiraService) BaseURL() string {
	return s.client.BaseURL()
}

// jiraSearchResult mirrors one batch of a paginated JQL search.
type jiraSearchResult struct {
	StartAt    int         `json:"startAt"`
	MaxResults int         `json:"maxResults"`
	Total      int         `json:"total"`
	Issues     []jiraIssue `json:"issues"`
}

// jiraIssue mirrors the REST representation of an issue. Description
// and comment bodies may be plain strings or ADF documents depending on
// the API version, so both are decoded lazily.
type jiraIssue struct {
	Key    string `json:"key"`
	Self   string `json:"self"`
	Fields struct {
		Summary     string          `json:"summary"`
		Description json.RawMessage `json:"description"`
		IssueType   struct {
			Name string `json:"name"`
		} `json:"issuetype"`
		Status struct {
			Name string `json:"name"`
		} `json:"status"`
		Project struct {
			Key string `json:"key"`
		} `json:"project"`
		Created string `json:"created"`
		Updated string `json:"updated"`
		Comment struct {
			Comments []jiraComment `json:"comments"`
		} `json:"comment"`
	} `json:"fields"`
}

type jiraComment struct {
	Author struct {
		DisplayName string `json:"displayName"`
	} `json:"author"`
	Created string          `json:"created"`
	Body    json.RawMessage `json:"body"`
}

// SearchIssues retrieves all issues matching the JQL query, following
// offset pagination until exhausted or max issues have been retrieved.
func (s *JiraService) SearchIssues(ctx context.Context, jql string, max int) ([]*atlascrape.Issue, error) {
	if strings.TrimSpace(jql) == "" {
		return nil, atlascrape.Errorf(atlascrape.EINVALID, "empty JQL query")
	}

	var issues []*atlascrape.Issue
	startAt := 0
	for {
		pageSize := searchPageSize
		if max > 0 {
			remaining := max - len(issues)
			if remaining <= 0 {
				break
			}
			if remaining < pageSize {
				pageSize = remaining
			}
		}

		var result jiraSearchResult
		query := url.Values{
			"jql":        {jql},
			"startAt":    {strconv.Itoa(startAt)},
			"maxResults": {strconv.Itoa(pageSize)},
			"fields":     {searchFields},
		}
		if err := s.client.get(ctx, "/rest/api/2/search", query, &result); err != nil {
			return nil, err
		}

		for i := range result.Issues {
			issues = append(issues, toIssue(&result.Issues[i]))
		}

		startAt += len(result.Issues)
		if len(result.Issues) == 0 || startAt >= result.Total {
			break
		}
	}

	return issues, nil
}

// toIssue converts the REST representation into the domain record.
func toIssue(raw *jiraIssue) *atlascrape.Issue {
	issue := &atlascrape.Issue{
		Key:         raw.Key,
		Summary:     raw.Fields.Summary,
		Description: textFromRaw(raw.Fields.Description),
		IssueType:   raw.Fields.IssueType.Name,
		Status:      raw.Fields.Status.Name,
		Project:     raw.Fields.Project.Key,
		Created:     raw.Fields.Created,
		Updated:     raw.Fields.Updated,
		SelfURL:     raw.Self,
	}
	for _, c := range raw.Fields.Comment.Comments {
		body := textFromRaw(c.Body)
		if body == "" {
			continue
		}
		issue.Comments = append(issue.Comments, atlascrape.IssueComment{
			Author:  c.Author.DisplayName,
			Created: c.Created,
			Body:    body,
		})
	}
	return issue
}

// adfNode is an Atlassian Document Format node. Only type, text, and
// content are needed to flatten a document to plain text.
type adfNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text"`
	Content []adfNode `json:"content"`
}

// textFromRaw decodes a field that is either a plain string or an ADF
// document and returns its text. Anything unrecognizable degrades to an
// empty string; a malformed payload never fails a fetch.
func textFromRaw(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}

	var doc adfNode
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ""
	}

	var parts []string
	collectADFText(&doc, &parts)
	return strings.Join(parts, " ")
}

// collectADFText walks an ADF tree, appending text nodes in order.
func collectADFText(node *adfNode, parts *[]string) {
	if node.Type == "text" && node.Text != "" {
		*parts = append(*parts, node.Text)
	}
	for i := range node.Content {
		collectADFText(&node.Content[i], parts)
	}
}
