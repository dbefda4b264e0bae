package http

import (
	"context"
	"net/url"
	"strconv"

	"github.com/connexin/atlascrape"
)

// childPageLimit is the batch size for child page listings. The listing
// is followed cursor by cursor until a short batch signals exhaustion.
const childPageLimit = 50

// Ensure ConfluenceService implements atlascrape.PageSource at compile time.
var _ atlascrape.PageSource = (*ConfluenceService)(nil)

// ConfluenceService retrieves wiki pages from a Confluence Cloud
// instance over its REST API.
type ConfluenceService struct {
	client *Client
}

// NewConfluenceService creates a new ConfluenceService for the instance
// described by cfg.
func NewConfluenceService(cfg Config, opts ...Option) *ConfluenceService {
	return &ConfluenceService{client: NewClient(cfg, opts...)}
}

// BaseURL returns the configured instance URL.
func (s *ConfluenceService) BaseURL() string {
	return s.client.BaseURL()
}

// confluencePage mirrors the REST representation of a content item.
type confluencePage struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  struct {
		Storage struct {
			Value string `json:"value"`
		} `json:"storage"`
	} `json:"body"`
	Space struct {
		Key string `json:"key"`
	} `json:"space"`
	History struct {
		CreatedDate string `json:"createdDate"`
		LastUpdated struct {
			When string `json:"when"`
		} `json:"lastUpdated"`
	} `json:"history"`
	Links struct {
		WebUI string `json:"webui"`
	} `json:"_links"`
}

// childListing mirrors one batch of a paginated child page listing.
type childListing struct {
	Results []confluencePage `json:"results"`
	Start   int              `json:"start"`
	Limit   int              `json:"limit"`
	Size    int              `json:"size"`
}

// FetchPage retrieves a page with its storage-format body and the IDs
// of its direct children.
func (s *ConfluenceService) FetchPage(ctx context.Context, id string) (*atlascrape.Page, error) {
	var raw confluencePage
	query := url.Values{
		"expand": {"body.storage,space,history,history.lastUpdated"},
	}
	if err := s.client.get(ctx, pathf("/wiki/rest/api/content/%s", id), query, &raw); err != nil {
		return nil, err
	}

	page := s.toPage(&raw)

	childIDs, err := s.fetchChildIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	page.ChildIDs = childIDs

	return page, nil
}

// fetchChildIDs follows the child listing's continuation cursor until
// exhausted and returns the direct child page IDs in listing order.
func (s *ConfluenceService) fetchChildIDs(ctx context.Context, id string) ([]string, error) {
	var ids []string
	start := 0
	for {
		var listing childListing
		query := url.Values{
			"limit": {strconv.Itoa(childPageLimit)},
			"start": {strconv.Itoa(start)},
		}
		if err := s.client.get(ctx, pathf("/wiki/rest/api/content/%s/child/page", id), query, &listing); err != nil {
			return nil, err
		}

		for _, child := range listing.Results {
			ids = append(ids, child.ID)
		}

		if len(listing.Results) == 0 || listing.Size < childPageLimit {
			break
		}
		start += listing.Size
	}
	return ids, nil
}

// toPage converts the REST representation into the domain record,
// resolving the relative web link against the instance URL.
func (s *ConfluenceService) toPage(raw *confluencePage) *atlascrape.Page {
	webURL := ""
	if raw.Links.WebUI != "" {
		webURL = s.client.BaseURL() + "/wiki" + raw.Links.WebUI
	}
	return &atlascrape.Page{
		ID:       raw.ID,
		Title:    raw.Title,
		Body:     raw.Body.Storage.Value,
		SpaceKey: raw.Space.Key,
		WebURL:   webURL,
		Created:  raw.History.CreatedDate,
		Modified: raw.History.LastUpdated.When,
	}
}
