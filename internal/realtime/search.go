package realtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// SearchResult is one web search hit.
type SearchResult struct {
	Title   string
	URL     string
	Content string
}

// Searcher runs a web search and returns at most maxResults hits in rank order.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// TavilyClient is a Searcher backed by the Tavily search API.
type TavilyClient struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

// NewTavilyClient constructs a TavilyClient using the shared HTTP client.
func NewTavilyClient(client *resty.Client, baseURL, apiKey string) *TavilyClient {
	return &TavilyClient{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search issues a shallow ("basic" depth) search.
func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	var out tavilyResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(tavilyRequest{
			APIKey:      c.apiKey,
			Query:       query,
			SearchDepth: "basic",
			MaxResults:  maxResults,
		}).
		SetResult(&out).
		ForceContentType("application/json").
		Post(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("realtime.TavilyClient.Search: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("realtime.TavilyClient.Search: unexpected status %d", resp.StatusCode())
	}

	results := make([]SearchResult, 0, len(out.Results))
	for _, r := range out.Results {
		results = append(results, SearchResult{Title: r.Title, URL: r.URL, Content: r.Content})
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}
