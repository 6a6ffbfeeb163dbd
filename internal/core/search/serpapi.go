package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/studyme-ai/studyme/internal/core"
	"github.com/studyme-ai/studyme/internal/models"
)

const defaultBaseURL = "https://serpapi.com/search.json"

var _ core.Searcher = (*Client)(nil)

// Client queries SerpAPI's Google engine for a keyword and maps the organic
// results to title/link pairs.
type Client struct {
	APIKey  string
	BaseURL string // defaults to the SerpAPI endpoint
	TopN    int    // results kept per keyword; defaults to 3

	HTTPClient *http.Client
}

type organicResult struct {
	Title        string `json:"title"`
	Link         string `json:"link"`
	RedirectLink string `json:"redirect_link"`
}

type searchResponse struct {
	OrganicResults []organicResult `json:"organic_results"`
	Error          string          `json:"error"`
}

func (c *Client) Search(ctx context.Context, keyword string) ([]models.SearchResult, error) {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	topN := c.TopN
	if topN <= 0 {
		topN = 3
	}

	q := url.Values{}
	q.Set("engine", "google")
	q.Set("q", keyword)
	q.Set("num", fmt.Sprint(topN))
	q.Set("api_key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi: unexpected status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("serpapi decode: %w", err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("serpapi: %s", payload.Error)
	}

	results := make([]models.SearchResult, 0, len(payload.OrganicResults))
	for i, r := range payload.OrganicResults {
		if i >= topN {
			break
		}
		link := r.RedirectLink
		if link == "" {
			link = r.Link
		}
		results = append(results, models.SearchResult{Title: r.Title, Link: link})
	}
	return results, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}
