package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/genricoloni/mprisctl/internal/controlerr"
	"github.com/genricoloni/mprisctl/internal/domain"
	"go.uber.org/zap"
)

const tracksPath = "/search/tracks"

// HTTPClient implements domain.SearchService against the track search API
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new search HTTPClient
func NewClient(logger *zap.Logger, baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type searchResponse struct {
	Tracks struct {
		Items []domain.Track `json:"items"`
	} `json:"tracks"`
}

// Search queries the service for tracks matching query, in ranking order.
// Any failure is reported as a transport error.
func (c *HTTPClient) Search(ctx context.Context, query string) ([]domain.Track, error) {
	endpoint := c.BaseURL + tracksPath + "?" + url.Values{"track": {query}}.Encode()
	c.logger.Debug("Searching tracks", zap.String("query", query), zap.String("url", endpoint))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, controlerr.Transport(fmt.Errorf("creating search request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, controlerr.Transport(fmt.Errorf("search request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, controlerr.Transport(fmt.Errorf("search failed (status %d)", resp.StatusCode))
	}

	var apiResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, controlerr.Transport(fmt.Errorf("decoding search response: %w", err))
	}

	c.logger.Debug("Search complete",
		zap.String("query", query),
		zap.Int("results", len(apiResp.Tracks.Items)))
	return apiResp.Tracks.Items, nil
}
