package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/movietrend/movietrend/internal/config"
)

var (
	ErrAPIKeyMissing = errors.New("TMDB credentials are not configured")
	ErrNotFound      = errors.New("TMDB resource not found")
	ErrUnauthorized  = errors.New("TMDB rejected credentials")
	ErrAPIError      = errors.New("TMDB API error")
	ErrRateLimited   = errors.New("TMDB API rate limited")
)

// trendingWindow is the only window this integration reports on.
const trendingWindow = "week"

// TrendingRequest selects which trending movies to fetch.
type TrendingRequest struct {
	// APIKey, when set, is sent as the api_key query parameter instead of
	// the configured bearer token.
	APIKey   string
	Language string
	Limit    int
}

// Client is a TMDB API client.
type Client struct {
	httpClient *http.Client
	config     config.TMDBConfig
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client.
func NewClient(cfg config.TMDBConfig, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		config: cfg,
		logger: logger.With().Str("component", "tmdb").Logger(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "tmdb"
}

// IsConfigured returns true if a default bearer token is set. Ticks that
// carry their own API key work without one.
func (c *Client) IsConfigured() bool {
	return c.config.BearerToken != ""
}

// Trending returns this week's trending movies in catalog order, truncated
// to req.Limit entries when req.Limit is positive.
func (c *Client) Trending(ctx context.Context, req TrendingRequest) ([]MovieResult, error) {
	endpoint := fmt.Sprintf("%s/trending/movie/%s", c.baseURL(), trendingWindow)

	params := url.Values{}
	if req.Language != "" {
		params.Set("language", req.Language)
	}

	var response TrendingResponse
	if err := c.doRequest(ctx, endpoint, req.APIKey, params, &response); err != nil {
		return nil, err
	}

	results := response.Results
	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}

	c.logger.Debug().
		Str("language", req.Language).
		Int("limit", req.Limit).
		Int("available", len(response.Results)).
		Int("results", len(results)).
		Msg("Fetched trending movies")

	return results, nil
}

// ImageConfiguration fetches the image hosting configuration. apiKey follows
// the same credential policy as TrendingRequest.APIKey.
func (c *Client) ImageConfiguration(ctx context.Context, apiKey string) (ImageConfig, error) {
	endpoint := fmt.Sprintf("%s/configuration", c.baseURL())

	var response ConfigurationResponse
	if err := c.doRequest(ctx, endpoint, apiKey, nil, &response); err != nil {
		return ImageConfig{}, err
	}

	c.logger.Debug().
		Str("baseUrl", response.Images.BaseURL).
		Strs("posterSizes", response.Images.PosterSizes).
		Msg("Fetched image configuration")

	return response.Images, nil
}

func (c *Client) baseURL() string {
	return strings.TrimRight(c.config.BaseURL, "/")
}

func (c *Client) doRequest(ctx context.Context, endpoint, apiKey string, params url.Values, result any) error {
	if apiKey == "" && !c.IsConfigured() {
		return ErrAPIKeyMissing
	}

	if params == nil {
		params = url.Values{}
	}
	if apiKey != "" {
		params.Set("api_key", apiKey)
	}

	reqURL := endpoint
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.config.ContentType != "" {
		req.Header.Set("Content-Type", c.config.ContentType)
	}
	if apiKey == "" {
		req.Header.Set("Authorization", "Bearer "+c.config.BearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Msg("HTTP request failed")
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			c.logger.Error().
				Int("status", resp.StatusCode).
				Str("message", errResp.StatusMessage).
				Str("url", endpoint).
				Msg("TMDB API error")
		}

		switch resp.StatusCode {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusUnauthorized:
			return ErrUnauthorized
		case http.StatusTooManyRequests:
			return ErrRateLimited
		default:
			return fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
