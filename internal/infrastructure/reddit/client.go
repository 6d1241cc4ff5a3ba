package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"FilmRiddles/internal/config"
	"FilmRiddles/internal/ports"
	"FilmRiddles/internal/relay"
)

const (
	defaultPageSize = 100
	defaultMaxPages = 5
)

// Client reads the subreddit listing and thread endpoints. It serves both as
// the pool source and the per-post validator.
type Client struct {
	client    *http.Client
	baseURL   string
	relayURL  string
	subreddit string
	pageSize  int
	maxPages  int
	userAgent string
	logger    *slog.Logger
}

var _ ports.PostSource = (*Client)(nil)
var _ ports.ThreadValidator = (*Client)(nil)

// NewClient wires an HTTP client; page size and page count fall back to the
// protocol maximum (100) and five pages.
func NewClient(cfg config.SourceConfig, client *http.Client, logger *slog.Logger) *Client {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	return &Client{
		client:    client,
		baseURL:   cfg.BaseURL,
		relayURL:  cfg.RelayURL,
		subreddit: cfg.Subreddit,
		pageSize:  pageSize,
		maxPages:  maxPages,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

func (c *Client) fetchJSON(ctx context.Context, target string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, relay.Wrap(c.relayURL, target), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reddit returned %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *Client) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
