// Package authclient looks up user profiles owned by the auth service.
// Lookups are best effort: every failure is logged and reported as a nil
// snippet so the caller's read still succeeds.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventhub/platform/internal/api/metrics"
	"github.com/eventhub/platform/internal/core/domain"
	"github.com/eventhub/platform/internal/pkg/token"
)

const (
	defaultTimeout = 3 * time.Second
	maxBodyBytes   = 64 << 10
)

// Client implements ports.ProfileLookup over HTTP.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     zerolog.Logger
}

// New returns a Client for the auth service at baseURL. Each lookup is
// bounded by timeout.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
		log:     log,
	}
}

// FetchProfile returns the snippet for userID, or nil when it cannot be
// obtained. The caller's token is forwarded when the context carries one.
func (c *Client) FetchProfile(ctx context.Context, userID int64) *domain.UserSnippet {
	start := time.Now()
	snippet, result, err := c.fetch(ctx, userID)
	metrics.ProfileLookupDuration.Observe(time.Since(start).Seconds())
	metrics.ProfileLookupsTotal.WithLabelValues(result).Inc()

	if err != nil {
		c.log.Warn().Err(err).Int64("user_id", userID).Str("result", result).Msg("profile lookup failed")
		return nil
	}
	return snippet
}

func (c *Client) fetch(ctx context.Context, userID int64) (*domain.UserSnippet, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/authentication/user/%d", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "error", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if tok := domain.TokenFrom(ctx); tok != "" {
		req.Header.Set(token.Header, tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "error", fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "not_found", fmt.Errorf("user %d not found", userID)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "error", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var snippet domain.UserSnippet
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&snippet); err != nil {
		return nil, "malformed", fmt.Errorf("decode body: %w", err)
	}
	if snippet.ID != userID {
		return nil, "malformed", fmt.Errorf("body carries id %d, want %d", snippet.ID, userID)
	}
	return &snippet, "ok", nil
}
