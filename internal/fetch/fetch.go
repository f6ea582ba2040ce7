// Package fetch retrieves comments from JSON APIs.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/huangsam/commentiq/internal/contract"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 10 << 20

const userAgent = "commentiq/1.0"

// Fetcher downloads and flattens comment payloads. Requests share one limiter
// so consecutive fetches are spaced by the configured interval.
type Fetcher struct {
	client        *http.Client
	limiter       *rate.Limiter
	stripMarkdown bool
}

// NewFetcher builds a fetcher from the validated config. When OAuth settings
// are present, requests carry client-credentials tokens.
func NewFetcher(ctx context.Context, cfg *contract.Config) *Fetcher {
	client := &http.Client{Timeout: cfg.FetchTimeout}
	if cfg.OAuth.Enabled() {
		oauthConf := &clientcredentials.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			TokenURL:     cfg.OAuth.TokenURL,
			Scopes:       cfg.OAuth.Scopes,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: cfg.FetchTimeout})
		client = oauthConf.Client(tokenCtx)
		client.Timeout = cfg.FetchTimeout
	}

	limit := rate.Inf
	if cfg.FetchInterval > 0 {
		limit = rate.Every(cfg.FetchInterval)
	}

	return &Fetcher{
		client:        client,
		limiter:       rate.NewLimiter(limit, 1),
		stripMarkdown: cfg.StripMarkdown,
	}
}

// Fetch downloads apiURL and returns the eligible comments in payload order.
func (f *Fetcher) Fetch(ctx context.Context, apiURL string) ([]string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, &FetchError{URL: apiURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	slog.Debug("Fetching comments", "url", apiURL)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: apiURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: apiURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &FetchError{URL: apiURL, Err: err}
	}

	candidates, err := FlattenComments(body)
	if err != nil {
		return nil, err
	}
	if f.stripMarkdown {
		for i, c := range candidates {
			candidates[i] = StripMarkdown(c)
		}
	}

	comments := EligibleComments(candidates)
	if len(comments) == 0 {
		return nil, ErrNoEligibleComments
	}
	slog.Debug("Fetched comments", "url", apiURL, "candidates", len(candidates), "eligible", len(comments))
	return comments, nil
}
