package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/huangsam/commentiq/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestFetcher(cfg *contract.Config) *Fetcher {
	f := NewFetcher(context.Background(), cfg)
	f.limiter = rate.NewLimiter(rate.Inf, 1)
	return f
}

func testConfig() *contract.Config {
	return &contract.Config{FetchTimeout: 5 * time.Second}
}

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"body": "This product is excellent!"}, {"body": "too short"}, "Another long enough comment"]`))
	}))
	defer server.Close()

	comments, err := newTestFetcher(testConfig()).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"This product is excellent!", "Another long enough comment"}, comments)
}

func TestFetcher_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestFetcher(testConfig()).Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, "HTTP error! status: 404", err.Error())
}

func TestFetcher_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestFetcher(testConfig()).Fetch(context.Background(), url)
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.StatusCode)
	assert.Error(t, fetchErr.Unwrap())
}

func TestFetcher_NoEligibleComments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"comments": ["tiny", {"body": "short"}]}`))
	}))
	defer server.Close()

	_, err := newTestFetcher(testConfig()).Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrNoEligibleComments)
}

func TestFetcher_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	_, err := newTestFetcher(testConfig()).Fetch(context.Background(), server.URL)
	assert.ErrorContains(t, err, "failed to decode response")
}

func TestFetcher_StripMarkdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`["**Loved** it, see [here](https://x.test)", "[a](https://very-long-link.test)"]`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.StripMarkdown = true
	comments, err := newTestFetcher(cfg).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"Loved it, see here"}, comments)
}

func TestFetcher_OAuth(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client", user)
		assert.Equal(t, "secret", pass)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "tok-123", "token_type": "bearer", "expires_in": 3600}`))
	}))
	defer tokenServer.Close()

	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`["authorized comment text"]`))
	}))
	defer apiServer.Close()

	cfg := testConfig()
	cfg.OAuth = contract.OAuthConfig{TokenURL: tokenServer.URL, ClientID: "client", ClientSecret: "secret"}
	comments, err := newTestFetcher(cfg).Fetch(context.Background(), apiServer.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"authorized comment text"}, comments)
}

func TestFetcher_ContextCancelled(t *testing.T) {
	f := NewFetcher(context.Background(), &contract.Config{FetchTimeout: time.Second, FetchInterval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, "http://127.0.0.1:1")
	assert.Error(t, err)
}
