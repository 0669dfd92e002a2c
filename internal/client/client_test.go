package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MikhailRaia/link-shortener/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SystemStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/system-stats", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalLinks":12,"totalClicks":34,"activeLinks":5}`))
	}))
	defer server.Close()

	stats, err := New(server.URL+"/", time.Second).SystemStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SystemStats{TotalLinks: 12, TotalClicks: 34, ActiveLinks: 5}, stats)
}

func TestClient_Shorten(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/shorten", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req model.CreateLinkRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://example.com", req.URL)
		require.NotNil(t, req.ExpirationHours)
		assert.Equal(t, 12, *req.ExpirationHours)

		_, _ = w.Write([]byte(`{"shortCode":"abc123","shortUrl":"http://s/abc123","originalUrl":"https://example.com","clickCount":0,"expiresAt":"2025-01-01T12:00:00Z"}`))
	}))
	defer server.Close()

	hours := 12
	link, err := New(server.URL, time.Second).Shorten(context.Background(), model.CreateLinkRequest{URL: "https://example.com", ExpirationHours: &hours})
	require.NoError(t, err)
	assert.Equal(t, "abc123", link.ShortCode)
	assert.Equal(t, "http://s/abc123", link.ShortURL)
	expiresAt, err := link.ExpiresAt.Time(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), expiresAt.UTC())
}

func TestClient_LinkStatsZonelessExpiry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stats/abc123", r.URL.Path)
		_, _ = w.Write([]byte(`{"shortCode":"abc123","clickCount":7,"expiresAt":"2025-01-02T00:00:00.123456","active":true}`))
	}))
	defer server.Close()

	link, err := New(server.URL, time.Second).LinkStats(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", link.ShortCode)
	assert.Equal(t, int64(7), link.ClickCount)
	assert.Equal(t, Timestamp("2025-01-02T00:00:00.123456"), link.ExpiresAt)

	expiresAt, err := link.ExpiresAt.Time(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 123456000, time.UTC), expiresAt)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantAPI     bool
		wantStatus  int
		wantMessage string
	}{
		{name: "Application error", status: http.StatusBadRequest, body: `{"error":"Invalid URL format"}`, wantAPI: true, wantStatus: 400, wantMessage: "Invalid URL format"},
		{name: "Error without message", status: http.StatusInternalServerError, body: `{}`, wantAPI: true, wantStatus: 500},
		{name: "Non-JSON error body", status: http.StatusBadGateway, body: `<html>Bad Gateway</html>`, wantAPI: false},
		{name: "Plain text error body", status: http.StatusInternalServerError, body: `oops`, wantAPI: false},
		{name: "Not found", status: http.StatusNotFound, body: `{"error":"Link not found"}`, wantAPI: true, wantStatus: 404, wantMessage: "Link not found"},
		{name: "Undecodable success", status: http.StatusOK, body: `<html>`, wantAPI: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := New(server.URL, time.Second).LinkStats(context.Background(), "abc123")
			require.Error(t, err)

			var apiErr *APIError
			assert.Equal(t, tt.wantAPI, errors.As(err, &apiErr))
			if tt.wantAPI {
				assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
				assert.Equal(t, tt.wantMessage, apiErr.Message)
			}
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	_, err := New(baseURL, time.Second).SystemStats(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
