// Package client talks to the link shortener HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MikhailRaia/link-shortener/internal/model"
)

// APIError is a non-2xx answer from the API. Message is the server's error field and may be empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Client calls the link shortener HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a Client for baseURL whose requests time out after timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient returns a Client for baseURL that sends requests through httpClient.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SystemStats calls GET /api/system-stats.
func (c *Client) SystemStats(ctx context.Context) (model.SystemStats, error) {
	var stats model.SystemStats
	err := c.do(ctx, http.MethodGet, "/api/system-stats", nil, &stats)
	return stats, err
}

// Shorten calls POST /api/shorten.
func (c *Client) Shorten(ctx context.Context, req model.CreateLinkRequest) (Link, error) {
	var link Link
	err := c.do(ctx, http.MethodPost, "/api/shorten", req, &link)
	return link, err
}

// LinkStats calls GET /api/stats/{shortCode}.
func (c *Client) LinkStats(ctx context.Context, code string) (Link, error) {
	var link Link
	err := c.do(ctx, http.MethodGet, "/api/stats/"+url.PathEscape(code), nil, &link)
	return link, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Only a JSON error body makes this an application error.
		var errResp model.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return fmt.Errorf("error decoding %s %s error response (status %d): %w", method, path, resp.StatusCode, err)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding %s %s response: %w", method, path, err)
	}

	return nil
}
