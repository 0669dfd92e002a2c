package model

import "time"

// Link is a stored short link.
type Link struct {
	ID          int64     `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	ClickCount  int64     `json:"click_count"`
	Active      bool      `json:"active"`
}

// IsExpired reports whether the link expiration time is before now.
func (l *Link) IsExpired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}

// CreateLinkRequest is the body of POST /api/shorten.
type CreateLinkRequest struct {
	URL             string `json:"url"`
	ExpirationHours *int   `json:"expirationHours,omitempty"`
}

// LinkResponse is the external representation of a link.
type LinkResponse struct {
	ShortCode   string    `json:"shortCode"`
	ShortURL    string    `json:"shortUrl"`
	OriginalURL string    `json:"originalUrl"`
	ClickCount  int64     `json:"clickCount"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Active      bool      `json:"active"`
}

// SystemStats holds service-wide counters.
type SystemStats struct {
	TotalLinks  int64 `json:"totalLinks"`
	TotalClicks int64 `json:"totalClicks"`
	ActiveLinks int64 `json:"activeLinks"`
}

// ErrorResponse is returned by the API on failures.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
