// Package validator sanitizes and validates URLs submitted for shortening.
package validator

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// DefaultMaxLength is the longest URL accepted by default.
const DefaultMaxLength = 2048

// DefaultBlockedDomains are hosts that may never be shortened.
var DefaultBlockedDomains = []string{"localhost", "127.0.0.1", "0.0.0.0"}

var (
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	privateIPPattern = regexp.MustCompile(`^(10\.|172\.(1[6-9]|2[0-9]|3[01])\.|192\.168\.)`)

	dangerousSchemes = map[string]bool{
		"javascript": true,
		"data":       true,
		"file":       true,
		"vbscript":   true,
	}
)

// ValidationError describes why a URL was rejected. Its message is safe to show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Validator checks URLs against length, scheme and host rules.
type Validator struct {
	maxLength      int
	blockedDomains []string
}

// New creates a Validator. Zero maxLength means DefaultMaxLength; nil blocked means DefaultBlockedDomains.
func New(maxLength int, blocked []string) *Validator {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if blocked == nil {
		blocked = DefaultBlockedDomains
	}

	lowered := make([]string, 0, len(blocked))
	for _, d := range blocked {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			lowered = append(lowered, d)
		}
	}

	return &Validator{
		maxLength:      maxLength,
		blockedDomains: lowered,
	}
}

// Sanitize trims whitespace and strips HTML tags.
func Sanitize(raw string) string {
	return tagPattern.ReplaceAllString(strings.TrimSpace(raw), "")
}

// Validate returns a *ValidationError if rawURL cannot be shortened.
func (v *Validator) Validate(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return invalid("URL cannot be empty")
	}

	if len(rawURL) > v.maxLength {
		return invalid("URL exceeds maximum length of %d", v.maxLength)
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" {
		return invalid("Invalid URL format")
	}

	scheme := strings.ToLower(u.Scheme)
	if dangerousSchemes[scheme] {
		return invalid("URL scheme not allowed: %s", u.Scheme)
	}

	if scheme != "http" && scheme != "https" {
		return invalid("Only HTTP and HTTPS protocols are allowed")
	}

	host := strings.ToLower(u.Hostname())
	if host == "" || strings.ContainsAny(host, " <>\"") {
		return invalid("Invalid URL format")
	}

	for _, blocked := range v.blockedDomains {
		if strings.Contains(host, blocked) {
			return invalid("Domain is blocked: %s", host)
		}
	}

	if privateIPPattern.MatchString(host) {
		return invalid("Private IP addresses are not allowed")
	}

	return nil
}
