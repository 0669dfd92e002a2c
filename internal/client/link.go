package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// Link is a short link as the page reads it from the API.
type Link struct {
	ShortCode   string    `json:"shortCode"`
	ShortURL    string    `json:"shortUrl"`
	OriginalURL string    `json:"originalUrl"`
	ClickCount  int64     `json:"clickCount"`
	ExpiresAt   Timestamp `json:"expiresAt"`
	Active      bool      `json:"active"`
}

// Timestamp keeps a timestamp as the server wrote it. Decoding never fails; the text is
// interpreted later by Time.
type Timestamp string

var errInvalidTimestamp = errors.New("invalid timestamp")

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// NewTimestamp formats t as RFC 3339.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.Format(time.RFC3339Nano))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*ts = Timestamp(s)
		return nil
	}

	if bytes.Equal(data, []byte("null")) {
		*ts = ""
		return nil
	}

	// Anything else, like a date array, is kept verbatim and reads as invalid.
	*ts = Timestamp(data)
	return nil
}

// Time parses the timestamp. Text with a zone offset is taken as is; zoneless text is read in
// loc, and a bare date is read as UTC.
func (ts Timestamp) Time(loc *time.Location) (time.Time, error) {
	s := string(ts)
	if s == "" {
		return time.Time{}, errInvalidTimestamp
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	if loc == nil {
		loc = time.Local
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}

	return time.Time{}, errInvalidTimestamp
}
