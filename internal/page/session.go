package page

import (
	"sync"

	"github.com/MikhailRaia/link-shortener/internal/client"
	"github.com/MikhailRaia/link-shortener/internal/qrcode"
)

// Session holds the most recently created link and its QR code.
type Session struct {
	mu     sync.RWMutex
	result *client.Link
	qr     *qrcode.Code
}

// Result returns a copy of the current link, or false when none has been created.
func (s *Session) Result() (client.Link, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.result == nil {
		return client.Link{}, false
	}
	return *s.result, true
}

// ShortCode returns the code of the current link or "".
func (s *Session) ShortCode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.result == nil {
		return ""
	}
	return s.result.ShortCode
}

func (s *Session) QRCode() *qrcode.Code {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.qr
}

// Replace swaps in a new link and QR code, dropping the previous pair.
func (s *Session) Replace(result client.Link, qr *qrcode.Code) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.result = &result
	s.qr = qr
}

// UpdateStats refreshes the click count and expiry of the current link if it still has code.
func (s *Session) UpdateStats(code string, stats client.Link) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil || s.result.ShortCode != code {
		return
	}
	s.result.ClickCount = stats.ClickCount
	s.result.ExpiresAt = stats.ExpiresAt
}
