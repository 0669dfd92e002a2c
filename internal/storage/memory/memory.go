package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MikhailRaia/link-shortener/internal/model"
	"github.com/MikhailRaia/link-shortener/internal/storage"
)

// Storage implements in-memory LinkStorage for testing and development.
type Storage struct {
	links  map[string]*model.Link
	nextID int64
	mutex  sync.RWMutex
}

// NewStorage creates a new in-memory storage instance.
func NewStorage() *Storage {
	return &Storage{
		links: make(map[string]*model.Link),
	}
}

// Create stores a copy of link and assigns it the next ID.
func (s *Storage) Create(ctx context.Context, link *model.Link) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.links[link.ShortCode]; exists {
		return storage.ErrCodeExists
	}

	s.nextID++
	link.ID = s.nextID

	stored := *link
	s.links[link.ShortCode] = &stored
	return nil
}

// GetByCode returns a copy of the link with the given short code.
func (s *Storage) GetByCode(ctx context.Context, code string) (*model.Link, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	link, found := s.links[code]
	if !found {
		return nil, storage.ErrNotFound
	}

	result := *link
	return &result, nil
}

// Exists reports whether the short code is taken.
func (s *Storage) Exists(ctx context.Context, code string) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	_, found := s.links[code]
	return found, nil
}

// AddClicks increases the click counter of a link by n.
func (s *Storage) AddClicks(ctx context.Context, code string, n int64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	link, found := s.links[code]
	if !found {
		return storage.ErrNotFound
	}

	link.ClickCount += n
	return nil
}

// Deactivate marks a link inactive.
func (s *Storage) Deactivate(ctx context.Context, code string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	link, found := s.links[code]
	if !found {
		return storage.ErrNotFound
	}

	link.Active = false
	return nil
}

// DeactivateExpired marks every active link that expired before now as inactive.
func (s *Storage) DeactivateExpired(ctx context.Context, now time.Time) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	count := 0
	for _, link := range s.links {
		if link.Active && link.ExpiresAt.Before(now) {
			link.Active = false
			count++
		}
	}

	return count, nil
}

// Stats returns total links, total clicks and currently active links.
func (s *Storage) Stats(ctx context.Context, now time.Time) (model.SystemStats, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var stats model.SystemStats
	for _, link := range s.links {
		stats.TotalLinks++
		stats.TotalClicks += link.ClickCount
		if link.Active && link.ExpiresAt.After(now) {
			stats.ActiveLinks++
		}
	}

	return stats, nil
}
