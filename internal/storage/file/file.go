package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MikhailRaia/link-shortener/internal/model"
	"github.com/MikhailRaia/link-shortener/internal/storage"
)

// Storage implements LinkStorage backed by an append-only JSONL file.
// Every change appends a full snapshot of the link; on load the last snapshot per code wins.
type Storage struct {
	filePath string
	links    map[string]*model.Link
	nextID   int64
	mu       sync.RWMutex
}

// NewStorage creates a file-backed storage at the provided path and replays its contents.
func NewStorage(filePath string) (*Storage, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	s := &Storage{
		filePath: filePath,
		links:    make(map[string]*model.Link),
	}

	if err := s.loadFromFile(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) Create(ctx context.Context, link *model.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.links[link.ShortCode]; exists {
		return storage.ErrCodeExists
	}

	link.ID = s.nextID + 1
	if err := s.appendRecord(link); err != nil {
		return err
	}

	s.nextID = link.ID
	stored := *link
	s.links[link.ShortCode] = &stored
	return nil
}

func (s *Storage) GetByCode(ctx context.Context, code string) (*model.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, found := s.links[code]
	if !found {
		return nil, storage.ErrNotFound
	}

	result := *link
	return &result, nil
}

func (s *Storage) Exists(ctx context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, found := s.links[code]
	return found, nil
}

func (s *Storage) AddClicks(ctx context.Context, code string, n int64) error {
	return s.update(code, func(link *model.Link) {
		link.ClickCount += n
	})
}

func (s *Storage) Deactivate(ctx context.Context, code string) error {
	return s.update(code, func(link *model.Link) {
		link.Active = false
	})
}

func (s *Storage) DeactivateExpired(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, link := range s.links {
		if !link.Active || !link.ExpiresAt.Before(now) {
			continue
		}

		updated := *link
		updated.Active = false
		if err := s.appendRecord(&updated); err != nil {
			return count, err
		}

		*link = updated
		count++
	}

	return count, nil
}

func (s *Storage) Stats(ctx context.Context, now time.Time) (model.SystemStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

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

func (s *Storage) update(code string, apply func(link *model.Link)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, found := s.links[code]
	if !found {
		return storage.ErrNotFound
	}

	updated := *link
	apply(&updated)
	if err := s.appendRecord(&updated); err != nil {
		return err
	}

	*link = updated
	return nil
}

func (s *Storage) loadFromFile() error {
	file, err := os.OpenFile(s.filePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record model.Link
		if err := json.Unmarshal(line, &record); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}

		s.links[record.ShortCode] = &record

		if record.ID > s.nextID {
			s.nextID = record.ID
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	return nil
}

// appendRecord must be called with s.mu held so the file order matches the in-memory order.
func (s *Storage) appendRecord(link *model.Link) error {
	file, err := os.OpenFile(s.filePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file for writing: %w", err)
	}
	defer file.Close()

	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}

	return nil
}
