package storage

import (
	"context"
	"errors"
	"time"

	"github.com/MikhailRaia/link-shortener/internal/model"
)

var (
	// ErrNotFound is returned when no link has the requested short code.
	ErrNotFound = errors.New("link not found")
	// ErrCodeExists is returned by Create when the short code is already taken.
	ErrCodeExists = errors.New("short code already exists")
)

// LinkStorage persists short links.
type LinkStorage interface {
	// Create stores link and assigns its ID.
	Create(ctx context.Context, link *model.Link) error
	// GetByCode returns the link regardless of its active flag.
	GetByCode(ctx context.Context, code string) (*model.Link, error)
	Exists(ctx context.Context, code string) (bool, error)
	AddClicks(ctx context.Context, code string, n int64) error
	Deactivate(ctx context.Context, code string) error
	// DeactivateExpired flips active links that expired before now and returns how many changed.
	DeactivateExpired(ctx context.Context, now time.Time) (int, error)
	Stats(ctx context.Context, now time.Time) (model.SystemStats, error)
}
