package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/MikhailRaia/link-shortener/internal/generator"
	"github.com/MikhailRaia/link-shortener/internal/model"
	"github.com/MikhailRaia/link-shortener/internal/storage"
	"github.com/MikhailRaia/link-shortener/internal/validator"
	"github.com/rs/zerolog/log"
)

const maxCodeAttempts = 10

// Cache stores resolved codes for the redirect path.
type Cache interface {
	Get(ctx context.Context, code string) (string, error)
	Set(ctx context.Context, code, url string, ttl time.Duration) error
	Delete(ctx context.Context, code string) error
}

// ClickRecorder counts redirects asynchronously.
type ClickRecorder interface {
	Record(ctx context.Context, code string) error
}

// Config holds the tunables of LinkService.
type Config struct {
	BaseURL                string
	DefaultExpirationHours int
	MaxExpirationHours     int
	CodeLength             int
}

// LinkService provides business logic for creating, resolving and inspecting short links.
type LinkService struct {
	storage   storage.LinkStorage
	validator *validator.Validator
	cache     Cache
	clicks    ClickRecorder
	cfg       Config
	now       func() time.Time
}

// Option customizes a LinkService.
type Option func(*LinkService)

// WithCache enables the redirect cache.
func WithCache(cache Cache) Option {
	return func(s *LinkService) {
		s.cache = cache
	}
}

// WithClickRecorder routes redirect clicks through recorder instead of writing them inline.
func WithClickRecorder(recorder ClickRecorder) Option {
	return func(s *LinkService) {
		s.clicks = recorder
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *LinkService) {
		s.now = now
	}
}

// NewLinkService constructs a LinkService. Zero config values fall back to 24h expiry,
// a one-year maximum and 6-character codes.
func NewLinkService(store storage.LinkStorage, v *validator.Validator, cfg Config, opts ...Option) *LinkService {
	if cfg.DefaultExpirationHours <= 0 {
		cfg.DefaultExpirationHours = 24
	}
	if cfg.MaxExpirationHours <= 0 {
		cfg.MaxExpirationHours = 24 * 365
	}
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = 6
	}

	s := &LinkService{
		storage:   store,
		validator: v,
		cfg:       cfg,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateShortLink validates the request and stores a new link under a fresh short code.
// Rejected input is reported as *validator.ValidationError.
func (s *LinkService) CreateShortLink(ctx context.Context, req model.CreateLinkRequest) (model.LinkResponse, error) {
	originalURL := validator.Sanitize(req.URL)
	if err := s.validator.Validate(originalURL); err != nil {
		return model.LinkResponse{}, err
	}

	hours := s.cfg.DefaultExpirationHours
	if req.ExpirationHours != nil {
		hours = *req.ExpirationHours
	}
	if hours < 1 || hours > s.cfg.MaxExpirationHours {
		return model.LinkResponse{}, &validator.ValidationError{
			Message: fmt.Sprintf("Expiration hours must be between 1 and %d", s.cfg.MaxExpirationHours),
		}
	}

	now := s.now()
	link := &model.Link{
		OriginalURL: originalURL,
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Duration(hours) * time.Hour),
		ClickCount:  0,
		Active:      true,
	}

	if err := s.createWithUniqueCode(ctx, link); err != nil {
		return model.LinkResponse{}, err
	}

	log.Info().
		Str("shortCode", link.ShortCode).
		Str("originalURL", originalURL).
		Msg("Created short link")

	return s.buildLinkResponse(link), nil
}

func (s *LinkService) createWithUniqueCode(ctx context.Context, link *model.Link) error {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		length := s.cfg.CodeLength
		// Too many collisions: widen the code space once.
		if attempt == maxCodeAttempts {
			length++
		}

		code, err := generator.GenerateCode(length)
		if err != nil {
			return fmt.Errorf("error generating short code: %w", err)
		}

		exists, err := s.storage.Exists(ctx, code)
		if err != nil {
			return fmt.Errorf("error checking short code: %w", err)
		}
		if exists {
			continue
		}

		link.ShortCode = code
		err = s.storage.Create(ctx, link)
		if errors.Is(err, storage.ErrCodeExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("error saving link: %w", err)
		}

		return nil
	}

	return fmt.Errorf("error generating unique short code after %d attempts", maxCodeAttempts)
}

// ResolveURL returns the original URL for an active code and records a click.
// Unknown, inactive and expired codes yield storage.ErrNotFound; expired links are deactivated.
func (s *LinkService) ResolveURL(ctx context.Context, code string) (string, error) {
	if s.cache != nil {
		if originalURL, err := s.cache.Get(ctx, code); err == nil {
			s.recordClick(ctx, code)
			return originalURL, nil
		}
	}

	link, err := s.storage.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Warn().Str("shortCode", code).Msg("Short code not found")
		}
		return "", err
	}

	if !link.Active {
		log.Warn().Str("shortCode", code).Msg("Short code inactive")
		return "", storage.ErrNotFound
	}

	now := s.now()
	if link.IsExpired(now) {
		if err := s.deactivate(ctx, code); err != nil {
			log.Error().Err(err).Str("shortCode", code).Msg("Failed to deactivate expired link")
		}
		log.Info().Str("shortCode", code).Msg("Link expired")
		return "", storage.ErrNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, code, link.OriginalURL, link.ExpiresAt.Sub(now)); err != nil {
			log.Warn().Err(err).Str("shortCode", code).Msg("Failed to cache link")
		}
	}

	s.recordClick(ctx, code)

	log.Info().
		Str("shortCode", code).
		Str("originalURL", link.OriginalURL).
		Msg("Redirecting")

	return link.OriginalURL, nil
}

func (s *LinkService) recordClick(ctx context.Context, code string) {
	var err error
	if s.clicks != nil {
		err = s.clicks.Record(ctx, code)
	} else {
		err = s.storage.AddClicks(ctx, code, 1)
	}

	if err != nil {
		log.Error().Err(err).Str("shortCode", code).Msg("Failed to record click")
	}
}

func (s *LinkService) deactivate(ctx context.Context, code string) error {
	if s.cache != nil {
		if err := s.cache.Delete(ctx, code); err != nil {
			log.Warn().Err(err).Str("shortCode", code).Msg("Failed to evict link from cache")
		}
	}
	return s.storage.Deactivate(ctx, code)
}

// GetLinkStats returns the link for code whether or not it is still active.
func (s *LinkService) GetLinkStats(ctx context.Context, code string) (model.LinkResponse, error) {
	link, err := s.storage.GetByCode(ctx, code)
	if err != nil {
		return model.LinkResponse{}, err
	}

	return s.buildLinkResponse(link), nil
}

// GetSystemStats returns service-wide counters.
func (s *LinkService) GetSystemStats(ctx context.Context) (model.SystemStats, error) {
	stats, err := s.storage.Stats(ctx, s.now())
	if err != nil {
		return model.SystemStats{}, fmt.Errorf("error getting system stats: %w", err)
	}
	return stats, nil
}

// DeactivateExpired deactivates every link whose expiry has passed.
func (s *LinkService) DeactivateExpired(ctx context.Context) (int, error) {
	return s.storage.DeactivateExpired(ctx, s.now())
}

func (s *LinkService) buildLinkResponse(link *model.Link) model.LinkResponse {
	shortURL, err := url.JoinPath(s.cfg.BaseURL, link.ShortCode)
	if err != nil {
		shortURL = s.cfg.BaseURL + "/" + link.ShortCode
	}

	return model.LinkResponse{
		ShortCode:   link.ShortCode,
		ShortURL:    shortURL,
		OriginalURL: link.OriginalURL,
		ClickCount:  link.ClickCount,
		CreatedAt:   link.CreatedAt,
		ExpiresAt:   link.ExpiresAt,
		Active:      link.Active && !link.IsExpired(s.now()),
	}
}
