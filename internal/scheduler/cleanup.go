package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultCleanupInterval is how often expired links are deactivated.
const DefaultCleanupInterval = time.Hour

// ExpiredLinkCleaner deactivates links past their expiry.
type ExpiredLinkCleaner interface {
	DeactivateExpired(ctx context.Context) (int, error)
}

// CleanupScheduler periodically deactivates expired links.
type CleanupScheduler struct {
	cleaner  ExpiredLinkCleaner
	interval time.Duration
}

func NewCleanupScheduler(cleaner ExpiredLinkCleaner, interval time.Duration) *CleanupScheduler {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}

	return &CleanupScheduler{
		cleaner:  cleaner,
		interval: interval,
	}
}

// Run blocks until ctx is done, running a cleanup on every tick.
func (s *CleanupScheduler) Run(ctx context.Context) error {
	log.Info().Dur("interval", s.interval).Msg("Starting expired link cleanup")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Expired link cleanup stopped")
			return nil
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single cleanup pass. Failures are logged and retried on the next tick.
func (s *CleanupScheduler) RunOnce(ctx context.Context) int {
	count, err := s.cleaner.DeactivateExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to deactivate expired links")
		return 0
	}

	if count > 0 {
		log.Info().Int("count", count).Msg("Deactivated expired links")
	}

	return count
}
