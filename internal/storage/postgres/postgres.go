package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MikhailRaia/link-shortener/internal/model"
	"github.com/MikhailRaia/link-shortener/internal/storage"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Storage struct {
	pool *pgxpool.Pool
}

func NewStorage(ctx context.Context, dsn string) (*Storage, error) {
	if dsn == "" {
		return nil, errors.New("database connection string is empty")
	}

	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	s := &Storage{
		pool: pool,
	}

	if err := s.createTable(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func (s *Storage) createTable(ctx context.Context) error {
	createTableQuery := `
		CREATE TABLE IF NOT EXISTS links (
			id BIGSERIAL PRIMARY KEY,
			short_code VARCHAR(10) NOT NULL UNIQUE,
			original_url VARCHAR(2048) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
			click_count BIGINT NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE
		);
	`

	if _, err := s.pool.Exec(ctx, createTableQuery); err != nil {
		return fmt.Errorf("error creating links table: %w", err)
	}

	// The cleanup job and system stats filter on these columns.
	createIndexQuery := `
		CREATE INDEX IF NOT EXISTS idx_links_active_expires ON links(active, expires_at);
	`

	if _, err := s.pool.Exec(ctx, createIndexQuery); err != nil {
		return fmt.Errorf("error creating links index: %w", err)
	}

	return nil
}

func (s *Storage) Create(ctx context.Context, link *model.Link) error {
	query := `
		INSERT INTO links (short_code, original_url, created_at, expires_at, click_count, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := s.pool.QueryRow(ctx, query,
		link.ShortCode,
		link.OriginalURL,
		link.CreatedAt,
		link.ExpiresAt,
		link.ClickCount,
		link.Active,
	).Scan(&link.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return storage.ErrCodeExists
		}
		return fmt.Errorf("error inserting link into database: %w", err)
	}

	return nil
}

func (s *Storage) GetByCode(ctx context.Context, code string) (*model.Link, error) {
	query := `
		SELECT id, short_code, original_url, created_at, expires_at, click_count, active
		FROM links WHERE short_code = $1
	`

	var link model.Link
	err := s.pool.QueryRow(ctx, query, code).Scan(
		&link.ID,
		&link.ShortCode,
		&link.OriginalURL,
		&link.CreatedAt,
		&link.ExpiresAt,
		&link.ClickCount,
		&link.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("error querying link: %w", err)
	}

	return &link, nil
}

func (s *Storage) Exists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM links WHERE short_code = $1)", code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking if code exists: %w", err)
	}

	return exists, nil
}

func (s *Storage) AddClicks(ctx context.Context, code string, n int64) error {
	tag, err := s.pool.Exec(ctx, "UPDATE links SET click_count = click_count + $2 WHERE short_code = $1", code, n)
	if err != nil {
		return fmt.Errorf("error adding clicks: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s *Storage) Deactivate(ctx context.Context, code string) error {
	tag, err := s.pool.Exec(ctx, "UPDATE links SET active = FALSE WHERE short_code = $1", code)
	if err != nil {
		return fmt.Errorf("error deactivating link: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s *Storage) DeactivateExpired(ctx context.Context, now time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx, "UPDATE links SET active = FALSE WHERE expires_at < $1 AND active = TRUE", now)
	if err != nil {
		return 0, fmt.Errorf("error deactivating expired links: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

func (s *Storage) Stats(ctx context.Context, now time.Time) (model.SystemStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(click_count), 0),
			COUNT(*) FILTER (WHERE active = TRUE AND expires_at > $1)
		FROM links
	`

	var stats model.SystemStats
	if err := s.pool.QueryRow(ctx, query, now).Scan(&stats.TotalLinks, &stats.TotalClicks, &stats.ActiveLinks); err != nil {
		return model.SystemStats{}, fmt.Errorf("error querying stats: %w", err)
	}

	return stats, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
