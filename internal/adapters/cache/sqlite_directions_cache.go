package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"waypoint-route-service/internal/domain"
)

// SQLite backed cache for directions results.
// Keys are expected to come from DirectionsKey.
type SqliteDirectionsCache struct {
	DB *sql.DB
}

func NewSqliteDirectionsCache(db *sql.DB) *SqliteDirectionsCache {
	return &SqliteDirectionsCache{DB: db}
}

func (s *SqliteDirectionsCache) Get(ctx context.Context, key string) (domain.Directions, bool, error) {
	if s.DB == nil {
		return domain.Directions{}, false, errors.New("directions cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return domain.Directions{}, false, errors.New("get directions cache: key must not be empty")
	}

	q := `
	SELECT
		distance_meters,
		duration_seconds,
		geometry
	FROM directions_cache
	WHERE cache_key = ?;
	`

	var d domain.Directions
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&d.DistanceMeters, &d.DurationSeconds, &d.Geometry)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Directions{}, false, nil
	}
	if err != nil {
		return domain.Directions{}, false, fmt.Errorf("get directions cache: query directions_cache table: %w", err)
	}

	return d, true, nil
}

func (s *SqliteDirectionsCache) Put(ctx context.Context, key string, d domain.Directions) error {
	if s.DB == nil {
		return errors.New("directions cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert directions cache: key must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO directions_cache (
		cache_key,
		distance_meters,
		duration_seconds,
		geometry
	)
	VALUES (?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q, key, d.DistanceMeters, d.DurationSeconds, d.Geometry); err != nil {
		return fmt.Errorf("insert directions cache key=%q: %w", key, err)
	}

	return nil
}
