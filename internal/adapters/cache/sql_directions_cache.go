package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"waypoint-route-service/internal/domain"
	"waypoint-route-service/internal/platform/obs"
)

// SQLDirectionsCache is a Postgres-backed cache for directions results.
type SQLDirectionsCache struct {
	DB *sql.DB
}

func NewSQLDirectionsCache(db *sql.DB) *SQLDirectionsCache {
	return &SQLDirectionsCache{DB: db}
}

func (s *SQLDirectionsCache) Get(ctx context.Context, key string) (_ domain.Directions, _ bool, err error) {
	defer obs.Time(ctx, "directions.cache.Get")(&err)

	if s.DB == nil {
		return domain.Directions{}, false, errors.New("directions cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return domain.Directions{}, false, errors.New("get directions cache: key must not be empty")
	}

	q := `
	SELECT distance_meters, duration_seconds, geometry
	FROM directions_cache
	WHERE cache_key = $1;
	`

	var d domain.Directions
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&d.DistanceMeters, &d.DurationSeconds, &d.Geometry)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Directions{}, false, nil
	}
	if err != nil {
		return domain.Directions{}, false, fmt.Errorf("get directions cache: query directions_cache table: %w", err)
	}

	return d, true, nil
}

func (s *SQLDirectionsCache) Put(ctx context.Context, key string, d domain.Directions) error {
	if s.DB == nil {
		return errors.New("directions cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert directions cache: key must not be empty")
	}

	q := `
	INSERT INTO directions_cache (cache_key, distance_meters, duration_seconds, geometry)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (cache_key) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds,
		geometry = EXCLUDED.geometry;
	`
	if _, err := s.DB.ExecContext(ctx, q, key, d.DistanceMeters, d.DurationSeconds, d.Geometry); err != nil {
		return fmt.Errorf("insert directions cache key=%q: %w", key, err)
	}

	return nil
}
