package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"waypoint-route-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS saved_routes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		points TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createDirectionsCacheQuery := `
	CREATE TABLE IF NOT EXISTS directions_cache (
		cache_key TEXT PRIMARY KEY,
		distance_meters REAL NOT NULL,
		duration_seconds REAL NOT NULL,
		geometry TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_saved_routes_created_at
	ON saved_routes(created_at);
	`

	return execSchema(context.Background(), db, []string{
		createRoutesQuery,
		createDirectionsCacheQuery,
		createIndexQuery,
	})
}

// Initialize the Postgres database schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS saved_routes (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		points JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createDirectionsCacheQuery := `
	CREATE TABLE IF NOT EXISTS directions_cache (
		cache_key TEXT PRIMARY KEY,
		distance_meters DOUBLE PRECISION NOT NULL,
		duration_seconds DOUBLE PRECISION NOT NULL,
		geometry TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_saved_routes_created_at
	ON saved_routes(created_at);
	`

	return execSchema(ctx, db, []string{
		createRoutesQuery,
		createDirectionsCacheQuery,
		createIndexQuery,
	})
}

func execSchema(ctx context.Context, db *sql.DB, statements []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type RouteSeed struct {
	Name   string            `json:"name"`
	Points []domain.GeoPoint `json:"points"`
}

// Parse and validate saved routes from a JSON seed file.
func LoadSeeds(jsonPath string) ([]*domain.SavedRoute, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed routes: read %q: %w", jsonPath, err)
	}

	var data []RouteSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed routes: parse json: %w", err)
	}

	now := time.Now().UTC()
	routes := make([]*domain.SavedRoute, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("seed routes: item #%d: name cannot be empty", i+1)
		}

		if len(item.Points) == 0 {
			return nil, fmt.Errorf("seed routes: item #%d (%q): points cannot be empty", i+1, name)
		}

		if err := domain.Route(item.Points).Validate(); err != nil {
			return nil, fmt.Errorf("seed routes: item #%d (%q): %w", i+1, name, err)
		}

		routes = append(routes, &domain.SavedRoute{
			// Deterministic IDs keep re-seeding idempotent.
			ID:        uuid.NewSHA1(uuid.NameSpaceURL, []byte("seed:"+name)).String(),
			Name:      name,
			Points:    item.Points,
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		})
	}

	return routes, nil
}

// Populate the SQLite database with saved routes from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	routes, err := LoadSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed routes: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO saved_routes (
		id,
		name,
		points,
		created_at
	)
	VALUES (?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed routes: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range routes {
		points, err := encodePoints(r.Points)
		if err != nil {
			return fmt.Errorf("seed routes: %w", err)
		}
		if _, err := stmt.Exec(r.ID, r.Name, points, r.CreatedAt.UTC().Format(sqliteTimeLayout)); err != nil {
			return fmt.Errorf("seed routes: insert name=%q: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed routes: commit tx: %w", err)
	}

	return nil
}

// Points are stored as an ordered JSON list of {lat, lng} objects.
func encodePoints(points domain.Route) (string, error) {
	b, err := json.Marshal(points)
	if err != nil {
		return "", fmt.Errorf("encode points: %w", err)
	}
	return string(b), nil
}

func decodePoints(raw string) (domain.Route, error) {
	var points domain.Route
	if err := json.Unmarshal([]byte(raw), &points); err != nil {
		return nil, fmt.Errorf("decode points: %w", err)
	}
	return points, nil
}
