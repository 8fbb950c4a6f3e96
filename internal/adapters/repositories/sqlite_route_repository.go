package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"waypoint-route-service/internal/domain"
	"waypoint-route-service/internal/ports"
)

// Fixed-width UTC timestamps so text ordering in SQLite is chronological.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite-backed implementation of the RouteRepository port.
type SqliteRouteRepository struct{ DB *sql.DB }

func NewSqliteRouteRepository(db *sql.DB) *SqliteRouteRepository {
	return &SqliteRouteRepository{DB: db}
}

func (s *SqliteRouteRepository) SaveRoute(ctx context.Context, route *domain.SavedRoute) error {
	if s.DB == nil {
		return errors.New("sqlite route repository: DB is nil")
	}
	if route == nil {
		return errors.New("save route: route is nil")
	}

	points, err := encodePoints(route.Points)
	if err != nil {
		return fmt.Errorf("save route: %w", err)
	}

	query := `
	INSERT INTO saved_routes (
		id,
		name,
		points,
		created_at
	)
	VALUES (?, ?, ?, ?);
	`
	_, err = s.DB.ExecContext(ctx, query, route.ID, route.Name, points, route.CreatedAt.UTC().Format(sqliteTimeLayout))
	if err != nil {
		return fmt.Errorf("save route: insert id=%s: %w", route.ID, err)
	}

	return nil
}

func (s *SqliteRouteRepository) GetRoute(ctx context.Context, id string) (*domain.SavedRoute, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite route repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		points,
		created_at
	FROM saved_routes
	WHERE id = ?;
	`
	route, err := scanSqliteRoute(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get route id=%s: %w", id, ports.ErrRouteNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get route id=%s: %w", id, err)
	}

	return route, nil
}

// Return all saved routes, oldest first.
func (s *SqliteRouteRepository) ListRoutes(ctx context.Context) ([]*domain.SavedRoute, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite route repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		points,
		created_at
	FROM saved_routes
	ORDER BY created_at, id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list routes: query saved_routes table: %w", err)
	}
	defer rows.Close()

	routes := make([]*domain.SavedRoute, 0, 16)
	for rows.Next() {
		route, err := scanSqliteRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("list routes: %w", err)
		}
		routes = append(routes, route)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}

	return routes, nil
}

func (s *SqliteRouteRepository) DeleteRoute(ctx context.Context, id string) error {
	if s.DB == nil {
		return errors.New("sqlite route repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM saved_routes WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete route id=%s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete route id=%s: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete route id=%s: %w", id, ports.ErrRouteNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSqliteRoute(row rowScanner) (*domain.SavedRoute, error) {
	var (
		route     domain.SavedRoute
		rawPoints string
		createdAt string
	)
	if err := row.Scan(&route.ID, &route.Name, &rawPoints, &createdAt); err != nil {
		return nil, err
	}

	points, err := decodePoints(rawPoints)
	if err != nil {
		return nil, fmt.Errorf("route id=%s: %w", route.ID, err)
	}
	route.Points = points

	ts, err := time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("route id=%s: parse created_at %q: %w", route.ID, createdAt, err)
	}
	route.CreatedAt = ts

	return &route, nil
}
