package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"waypoint-route-service/internal/domain"
	"waypoint-route-service/internal/platform/obs"
	"waypoint-route-service/internal/ports"
)

// SQLRouteRepository is a Postgres-backed RouteRepository (pgx stdlib driver).
type SQLRouteRepository struct {
	DB *sql.DB
}

func NewSQLRouteRepository(db *sql.DB) *SQLRouteRepository {
	return &SQLRouteRepository{DB: db}
}

func (s *SQLRouteRepository) SaveRoute(ctx context.Context, route *domain.SavedRoute) (err error) {
	defer obs.Time(ctx, "routes.repo.SaveRoute")(&err)

	if s.DB == nil {
		return errors.New("sql route repository: DB is nil")
	}
	if route == nil {
		return errors.New("save route: route is nil")
	}

	points, err := encodePoints(route.Points)
	if err != nil {
		return fmt.Errorf("save route: %w", err)
	}

	q := `
	INSERT INTO saved_routes (id, name, points, created_at)
	VALUES ($1, $2, $3::jsonb, $4);
	`
	if _, err := s.DB.ExecContext(ctx, q, route.ID, route.Name, points, route.CreatedAt); err != nil {
		return fmt.Errorf("save route: insert id=%s: %w", route.ID, err)
	}

	return nil
}

func (s *SQLRouteRepository) GetRoute(ctx context.Context, id string) (_ *domain.SavedRoute, err error) {
	defer obs.Time(ctx, "routes.repo.GetRoute")(&err)

	if s.DB == nil {
		return nil, errors.New("sql route repository: DB is nil")
	}

	q := `
	SELECT id::text, name, points::text, created_at
	FROM saved_routes
	WHERE id::text = $1;
	`
	route, err := scanSQLRoute(s.DB.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get route id=%s: %w", id, ports.ErrRouteNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get route id=%s: %w", id, err)
	}

	return route, nil
}

func (s *SQLRouteRepository) ListRoutes(ctx context.Context) (_ []*domain.SavedRoute, err error) {
	defer obs.Time(ctx, "routes.repo.ListRoutes")(&err)

	if s.DB == nil {
		return nil, errors.New("sql route repository: DB is nil")
	}

	q := `
	SELECT id::text, name, points::text, created_at
	FROM saved_routes
	ORDER BY created_at, id;
	`
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list routes: query saved_routes table: %w", err)
	}
	defer rows.Close()

	routes := make([]*domain.SavedRoute, 0, 16)
	for rows.Next() {
		route, err := scanSQLRoute(rows)
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

func (s *SQLRouteRepository) DeleteRoute(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "routes.repo.DeleteRoute")(&err)

	if s.DB == nil {
		return errors.New("sql route repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM saved_routes WHERE id::text = $1;`, id)
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

// Upsert seed routes into Postgres; used by cmd/dbtool.
func SeedPostgres(ctx context.Context, db *sql.DB, routes []*domain.SavedRoute) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed routes: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO saved_routes (id, name, points, created_at)
	VALUES ($1, $2, $3::jsonb, $4)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		points = EXCLUDED.points;
	`)
	if err != nil {
		return fmt.Errorf("seed routes: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range routes {
		points, err := encodePoints(r.Points)
		if err != nil {
			return fmt.Errorf("seed routes: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, r.ID, r.Name, points, r.CreatedAt); err != nil {
			return fmt.Errorf("seed routes: insert name=%q: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed routes: commit tx: %w", err)
	}

	return nil
}

func scanSQLRoute(row rowScanner) (*domain.SavedRoute, error) {
	var (
		route     domain.SavedRoute
		rawPoints string
	)
	if err := row.Scan(&route.ID, &route.Name, &rawPoints, &route.CreatedAt); err != nil {
		return nil, err
	}

	points, err := decodePoints(rawPoints)
	if err != nil {
		return nil, fmt.Errorf("route id=%s: %w", route.ID, err)
	}
	route.Points = points

	return &route, nil
}
