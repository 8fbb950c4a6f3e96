package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"waypoint-route-service/internal/adapters/cache"
	"waypoint-route-service/internal/adapters/directions"
	"waypoint-route-service/internal/adapters/repositories"
	"waypoint-route-service/internal/api"
	"waypoint-route-service/internal/config"
	"waypoint-route-service/internal/platform/db"
	"waypoint-route-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, OSRM, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	storage := strings.ToLower(config.Get("STORAGE", "sqlite"))
	port := config.Get("PORT", "8080")

	conn, repo, dirCache, err := openStorage(storage)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Redis takes over directions caching when configured; SQL stays the fallback.
	if redisURL := config.Get("REDIS_URL", ""); redisURL != "" {
		ttl := config.GetDuration("DIRECTIONS_CACHE_TTL", 24*time.Hour)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rc, err := cache.NewRedisDirectionsCacheFromURL(ctx, redisURL, ttl)
		cancel()
		if err != nil {
			log.Fatal(err)
		}
		defer rc.Close()
		dirCache = rc
	}

	provider, err := directions.NewOSRMDirectionsProvider(
		directions.WithBaseURL(config.Get("OSRM_BASE_URL", directions.DefaultOSRMBaseURL)),
		directions.WithProfile(config.Get("OSRM_PROFILE", directions.DefaultOSRMProfile)),
		directions.WithRateLimit(config.GetFloat("OSRM_RPS", 1), config.GetInt("OSRM_BURST", 1)),
		directions.WithFetchTimeout(config.GetDuration("OSRM_FETCH_TIMEOUT", directions.DefaultFetchTimeout)),
		directions.WithCache(dirCache),
	)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(repo, provider)

	// Timeouts allow for a cold directions cache (external API latency and retries).
	log.Printf("Server listening addr=:%s storage=%s", port, storage)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openStorage(storage string) (*sql.DB, ports.RouteRepository, ports.DirectionsCache, error) {
	switch storage {
	case "sqlite":
		dbPath := config.Get("DB_PATH", "data/app.db")
		conn, err := db.OpenSqlite(dbPath)
		if err != nil {
			return nil, nil, nil, err
		}

		// Initialize schema and seed demo data on startup for local runs.
		if err := initAndSeed(conn, config.Get("SEED_PATH", "")); err != nil {
			conn.Close()
			return nil, nil, nil, err
		}
		return conn, repositories.NewSqliteRouteRepository(conn), cache.NewSqliteDirectionsCache(conn), nil

	case "postgres":
		databaseURL := config.Get("DATABASE_URL", "")
		if databaseURL == "" {
			return nil, nil, nil, fmt.Errorf("DATABASE_URL is required for STORAGE=postgres")
		}
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		return conn, repositories.NewSQLRouteRepository(conn), cache.NewSQLDirectionsCache(conn), nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown STORAGE %q (want sqlite or postgres)", storage)
	}
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return nil
	}
	if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
