package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"waypoint-route-service/internal/adapters/repositories"
	"waypoint-route-service/internal/config"
	"waypoint-route-service/internal/platform/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/routes.json")
	if err := run(databaseURL, seedPath); err != nil {
		log.Fatal(err)
	}
}

func run(databaseURL, seedPath string) error {
	conn, err := db.Open(databaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	return initAndSeed(ctx, conn, seedPath)
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	routes, err := repositories.LoadSeeds(seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	if err := repositories.SeedPostgres(ctx, conn, routes); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Printf("Seeding complete. routes=%d", len(routes))

	return nil
}
