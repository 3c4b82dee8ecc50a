package main

import (
	"context"
	"database/sql"
	"drone-flight-planner/internal/adapters/repositories"
	"drone-flight-planner/internal/config"
	"drone-flight-planner/internal/platform/db"
	"log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conn, dialect, err := db.OpenFromEnv(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(context.Background(), conn, dialect, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect db.Dialect, seedPath string) error {
	log.Printf("Initializing database schema... db=%s", dialect)
	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding database... seed=%s", seedPath)
	if err := repositories.SeedFromJSON(ctx, conn, dialect, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")

	return nil
}
