package main

import (
	"context"
	"database/sql"
	"drone-flight-planner/internal/adapters/cache"
	"drone-flight-planner/internal/adapters/geojsonfile"
	"drone-flight-planner/internal/adapters/repositories"
	"drone-flight-planner/internal/adapters/webserver"
	"drone-flight-planner/internal/api"
	"drone-flight-planner/internal/api/handlers"
	"drone-flight-planner/internal/config"
	"drone-flight-planner/internal/platform/db"
	"drone-flight-planner/internal/platform/obs"
	"drone-flight-planner/internal/ports"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (SQL, web server, Redis) behind ports and starts the HTTP server.
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

	ctx := context.Background()
	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		log.Fatal(err)
	}
	// Local SQLite runs get demo orders on startup; Postgres is seeded with dbtool.
	if dialect == db.SQLite {
		if err := repositories.SeedFromJSON(ctx, conn, dialect, cfg.SeedPath); err != nil {
			log.Printf("seed skipped: %v", err)
		}
	}

	client, err := webserver.NewClient(cfg.WebServerURL, wordCache(cfg, conn, dialect))
	if err != nil {
		log.Fatal(err)
	}

	metrics, err := obs.NewFlightCollector(nil)
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSQLOrderRepository(conn, dialect)
	router := api.NewRouter(
		&handlers.HealthHandler{Ping: conn.PingContext},
		&handlers.OrderHandler{Repo: repo},
		&handlers.FlightHandler{
			Repo:     repo,
			Menus:    client,
			Geocoder: client,
			Geometry: client,
			Recorder: repositories.NewSQLFlightRecorder(conn, dialect),
			Writer:   geojsonfile.NewTraceWriter(cfg.OutputDir),
			Metrics:  metrics,
			Base:     cfg.Base,
			MaxMoves: cfg.MaxMoves,
		},
		metrics.Handler(),
	)

	// Timeouts are tuned for cold-cache planning (one lookup per uncached word).
	log.Printf("Server listening addr=:%s db=%s web_server=%s", cfg.Port, dialect, cfg.WebServerURL)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// wordCache prefers Redis when REDIS_ADDR is set, else the SQL word_cache table.
func wordCache(cfg config.Config, conn *sql.DB, dialect db.Dialect) ports.WordCache {
	if cfg.RedisAddr == "" {
		return cache.NewSQLWordCache(conn, dialect)
	}
	log.Printf("word cache backend=redis addr=%s", cfg.RedisAddr)
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	return cache.NewRedisWordCache(rdb, 7*24*time.Hour)
}
