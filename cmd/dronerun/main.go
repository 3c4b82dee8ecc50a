package main

import (
	"context"
	"drone-flight-planner/internal/adapters/cache"
	"drone-flight-planner/internal/adapters/geojsonfile"
	"drone-flight-planner/internal/adapters/repositories"
	"drone-flight-planner/internal/adapters/webserver"
	"drone-flight-planner/internal/config"
	"drone-flight-planner/internal/platform/db"
	"drone-flight-planner/internal/platform/obs"
	"drone-flight-planner/internal/services"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var webServer, databaseURL, outDir, metricsFile string

	cmd := &cobra.Command{
		Use:   "dronerun DD MM YYYY",
		Short: "Plan and fly one day's lunch deliveries",
		Long: "Plans the drone's flight for the orders due on the given day, records the " +
			"deliveries and flight path in the database and writes drone-DD-MM-YYYY.geojson.",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0], args[1], args[2])
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("web-server") {
				cfg.WebServerURL = webServer
			}
			if cmd.Flags().Changed("database-url") {
				cfg.DatabaseURL = databaseURL
			}
			if cmd.Flags().Changed("out") {
				cfg.OutputDir = outDir
			}

			return run(cmd.Context(), cfg, date, metricsFile)
		},
	}

	cmd.Flags().StringVar(&webServer, "web-server", "", "base URL of the content web server (default $WEB_SERVER_URL)")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres DSN; SQLite at $DB_PATH when empty")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for the GeoJSON trace (default $OUTPUT_DIR)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write flight metrics in Prometheus text format to this file")

	return cmd
}

// parseDate turns DD MM YYYY arguments into a YYYY-MM-DD date.
func parseDate(day, month, year string) (string, error) {
	d, errD := strconv.Atoi(day)
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)
	if errD != nil || errM != nil || errY != nil {
		return "", fmt.Errorf("date %s %s %s: day, month and year must be numbers", day, month, year)
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m || t.Year() != y {
		return "", fmt.Errorf("date %s %s %s: not a calendar date", day, month, year)
	}
	return t.Format(time.DateOnly), nil
}

func run(ctx context.Context, cfg config.Config, date, metricsFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, runID := obs.WithRequestID(ctx)
	log.Printf("run started req_id=%s date=%s web_server=%s", runID, date, cfg.WebServerURL)

	conn, dialect, err := db.OpenFromEnv(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		return err
	}

	client, err := webserver.NewClient(cfg.WebServerURL, cache.NewSQLWordCache(conn, dialect))
	if err != nil {
		return err
	}

	plan, err := services.PlanFlight(
		ctx,
		services.PlanFlightRequest{Date: date, Base: cfg.Base, MaxMoves: cfg.MaxMoves},
		repositories.NewSQLOrderRepository(conn, dialect),
		client,
		client,
		client,
	)
	if err != nil {
		return err
	}

	path, err := services.PublishFlight(
		ctx,
		plan,
		repositories.NewSQLFlightRecorder(conn, dialect),
		geojsonfile.NewTraceWriter(cfg.OutputDir),
	)
	if err != nil {
		return err
	}

	if err := recordRunMetrics(plan, metricsFile); err != nil {
		log.Printf("run metrics not written req_id=%s path=%s err=%v", runID, metricsFile, err)
	}

	fmt.Printf("%s: %d/%d orders delivered in %d moves (%s), trace written to %s\n",
		date, len(plan.Deliveries), len(plan.Orders), plan.Flight.Moves(), plan.Flight.State, path)
	return nil
}

// recordRunMetrics observes the flight on a private registry and, when path is
// set, writes it out for a node_exporter textfile collector.
func recordRunMetrics(plan *services.FlightPlan, path string) error {
	reg := prometheus.NewRegistry()
	metrics, err := obs.NewFlightCollector(reg)
	if err != nil {
		return err
	}
	metrics.ObserveFlight(plan.Flight.State.String(), plan.Flight.Moves(), len(plan.Deliveries))

	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
