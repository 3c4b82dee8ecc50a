package api

import (
	"drone-flight-planner/internal/api/handlers"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// metrics may be nil to leave /metrics unrouted.
func NewRouter(
	health *handlers.HealthHandler,
	orders *handlers.OrderHandler,
	flights *handlers.FlightHandler,
	metrics http.Handler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", health.Check)
	mux.HandleFunc("/orders", orders.List)
	mux.HandleFunc("/flights", flights.Plan)
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}

	return loggingMiddleware(mux)
}
