package ports

import (
	"context"
	"drone-flight-planner/internal/domain"
)

// Port: persistence of a planned flight's outcome.
type FlightRecorder interface {
	SaveDeliveries(ctx context.Context, records []domain.DeliveryRecord) error
	SaveFlightPath(ctx context.Context, events []domain.FlightEvent) error
}

// Renders the flight trace to a file and returns its path.
type TraceWriter interface {
	WriteTrace(ctx context.Context, date string, trace []domain.Position) (string, error)
}
