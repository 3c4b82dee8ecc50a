package ports

import (
	"context"
	"drone-flight-planner/internal/domain"
)

// Source of the static flight geometry: no-fly zones and detour landmarks.
type GeometryProvider interface {
	NoFlyZones(ctx context.Context) ([]domain.NoFlyZone, error)
	// Landmarks are returned in a fixed order; detour selection depends on it.
	Landmarks(ctx context.Context) ([]domain.Position, error)
}
