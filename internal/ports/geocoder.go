package ports

import (
	"context"
	"drone-flight-planner/internal/domain"
)

// Contract for resolving a three-word location label to a position.
type Geocoder interface {
	Locate(ctx context.Context, word string) (domain.Position, error)
}

// Optional extension of Geocoder that supports batched lookups.
type BatchGeocoder interface {
	Geocoder
	// Return positions for many labels, keyed by label.
	LocateMany(ctx context.Context, words []string) (map[string]domain.Position, error)
}

// Persistent cache of resolved three-word labels.
type WordCache interface {
	GetMany(ctx context.Context, words []string) (map[string]domain.Position, error)
	PutMany(ctx context.Context, results map[string]domain.Position) error
}
