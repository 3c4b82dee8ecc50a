package ports

import (
	"context"
	"drone-flight-planner/internal/domain"
)

// Port: a boundary for retrieving Order entities from a data source.
type OrderRepository interface {
	// Retrieve every order due on date (YYYY-MM-DD), items included.
	ListOrders(ctx context.Context, date string) ([]*domain.Order, error)
}
