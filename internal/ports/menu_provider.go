package ports

import (
	"context"
	"drone-flight-planner/internal/domain"
)

// Source of the participating shops and their menus.
type MenuProvider interface {
	GetMenus(ctx context.Context) ([]domain.Shop, error)
}
