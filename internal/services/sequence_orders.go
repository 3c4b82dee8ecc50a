package services

import (
	"drone-flight-planner/internal/domain"
	"fmt"
	"slices"
)

// ValuateOrders computes route distance and value density for every order.
func ValuateOrders(orders []*domain.Order) error {
	for _, o := range orders {
		if err := o.Valuate(); err != nil {
			return fmt.Errorf("valuate orders: %w", err)
		}
	}
	return nil
}

// CompareValueDensity orders higher value density first.
func CompareValueDensity(a, b *domain.Order) int {
	if a.ValueDensity > b.ValueDensity {
		return -1
	}
	if a.ValueDensity < b.ValueDensity {
		return 1
	}
	return 0
}

// SequenceOrders returns the orders ranked by descending value density.
//
// The sort is stable so orders of equal density keep their input order.
func SequenceOrders(orders []*domain.Order) []*domain.Order {
	out := slices.Clone(orders)
	slices.SortStableFunc(out, CompareValueDensity)
	return out
}
