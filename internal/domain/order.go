package domain

import (
	"errors"
	"fmt"
	"math"
)

// Represents a single customer order handled by the system.
// An Order is read once from the order source; its positions and price are
// resolved from the menus and the geocoder, and its derived fields and
// completion flags are filled in during planning and simulation.
type Order struct {
	OrderNo      string
	DeliveryDate string
	Customer     string
	DeliverTo    string
	Items        []string

	PriceInPence  int
	ShopLocations []string
	Shops         []Position
	Delivery      Position

	TotalDistance float64
	ValueDensity  int

	Delivered bool
	LegDone   bool
}

// Valuate collapses duplicate shops and computes the order's route distance
// and value density.
//
// Value density is price per degree of travel, rounded half away from zero.
// A zero-length route saturates to math.MaxInt so the order ranks first.
func (o *Order) Valuate() error {
	if o == nil {
		return errors.New("valuate order: order is nil")
	}
	if len(o.Shops) == 0 {
		return fmt.Errorf("valuate order: order %s has no shops", o.OrderNo)
	}

	o.Shops = distinctPositions(o.Shops)

	distance := 0.0
	for i := 0; i < len(o.Shops)-1; i++ {
		distance += o.Shops[i].DistanceTo(o.Shops[i+1])
	}
	distance += o.Shops[len(o.Shops)-1].DistanceTo(o.Delivery)
	o.TotalDistance = distance

	if distance == 0 {
		o.ValueDensity = math.MaxInt
		return nil
	}

	density := math.Round(float64(o.PriceInPence) / distance)
	if density >= math.MaxInt {
		o.ValueDensity = math.MaxInt
		return nil
	}
	o.ValueDensity = int(density)
	return nil
}

// Clone returns a deep copy of the order with its completion flags cleared.
func (o *Order) Clone() *Order {
	c := *o
	c.Items = append([]string(nil), o.Items...)
	c.ShopLocations = append([]string(nil), o.ShopLocations...)
	c.Shops = append([]Position(nil), o.Shops...)
	c.Delivered = false
	c.LegDone = false
	return &c
}

func distinctPositions(in []Position) []Position {
	seen := make(map[Position]struct{}, len(in))
	out := make([]Position, 0, len(in))
	for _, p := range in {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// DeliveryRecord is the persisted proof that an order was delivered.
type DeliveryRecord struct {
	OrderNo      string
	DeliverTo    string
	PriceInPence int
}
