package domain

import (
	"math"
	"testing"
)

func TestOrderValuate(t *testing.T) {
	shopA := Position{Lng: 0, Lat: 0}
	shopB := Position{Lng: 0.003, Lat: 0.004}
	delivery := Position{Lng: 0.003, Lat: 0.001}

	order := &Order{
		OrderNo:      "a1b2c3d4",
		PriceInPence: 1000,
		Shops:        []Position{shopA, shopB, shopA},
		Delivery:     delivery,
	}

	if err := order.Valuate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(order.Shops) != 2 {
		t.Fatalf("shops = %d, want 2 after collapsing duplicates", len(order.Shops))
	}
	if order.Shops[0] != shopA || order.Shops[1] != shopB {
		t.Fatalf("shops = %v, want first occurrences kept in order", order.Shops)
	}

	wantDistance := 0.005 + 0.003
	if math.Abs(order.TotalDistance-wantDistance) > 1e-12 {
		t.Fatalf("total distance = %.12f, want %.12f", order.TotalDistance, wantDistance)
	}
	if order.ValueDensity != 125000 {
		t.Fatalf("value density = %d, want 125000", order.ValueDensity)
	}
}

func TestOrderValuateRoundsHalfAwayFromZero(t *testing.T) {
	order := &Order{
		OrderNo:      "half",
		PriceInPence: 5,
		Shops:        []Position{{Lng: 0, Lat: 0}},
		Delivery:     Position{Lng: 2, Lat: 0},
	}
	if err := order.Valuate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ValueDensity != 3 {
		t.Fatalf("value density = %d, want 3 (2.5 rounded away from zero)", order.ValueDensity)
	}
}

func TestOrderValuateZeroDistance(t *testing.T) {
	p := Position{Lng: 0.0006, Lat: 0}
	order := &Order{OrderNo: "zero", PriceInPence: 100, Shops: []Position{p}, Delivery: p}

	if err := order.Valuate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.TotalDistance != 0 {
		t.Fatalf("total distance = %v, want 0", order.TotalDistance)
	}
	if order.ValueDensity != math.MaxInt {
		t.Fatalf("value density = %d, want math.MaxInt", order.ValueDensity)
	}
}

func TestOrderValuateWithoutShops(t *testing.T) {
	order := &Order{OrderNo: "empty", PriceInPence: 100}
	if err := order.Valuate(); err == nil {
		t.Fatal("expected error for order without shops")
	}
}
