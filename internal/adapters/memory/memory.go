package memory

import (
	"context"
	"drone-flight-planner/internal/domain"
	"fmt"
	"slices"
	"sync"
)

// OrderStore serves orders from memory, keyed by delivery date.
// Every call returns fresh copies so planners can mutate them freely.
type OrderStore struct {
	byDate map[string][]domain.Order
}

func NewOrderStore(orders []domain.Order) *OrderStore {
	m := make(map[string][]domain.Order)
	for _, o := range orders {
		m[o.DeliveryDate] = append(m[o.DeliveryDate], o)
	}
	return &OrderStore{byDate: m}
}

func (s *OrderStore) ListOrders(ctx context.Context, date string) ([]*domain.Order, error) {
	src := s.byDate[date]
	out := make([]*domain.Order, 0, len(src))
	for _, o := range src {
		c := o
		c.Items = slices.Clone(o.Items)
		c.ShopLocations = slices.Clone(o.ShopLocations)
		c.Shops = slices.Clone(o.Shops)
		out = append(out, &c)
	}
	return out, nil
}

type MenuSource struct {
	Shops []domain.Shop
}

func (m MenuSource) GetMenus(ctx context.Context) ([]domain.Shop, error) {
	return slices.Clone(m.Shops), nil
}

// Gazetteer resolves labels from a fixed table and counts lookups.
type Gazetteer struct {
	mu      sync.Mutex
	places  map[string]domain.Position
	lookups int
}

func NewGazetteer(places map[string]domain.Position) *Gazetteer {
	return &Gazetteer{places: places}
}

func (g *Gazetteer) Locate(ctx context.Context, word string) (domain.Position, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.lookups++
	p, ok := g.places[word]
	if !ok {
		return domain.Position{}, fmt.Errorf("unknown location %q", word)
	}
	return p, nil
}

func (g *Gazetteer) Lookups() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lookups
}

type Geometry struct {
	Zones       []domain.NoFlyZone
	LandmarkSet []domain.Position
}

func (g Geometry) NoFlyZones(ctx context.Context) ([]domain.NoFlyZone, error) {
	return slices.Clone(g.Zones), nil
}

func (g Geometry) Landmarks(ctx context.Context) ([]domain.Position, error) {
	return slices.Clone(g.LandmarkSet), nil
}

// FlightLog keeps whatever was recorded, replacing it on every save
// the way the database tables are recreated per run.
type FlightLog struct {
	mu         sync.Mutex
	Deliveries []domain.DeliveryRecord
	Events     []domain.FlightEvent
}

func (l *FlightLog) SaveDeliveries(ctx context.Context, records []domain.DeliveryRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Deliveries = slices.Clone(records)
	return nil
}

func (l *FlightLog) SaveFlightPath(ctx context.Context, events []domain.FlightEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Events = slices.Clone(events)
	return nil
}

// WordCache is a map-backed ports.WordCache.
type WordCache struct {
	mu sync.Mutex
	m  map[string]domain.Position
}

func NewWordCache() *WordCache {
	return &WordCache{m: make(map[string]domain.Position)}
}

func (c *WordCache) GetMany(ctx context.Context, words []string) (map[string]domain.Position, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]domain.Position)
	for _, w := range words {
		if p, ok := c.m[w]; ok {
			out[w] = p
		}
	}
	return out, nil
}

func (c *WordCache) PutMany(ctx context.Context, results map[string]domain.Position) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for w, p := range results {
		c.m[w] = p
	}
	return nil
}
