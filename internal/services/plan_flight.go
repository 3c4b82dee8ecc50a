package services

import (
	"context"
	"drone-flight-planner/internal/domain"
	"drone-flight-planner/internal/platform/obs"
	"drone-flight-planner/internal/ports"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

type PlanFlightRequest struct {
	Date     string
	Base     domain.Position
	MaxMoves int
}

// FlightPlan is the outcome of planning and simulating one day's flight.
// Orders are in flight sequence.
type FlightPlan struct {
	Date       string
	Orders     []*domain.Order
	Waypoints  []domain.Waypoint
	Flight     *domain.Flight
	Deliveries []domain.DeliveryRecord
	Events     []domain.FlightEvent
}

// PlanFlight gathers the day's orders and geometry from the collaborators and
// runs the planner on them. All collaborator calls finish before planning starts.
func PlanFlight(
	ctx context.Context,
	req PlanFlightRequest,
	repo ports.OrderRepository,
	menus ports.MenuProvider,
	geocoder ports.Geocoder,
	geometry ports.GeometryProvider,
) (_ *FlightPlan, err error) {
	defer obs.Time(ctx, "plan.flight")(&err)

	orders, err := repo.ListOrders(ctx, req.Date)
	if err != nil {
		return nil, fmt.Errorf("plan flight: list orders for %s: %w", req.Date, err)
	}

	shops, err := menus.GetMenus(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan flight: get menus: %w", err)
	}
	menu := domain.NewMenu(shops)

	words := make([]string, 0, 3*len(orders))
	for _, o := range orders {
		if strings.TrimSpace(o.DeliverTo) == "" {
			return nil, fmt.Errorf("plan flight: order %s has empty delivery location", o.OrderNo)
		}
		if len(o.Items) == 0 {
			return nil, fmt.Errorf("plan flight: order %s has no items", o.OrderNo)
		}

		price, err := menu.DeliveryCost(o.Items)
		if err != nil {
			return nil, fmt.Errorf("plan flight: order %s: %w", o.OrderNo, err)
		}
		locations, err := menu.ShopLocations(o.Items)
		if err != nil {
			return nil, fmt.Errorf("plan flight: order %s: %w", o.OrderNo, err)
		}

		o.DeliverTo = strings.TrimSpace(o.DeliverTo)
		o.PriceInPence = price
		o.ShopLocations = locations
		words = append(words, locations...)
		words = append(words, o.DeliverTo)
	}

	positions, err := locateAll(ctx, geocoder, words)
	if err != nil {
		return nil, fmt.Errorf("plan flight: %w", err)
	}

	for _, o := range orders {
		o.Shops = make([]domain.Position, 0, len(o.ShopLocations))
		for _, loc := range o.ShopLocations {
			o.Shops = append(o.Shops, positions[loc])
		}
		o.Delivery = positions[o.DeliverTo]
	}

	zones, err := geometry.NoFlyZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan flight: get no-fly zones: %w", err)
	}
	landmarks, err := geometry.Landmarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan flight: get landmarks: %w", err)
	}

	plan, err := BuildFlightPlan(req, orders, zones, landmarks)
	if err != nil {
		return nil, fmt.Errorf("plan flight: %w", err)
	}

	return plan, nil
}

// BuildFlightPlan runs the planner on copies of fully resolved orders, so the
// caller's orders are left untouched. It performs no I/O; identical inputs
// give identical plans.
func BuildFlightPlan(
	req PlanFlightRequest,
	orders []*domain.Order,
	zones []domain.NoFlyZone,
	landmarks []domain.Position,
) (*FlightPlan, error) {
	if len(orders) == 0 {
		flight := domain.NewFlight(req.Base, req.MaxMoves)
		flight.State = domain.FlightDone
		return &FlightPlan{
			Date:       req.Date,
			Orders:     []*domain.Order{},
			Waypoints:  []domain.Waypoint{{Position: req.Base, Kind: domain.WaypointBase}},
			Flight:     flight,
			Deliveries: []domain.DeliveryRecord{},
			Events:     []domain.FlightEvent{},
		}, nil
	}

	orders = cloneOrders(orders)
	if err := ValuateOrders(orders); err != nil {
		return nil, fmt.Errorf("build flight plan: %w", err)
	}
	sequenced := SequenceOrders(orders)

	index := domain.NewZoneIndex(zones)
	waypoints := InsertDetours(BuildWaypoints(req.Base, sequenced), index, landmarks)

	flight, err := SimulateFlight(index, waypoints, req.MaxMoves)
	if err != nil {
		return nil, fmt.Errorf("build flight plan: %w", err)
	}

	deliveries := ConfirmDeliveries(flight, sequenced)
	events := TagFlightEvents(flight, sequenced)

	return &FlightPlan{
		Date:       req.Date,
		Orders:     sequenced,
		Waypoints:  waypoints,
		Flight:     flight,
		Deliveries: deliveries,
		Events:     events,
	}, nil
}

func cloneOrders(orders []*domain.Order) []*domain.Order {
	out := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if o == nil {
			out = append(out, nil)
			continue
		}
		out = append(out, o.Clone())
	}
	return out
}

// locateAll resolves every distinct label, preferring a single batched lookup
// when the geocoder supports it.
func locateAll(ctx context.Context, geocoder ports.Geocoder, words []string) (map[string]domain.Position, error) {
	seen := make(map[string]struct{}, len(words))
	uniq := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		uniq = append(uniq, w)
	}

	var out map[string]domain.Position
	if bg, ok := geocoder.(ports.BatchGeocoder); ok {
		res, err := bg.LocateMany(ctx, uniq)
		if err != nil {
			return nil, fmt.Errorf("locate words: %w", err)
		}
		out = res
	} else {
		out = make(map[string]domain.Position, len(uniq))
		var mu sync.Mutex

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(5)
		for _, w := range uniq {
			w := w
			g.Go(func() error {
				p, err := geocoder.Locate(gctx, w)
				if err != nil {
					return fmt.Errorf("locate %q: %w", w, err)
				}
				mu.Lock()
				out[w] = p
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("locate words: %w", err)
		}
	}

	for _, w := range uniq {
		if _, ok := out[w]; !ok {
			return nil, fmt.Errorf("locate words: missing position for %q", w)
		}
	}
	return out, nil
}
