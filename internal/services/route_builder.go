package services

import (
	"drone-flight-planner/internal/domain"
)

// BuildWaypoints lays out the flight for the sequenced orders.
//
// The flight starts and ends at base. Every shop of an order appears twice in
// a row, followed by the order's delivery point twice; the repeat marks a
// hover to pick up or hand over.
func BuildWaypoints(base domain.Position, orders []*domain.Order) []domain.Waypoint {
	size := 2
	for _, o := range orders {
		size += 2*len(o.Shops) + 2
	}

	waypoints := make([]domain.Waypoint, 0, size)
	waypoints = append(waypoints, domain.Waypoint{Position: base, Kind: domain.WaypointBase})

	for _, o := range orders {
		for _, shop := range o.Shops {
			wp := domain.Waypoint{Position: shop, Kind: domain.WaypointShop, OrderNo: o.OrderNo}
			waypoints = append(waypoints, wp, wp)
		}
		wp := domain.Waypoint{Position: o.Delivery, Kind: domain.WaypointDelivery, OrderNo: o.OrderNo}
		waypoints = append(waypoints, wp, wp)
	}

	waypoints = append(waypoints, domain.Waypoint{Position: base, Kind: domain.WaypointBase})
	return waypoints
}

// InsertDetours returns a copy of waypoints with a landmark spliced into every
// leg that crosses a no-fly zone.
//
// Landmarks are tried in the order given and the first one with both legs
// clear wins; no shortest-detour search is done. A blocked leg with no usable
// landmark is left as is and the simulator's per-step deflection takes over.
func InsertDetours(waypoints []domain.Waypoint, zones *domain.ZoneIndex, landmarks []domain.Position) []domain.Waypoint {
	if len(waypoints) == 0 {
		return nil
	}

	out := make([]domain.Waypoint, 0, len(waypoints))
	for i := 0; i < len(waypoints)-1; i++ {
		from := waypoints[i]
		to := waypoints[i+1]
		out = append(out, from)

		if !zones.Crosses(from.Position, to.Position) {
			continue
		}

		for _, lm := range landmarks {
			if zones.Crosses(from.Position, lm) || zones.Crosses(lm, to.Position) {
				continue
			}
			out = append(out, domain.Waypoint{Position: lm, Kind: domain.WaypointLandmark})
			break
		}
	}

	return append(out, waypoints[len(waypoints)-1])
}
