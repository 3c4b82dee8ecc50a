package services

import (
	"drone-flight-planner/internal/domain"
)

// ConfirmDeliveries marks every order whose delivery point the drone hovered
// at and returns the delivery records in sequence order.
func ConfirmDeliveries(flight *domain.Flight, orders []*domain.Order) []domain.DeliveryRecord {
	hovered := make(map[string]domain.Position)
	for _, s := range flight.Steps {
		if s.Hover && s.Target.Kind == domain.WaypointDelivery {
			hovered[s.Target.OrderNo] = s.Target.Position
		}
	}

	records := make([]domain.DeliveryRecord, 0, len(hovered))
	for _, o := range orders {
		at, ok := hovered[o.OrderNo]
		o.Delivered = ok && at == o.Delivery
		if !o.Delivered {
			continue
		}

		records = append(records, domain.DeliveryRecord{
			OrderNo:      o.OrderNo,
			DeliverTo:    o.DeliverTo,
			PriceInPence: o.PriceInPence,
		})
	}

	return records
}

// TagFlightEvents turns every step of the flight into a flight event.
//
// Legs are tagged with the delivered order currently being worked on; the
// hover that hands that order over is the last leg tagged with it. Once every
// delivered order is handed over the remaining legs are tagged BACKHOME.
// Legs flown for an undelivered order carry the next delivered order's tag.
func TagFlightEvents(flight *domain.Flight, orders []*domain.Order) []domain.FlightEvent {
	delivered := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		o.LegDone = false
		if o.Delivered {
			delivered = append(delivered, o)
		}
	}

	events := make([]domain.FlightEvent, 0, len(flight.Steps))
	cursor := 0
	for _, s := range flight.Steps {
		tag := domain.BackHomeTag
		if cursor < len(delivered) {
			current := delivered[cursor]
			tag = current.OrderNo

			if s.Hover && s.Target.Kind == domain.WaypointDelivery && s.Target.OrderNo == current.OrderNo {
				current.LegDone = true
				cursor++
			}
		}

		events = append(events, domain.FlightEvent{
			OrderTag: tag,
			From:     s.From,
			To:       s.To,
			Heading:  s.Heading,
		})
	}

	return events
}
