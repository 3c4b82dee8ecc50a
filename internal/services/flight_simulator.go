package services

import (
	"drone-flight-planner/internal/domain"
	"errors"
	"fmt"
	"math"
)

// SimulateFlight walks the waypoints one fixed step at a time.
//
// Before each leg the remaining cost (to the next waypoint, then home) is
// estimated; once that would use up the move budget the remaining waypoints
// are abandoned and the drone flies straight home. A drone that is already
// within one step of its next waypoint hovers instead of moving.
//
// Running out of budget is a terminal state, not an error. The flight also
// stops where it is if the hard move cap is hit before reaching home.
func SimulateFlight(zones *domain.ZoneIndex, waypoints []domain.Waypoint, maxMoves int) (*domain.Flight, error) {
	if len(waypoints) < 2 {
		return nil, errors.New("simulate flight: at least two waypoints are required")
	}

	home := waypoints[len(waypoints)-1]
	flight := domain.NewFlight(waypoints[0].Position, maxMoves)

	for i := 1; i < len(waypoints); i++ {
		next := waypoints[i]
		pos := flight.Position()

		if pos.IsClose(next.Position) {
			hover := domain.Step{
				From:    pos,
				To:      pos,
				Heading: domain.HoverHeading,
				Hover:   true,
				Target:  next,
			}
			if err := flight.Record(hover); err != nil {
				flight.State = domain.FlightBudgetExceeded
				return flight, nil
			}
		}

		estimate := stepsBetween(pos, next.Position) + stepsBetween(next.Position, home.Position)
		if flight.Moves()+estimate >= flight.MaxMoves {
			flight.State = domain.FlightBudgetExceeded
			if err := flyTo(flight, zones, home); err != nil && !errors.Is(err, domain.ErrBudgetFull) {
				return nil, fmt.Errorf("simulate flight: return home from %v: %w", flight.Position(), err)
			}
			return flight, nil
		}

		if err := flyTo(flight, zones, next); err != nil {
			if errors.Is(err, domain.ErrBudgetFull) {
				flight.State = domain.FlightBudgetExceeded
				return flight, nil
			}
			return nil, fmt.Errorf("simulate flight: leg %d to %s %v: %w", i, next.Kind, next.Position, err)
		}
	}

	flight.State = domain.FlightDone
	return flight, nil
}

// flyTo steps toward target until the drone is within one step of it.
func flyTo(flight *domain.Flight, zones *domain.ZoneIndex, target domain.Waypoint) error {
	for pos := flight.Position(); !pos.IsClose(target.Position); pos = flight.Position() {
		heading, err := SelectHeading(zones, pos, target.Position)
		if err != nil {
			return err
		}

		next, err := pos.Move(heading)
		if err != nil {
			return err
		}

		// The quantized step can clip a zone even when the direct leg is clear;
		// deflect from the attempted step instead.
		if zones.Crosses(pos, next) {
			heading, err = SelectHeading(zones, pos, next)
			if err != nil {
				return err
			}
			next, err = pos.Move(heading)
			if err != nil {
				return err
			}
		}

		step := domain.Step{From: pos, To: next, Heading: heading, Target: target}
		if err := flight.Record(step); err != nil {
			return err
		}
	}
	return nil
}

// stepsBetween is the number of whole steps needed to cover the straight distance.
func stepsBetween(a, b domain.Position) int {
	return int(math.Ceil(a.DistanceTo(b) / domain.StepLength))
}
