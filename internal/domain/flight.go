package domain

import (
	"errors"
	"fmt"
)

// Maximum number of moves the drone can make in one flight.
const MaxMoves = 1500

// Order tag used for flight events that are not part of a completed delivery.
const BackHomeTag = "BACKHOME"

var ErrBudgetFull = errors.New("move budget is full")

type FlightState int

const (
	FlightTraveling FlightState = iota
	FlightBudgetExceeded
	FlightDone
)

func (s FlightState) String() string {
	switch s {
	case FlightTraveling:
		return "traveling"
	case FlightBudgetExceeded:
		return "budget_exceeded"
	case FlightDone:
		return "done"
	default:
		return "unknown"
	}
}

// Step is one simulated move or hover.
// Target is the waypoint the drone was heading for when it took the step;
// a hover on a delivery waypoint is the proof that the delivery happened.
type Step struct {
	From    Position
	To      Position
	Heading int
	Hover   bool
	Target  Waypoint
}

// Flight aggregate recording every step taken from the start position,
// bounded by a move budget.
type Flight struct {
	Start    Position
	MaxMoves int
	State    FlightState
	Steps    []Step
}

func NewFlight(start Position, maxMoves int) *Flight {
	if maxMoves <= 0 {
		maxMoves = MaxMoves
	}
	return &Flight{
		Start:    start,
		MaxMoves: maxMoves,
		State:    FlightTraveling,
	}
}

// Record a single step.
func (f *Flight) Record(step Step) error {
	if len(f.Steps) >= f.MaxMoves {
		return fmt.Errorf("record step: %d moves made (budget=%d): %w", len(f.Steps), f.MaxMoves, ErrBudgetFull)
	}
	f.Steps = append(f.Steps, step)
	return nil
}

// Moves made so far, hovers included.
func (f *Flight) Moves() int { return len(f.Steps) }

// Position returns where the drone currently is.
func (f *Flight) Position() Position {
	if len(f.Steps) == 0 {
		return f.Start
	}
	return f.Steps[len(f.Steps)-1].To
}

// Trace returns every position visited, starting with the start position.
func (f *Flight) Trace() []Position {
	out := make([]Position, 0, len(f.Steps)+1)
	out = append(out, f.Start)
	for _, s := range f.Steps {
		out = append(out, s.To)
	}
	return out
}

// FlightEvent is one leg of the flight as persisted to the flightpath table.
type FlightEvent struct {
	OrderTag string
	From     Position
	To       Position
	Heading  int
}
