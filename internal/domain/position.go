package domain

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Planar distance covered by a single move, in degrees.
	StepLength = 0.00015

	// Heading that commands the drone to stay where it is.
	HoverHeading = -999
)

var ErrInvalidHeading = errors.New("heading must be a multiple of 10 in [0,350] or the hover heading")

// Immutable geographic position (longitude, latitude) in decimal degrees.
type Position struct {
	Lng float64
	Lat float64
}

// Planar Euclidean distance in degree space.
// The operating area is small enough that a geodesic distance is not needed.
func (p Position) DistanceTo(o Position) float64 {
	dLng := o.Lng - p.Lng
	dLat := o.Lat - p.Lat
	return math.Sqrt(dLng*dLng + dLat*dLat)
}

// IsClose reports whether o is strictly within one step of p.
func (p Position) IsClose(o Position) bool {
	return p.DistanceTo(o) < StepLength
}

// Move returns the position one step away from p along heading.
// Headings are degrees counter-clockwise from east.
func (p Position) Move(heading int) (Position, error) {
	if heading == HoverHeading {
		return p, nil
	}
	if !ValidHeading(heading) {
		return Position{}, fmt.Errorf("move from %v: heading %d: %w", p, heading, ErrInvalidHeading)
	}

	rad := float64(heading) * math.Pi / 180
	return Position{
		Lng: p.Lng + StepLength*math.Cos(rad),
		Lat: p.Lat + StepLength*math.Sin(rad),
	}, nil
}

// ValidHeading reports whether heading is a quantized movement heading.
// The hover heading is not a movement heading.
func ValidHeading(heading int) bool {
	return heading >= 0 && heading <= 350 && heading%10 == 0
}

func (p Position) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.Lng, p.Lat)
}
