package services

import (
	"drone-flight-planner/internal/domain"
	"errors"
	"fmt"
	"math"
)

// Number of 10-degree rotations tried before giving up; one full turn.
const maxDeflections = 36

var ErrDeflectionExhausted = errors.New("no heading clears the no-fly zones")

// SelectHeading returns the quantized heading from current toward target.
//
// The raw bearing is rounded to the nearest multiple of 10 degrees. If the
// direct leg to target crosses a no-fly zone, the heading is rotated
// anticlockwise in 10-degree increments until a single step along it is clear.
// This is a cheap local deflection, not an obstacle-avoiding path search.
func SelectHeading(zones *domain.ZoneIndex, current, target domain.Position) (int, error) {
	if current == target {
		return domain.HoverHeading, nil
	}

	heading := QuantizeBearing(Bearing(current, target))

	candidate := target
	for attempt := 0; zones.Crosses(current, candidate); attempt++ {
		if attempt == maxDeflections {
			return 0, fmt.Errorf("select heading: from %v toward %v: %w", current, target, ErrDeflectionExhausted)
		}

		heading = (heading + 10) % 360

		next, err := current.Move(heading)
		if err != nil {
			return 0, fmt.Errorf("select heading: %w", err)
		}
		candidate = next
	}

	return heading, nil
}

// Bearing returns the direction from current to target in degrees,
// anticlockwise from east, in [0,360).
func Bearing(current, target domain.Position) float64 {
	deg := math.Atan2(target.Lat-current.Lat, target.Lng-current.Lng) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// QuantizeBearing rounds a bearing to the nearest multiple of 10, ties up,
// and folds 360 back to 0.
func QuantizeBearing(deg float64) int {
	heading := int(math.Floor(deg/10+0.5)) * 10
	return ((heading % 360) + 360) % 360
}
