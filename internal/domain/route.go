package domain

type WaypointKind int

const (
	WaypointBase WaypointKind = iota
	WaypointShop
	WaypointDelivery
	WaypointLandmark
)

func (k WaypointKind) String() string {
	switch k {
	case WaypointBase:
		return "base"
	case WaypointShop:
		return "shop"
	case WaypointDelivery:
		return "delivery"
	case WaypointLandmark:
		return "landmark"
	default:
		return "unknown"
	}
}

// Represents a single stop in the planned flight.
// Shop and delivery waypoints appear twice in a row: the repeat is where the
// drone hovers to pick up or hand over. OrderNo is empty for base and landmarks.
type Waypoint struct {
	Position Position
	Kind     WaypointKind
	OrderNo  string
}
