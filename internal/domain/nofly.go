package domain

// NoFlyZone is a closed polygonal ring the drone's path must not cross.
// The ring is implicitly closed: the last vertex connects back to the first.
type NoFlyZone struct {
	Name     string
	Vertices []Position
}

// Segment is a straight boundary edge between two positions.
type Segment struct {
	A Position
	B Position
}

// Segments returns the boundary edges of the zone, closing last-to-first.
func (z NoFlyZone) Segments() []Segment {
	n := len(z.Vertices)
	if n < 2 {
		return nil
	}

	out := make([]Segment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Segment{A: z.Vertices[i], B: z.Vertices[(i+1)%n]})
	}
	return out
}

// ZoneIndex is the flattened boundary segment set of every no-fly zone.
// It is built once per run and is read-only afterwards.
type ZoneIndex struct {
	segments []Segment
}

func NewZoneIndex(zones []NoFlyZone) *ZoneIndex {
	ix := &ZoneIndex{}
	for _, z := range zones {
		ix.segments = append(ix.segments, z.Segments()...)
	}
	return ix
}

func (ix *ZoneIndex) Segments() []Segment {
	if ix == nil {
		return nil
	}
	return ix.segments
}

// Crosses reports whether the straight leg p1->p2 intersects any zone boundary.
//
// A zero-length leg never crosses. Touching a boundary or running along it
// counts as crossing.
func (ix *ZoneIndex) Crosses(p1, p2 Position) bool {
	if ix == nil || p1 == p2 {
		return false
	}

	leg := Segment{A: p1, B: p2}
	for _, s := range ix.segments {
		if leg.Intersects(s) {
			return true
		}
	}
	return false
}

// Intersects reports whether two closed segments share at least one point.
func (s Segment) Intersects(o Segment) bool {
	d1 := orientation(o.A, o.B, s.A)
	d2 := orientation(o.A, o.B, s.B)
	d3 := orientation(s.A, s.B, o.A)
	d4 := orientation(s.A, s.B, o.B)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear or touching cases.
	if d1 == 0 && onSegment(o.A, o.B, s.A) {
		return true
	}
	if d2 == 0 && onSegment(o.A, o.B, s.B) {
		return true
	}
	if d3 == 0 && onSegment(s.A, s.B, o.A) {
		return true
	}
	if d4 == 0 && onSegment(s.A, s.B, o.B) {
		return true
	}

	return false
}

// orientation is the cross product of (b-a) and (c-a).
func orientation(a, b, c Position) float64 {
	return (b.Lng-a.Lng)*(c.Lat-a.Lat) - (b.Lat-a.Lat)*(c.Lng-a.Lng)
}

// onSegment assumes c is collinear with a-b and checks it lies within their bounding box.
func onSegment(a, b, c Position) bool {
	return min(a.Lng, b.Lng) <= c.Lng && c.Lng <= max(a.Lng, b.Lng) &&
		min(a.Lat, b.Lat) <= c.Lat && c.Lat <= max(a.Lat, b.Lat)
}
