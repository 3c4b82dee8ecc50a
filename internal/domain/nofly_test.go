package domain

import "testing"

func square(name string, minLng, minLat, maxLng, maxLat float64) NoFlyZone {
	return NoFlyZone{
		Name: name,
		Vertices: []Position{
			{Lng: minLng, Lat: minLat},
			{Lng: maxLng, Lat: minLat},
			{Lng: maxLng, Lat: maxLat},
			{Lng: minLng, Lat: maxLat},
		},
	}
}

func TestNoFlyZoneSegmentsCloseRing(t *testing.T) {
	z := square("box", 0, 0, 1, 1)
	segs := z.Segments()
	if len(segs) != 4 {
		t.Fatalf("segments = %d, want 4", len(segs))
	}
	last := segs[len(segs)-1]
	if last.A != z.Vertices[3] || last.B != z.Vertices[0] {
		t.Fatalf("closing segment = %v, want %v -> %v", last, z.Vertices[3], z.Vertices[0])
	}
}

func TestZoneIndexCrosses(t *testing.T) {
	ix := NewZoneIndex([]NoFlyZone{square("box", 1, 1, 2, 2)})

	if got := len(ix.Segments()); got != 4 {
		t.Fatalf("segments = %d, want 4", got)
	}

	tests := []struct {
		name   string
		p1, p2 Position
		want   bool
	}{
		{"through the box", Position{Lng: 0, Lat: 1.5}, Position{Lng: 3, Lat: 1.5}, true},
		{"into the box", Position{Lng: 0, Lat: 1.5}, Position{Lng: 1.5, Lat: 1.5}, true},
		{"passes below", Position{Lng: 0, Lat: 0.5}, Position{Lng: 3, Lat: 0.5}, false},
		{"touches a corner", Position{Lng: 0, Lat: 0}, Position{Lng: 1, Lat: 1}, true},
		{"runs along an edge", Position{Lng: 0, Lat: 1}, Position{Lng: 3, Lat: 1}, true},
		{"collinear but short of the edge", Position{Lng: -2, Lat: 1}, Position{Lng: 0.5, Lat: 1}, false},
		{"entirely inside", Position{Lng: 1.2, Lat: 1.2}, Position{Lng: 1.8, Lat: 1.8}, false},
	}

	for _, tt := range tests {
		if got := ix.Crosses(tt.p1, tt.p2); got != tt.want {
			t.Errorf("%s: Crosses = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestZoneIndexZeroLengthNeverCrosses(t *testing.T) {
	ix := NewZoneIndex([]NoFlyZone{square("box", 1, 1, 2, 2)})

	points := []Position{
		{Lng: 1, Lat: 1},
		{Lng: 1.5, Lat: 1},
		{Lng: 1.5, Lat: 1.5},
		{Lng: 5, Lat: 5},
	}
	for _, p := range points {
		if ix.Crosses(p, p) {
			t.Errorf("Crosses(%v, %v) = true, want false", p, p)
		}
	}
}

func TestNilZoneIndexNeverCrosses(t *testing.T) {
	var ix *ZoneIndex
	if ix.Crosses(Position{}, Position{Lng: 1, Lat: 1}) {
		t.Fatal("nil index reported a crossing")
	}
}
