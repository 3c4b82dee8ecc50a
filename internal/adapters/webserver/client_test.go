package webserver

import (
	"context"
	"drone-flight-planner/internal/adapters/memory"
	"drone-flight-planner/internal/domain"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const menusJSON = `[
  {"name": "Civerinos Slice", "location": "maps.soon.bike",
   "menu": [{"item": "Margherita", "pence": 1000}, {"item": "Calzone", "pence": 1400}]},
  {"name": "Sora Lella Vegan Restaurant", "location": "pest.round.peanut",
   "menu": [{"item": "Meatball Sub", "pence": 950}]}
]`

const zonesJSON = `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {"name": "George Square Area"},
   "geometry": {"type": "Polygon", "coordinates": [[
     [-3.190578, 55.943828], [-3.190119, 55.943695], [-3.189957, 55.943828], [-3.190578, 55.943828]
   ]]}}
]}`

const landmarksJSON = `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {"name": "David Hume"},
   "geometry": {"type": "Point", "coordinates": [-3.1892, 55.9442]}},
  {"type": "Feature", "properties": {"name": "Greyfriars"},
   "geometry": {"type": "Point", "coordinates": [-3.1915, 55.9465]}}
]}`

func newTestServer(t *testing.T, wordHits *atomic.Int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/menus/menus.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(menusJSON))
	})
	mux.HandleFunc("/buildings/no-fly-zones.geojson", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(zonesJSON))
	})
	mux.HandleFunc("/buildings/landmarks.geojson", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(landmarksJSON))
	})
	mux.HandleFunc("/words/maps/soon/bike/details.json", func(w http.ResponseWriter, r *http.Request) {
		wordHits.Add(1)
		w.Write([]byte(`{"country": "GB", "coordinates": {"lng": -3.1912, "lat": 55.9456}}`))
	})
	mux.HandleFunc("/words/pest/round/peanut/details.json", func(w http.ResponseWriter, r *http.Request) {
		wordHits.Add(1)
		w.Write([]byte(`{"coordinates": {"lng": -3.1865, "lat": 55.9446}}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientGetMenus(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)

	c, err := NewClient(srv.URL, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	shops, err := c.GetMenus(context.Background())
	if err != nil {
		t.Fatalf("GetMenus: %v", err)
	}
	if len(shops) != 2 {
		t.Fatalf("shops = %d, want 2", len(shops))
	}
	if shops[0].Location != "maps.soon.bike" || len(shops[0].Items) != 2 {
		t.Fatalf("shop 0 = %+v", shops[0])
	}
	if shops[0].Items[1] != (domain.MenuItem{Name: "Calzone", Pence: 1400}) {
		t.Fatalf("item = %+v, want Calzone 1400", shops[0].Items[1])
	}
}

func TestClientLocate(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	c, _ := NewClient(srv.URL+"/", nil)

	got, err := c.Locate(context.Background(), "maps.soon.bike")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != (domain.Position{Lng: -3.1912, Lat: 55.9456}) {
		t.Fatalf("position = %v", got)
	}

	for _, bad := range []string{"maps.soon", "a..c", "one.two.three.four"} {
		if _, err := c.Locate(context.Background(), bad); err == nil {
			t.Fatalf("Locate(%q): expected error", bad)
		}
	}
}

func TestClientLocateNotFound(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	c, _ := NewClient(srv.URL, nil)

	if _, err := c.Locate(context.Background(), "no.such.place"); err == nil {
		t.Fatal("expected error for a 404")
	}
}

func TestClientLocateManyUsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)

	cache := memory.NewWordCache()
	c, _ := NewClient(srv.URL, cache)
	ctx := context.Background()
	words := []string{"maps.soon.bike", "pest.round.peanut", "maps.soon.bike"}

	first, err := c.LocateMany(ctx, words)
	if err != nil {
		t.Fatalf("LocateMany: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("results = %d, want 2", len(first))
	}
	if hits.Load() != 2 {
		t.Fatalf("server hits = %d, want 2", hits.Load())
	}

	second, err := c.LocateMany(ctx, words)
	if err != nil {
		t.Fatalf("LocateMany (cached): %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("server hits = %d, want cache to serve the second call", hits.Load())
	}
	if second["pest.round.peanut"] != first["pest.round.peanut"] {
		t.Fatalf("cached position = %v, want %v", second["pest.round.peanut"], first["pest.round.peanut"])
	}
}

func TestClientGeometry(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	c, _ := NewClient(srv.URL, nil)
	ctx := context.Background()

	zones, err := c.NoFlyZones(ctx)
	if err != nil {
		t.Fatalf("NoFlyZones: %v", err)
	}
	if len(zones) != 1 {
		t.Fatalf("zones = %d, want 1", len(zones))
	}
	if zones[0].Name != "George Square Area" {
		t.Fatalf("zone name = %q", zones[0].Name)
	}
	if len(zones[0].Vertices) != 3 {
		t.Fatalf("vertices = %d, want closing vertex dropped (3)", len(zones[0].Vertices))
	}

	landmarks, err := c.Landmarks(ctx)
	if err != nil {
		t.Fatalf("Landmarks: %v", err)
	}
	want := []domain.Position{{Lng: -3.1892, Lat: 55.9442}, {Lng: -3.1915, Lat: 55.9465}}
	if len(landmarks) != len(want) || landmarks[0] != want[0] || landmarks[1] != want[1] {
		t.Fatalf("landmarks = %v, want %v", landmarks, want)
	}
}

func TestClientLocateManyKeepsCallerLabels(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	c, _ := NewClient(srv.URL, nil)

	got, err := c.LocateMany(context.Background(), []string{"maps.soon.bike ", "maps.soon.bike"})
	if err != nil {
		t.Fatalf("LocateMany: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("server hits = %d, want 1", hits.Load())
	}
	padded, ok := got["maps.soon.bike "]
	if !ok {
		t.Fatalf("results = %v, want the padded label as a key", got)
	}
	if padded != got["maps.soon.bike"] {
		t.Fatalf("padded label = %v, want %v", padded, got["maps.soon.bike"])
	}
}

func TestClientNoFlyZonesRejectsDegenerateRing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {"name": "sliver"},
   "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 1], [1, 1], [0, 0]]]}}
]}`))
	}))
	t.Cleanup(srv.Close)
	c, _ := NewClient(srv.URL, nil)

	zones, err := c.NoFlyZones(context.Background())
	if err == nil {
		t.Fatalf("zones = %v, want an error for a ring with two distinct vertices", zones)
	}
}

func TestNewClientRejectsEmptyURL(t *testing.T) {
	if _, err := NewClient("  ", nil); err == nil {
		t.Fatal("expected error for empty base url")
	}
}
