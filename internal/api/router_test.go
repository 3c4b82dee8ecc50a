package api

import (
	"context"
	"drone-flight-planner/internal/adapters/memory"
	"drone-flight-planner/internal/api/dto"
	"drone-flight-planner/internal/api/handlers"
	"drone-flight-planner/internal/domain"
	"drone-flight-planner/internal/platform/obs"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

type testEnv struct {
	router http.Handler
	log    *memory.FlightLog
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	repo := memory.NewOrderStore([]domain.Order{
		{OrderNo: "1ad5f1ff", DeliveryDate: "2022-01-01", Customer: "s2314428", DeliverTo: "drop.one.here", Items: []string{"Margherita"}},
		{OrderNo: "0a2b7c9e", DeliveryDate: "2022-01-01", Customer: "s1888866", DeliverTo: "drop.two.here", Items: []string{"Margherita", "Calzone"}},
	})
	menus := memory.MenuSource{Shops: []domain.Shop{
		{Name: "Civerinos Slice", Location: "shop.one.here", Items: []domain.MenuItem{{Name: "Margherita", Pence: 1000}, {Name: "Calzone", Pence: 1400}}},
	}}
	places := memory.NewGazetteer(map[string]domain.Position{
		"shop.one.here": {Lng: 0.001, Lat: 0},
		"drop.one.here": {Lng: 0, Lat: 0.001},
		"drop.two.here": {Lng: -0.001, Lat: 0},
	})

	metrics, err := obs.NewFlightCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewFlightCollector: %v", err)
	}

	log := &memory.FlightLog{}
	flights := &handlers.FlightHandler{
		Repo:     repo,
		Menus:    menus,
		Geocoder: places,
		Geometry: memory.Geometry{},
		Recorder: log,
		Metrics:  metrics,
	}

	return testEnv{
		router: NewRouter(&handlers.HealthHandler{}, &handlers.OrderHandler{Repo: repo}, flights, metrics.Handler()),
		log:    log,
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}
}

func TestHealthReportsStoreDown(t *testing.T) {
	h := &handlers.HealthHandler{Ping: func(ctx context.Context) error { return errors.New("connection refused") }}
	router := NewRouter(h, &handlers.OrderHandler{}, &handlers.FlightHandler{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestListOrders(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?date=2022-01-01", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res dto.ListOrdersResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(res.Orders))
	}

	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?date=tomorrow", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date status = %d, want 400", rec.Code)
	}
}

func TestPlanFlight(t *testing.T) {
	env := newTestEnv(t)

	body := strings.NewReader(`{"date": "2022-01-01", "persist": true}`)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/flights", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res dto.FlightResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.State != "done" {
		t.Fatalf("state = %q, want done", res.State)
	}
	if len(res.Deliveries) != 2 {
		t.Fatalf("deliveries = %d, want 2", len(res.Deliveries))
	}
	if res.EventCount != res.Moves {
		t.Fatalf("events = %d, moves = %d, want equal", res.EventCount, res.Moves)
	}
	if len(env.log.Deliveries) != 2 || len(env.log.Events) != res.EventCount {
		t.Fatalf("persisted %d deliveries / %d events", len(env.log.Deliveries), len(env.log.Events))
	}

	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `flights_planned_total{state="done"} 1`) {
		t.Fatalf("metrics missing planned flight:\n%s", rec.Body.String())
	}
}

func TestPlanFlightRejectsBadRequests(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"invalid json", http.MethodPost, `{"date":`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, `{"date": "2022-01-01", "drones": 2}`, http.StatusBadRequest},
		{"bad date", http.MethodPost, `{"date": "01-01-2022"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(tt.method, "/flights", strings.NewReader(tt.body)))
		if rec.Code != tt.want {
			t.Fatalf("%s: status = %d, want %d", tt.name, rec.Code, tt.want)
		}
	}
}
