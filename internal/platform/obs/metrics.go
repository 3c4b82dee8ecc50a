package obs

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FlightCollector bundles the Prometheus metrics describing planned flights.
type FlightCollector struct {
	gatherer prometheus.Gatherer

	FlightsPlanned      *prometheus.CounterVec
	DeliveriesConfirmed prometheus.Counter
	FlightMoves         prometheus.Histogram
}

// NewFlightCollector registers the flight metrics against reg, defaulting to
// the global Prometheus registry when nil.
func NewFlightCollector(reg prometheus.Registerer) (*FlightCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	planned := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flights_planned_total",
		Help: "Total number of simulated flights, labeled by terminal state.",
	}, []string{"state"})
	if err := reg.Register(planned); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("collector flights_planned_total already registered with incompatible type")
		}
		planned = existing
	}

	delivered, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deliveries_confirmed_total",
		Help: "Total number of orders confirmed delivered.",
	}), "deliveries_confirmed_total")
	if err != nil {
		return nil, err
	}

	moves, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "flight_moves",
		Help:    "Number of moves made per flight.",
		Buckets: []float64{50, 100, 250, 500, 750, 1000, 1250, 1500},
	}), "flight_moves")
	if err != nil {
		return nil, err
	}

	return &FlightCollector{
		gatherer:            gatherer,
		FlightsPlanned:      planned,
		DeliveriesConfirmed: delivered,
		FlightMoves:         moves,
	}, nil
}

// ObserveFlight records one simulated flight. Safe on a nil collector.
func (c *FlightCollector) ObserveFlight(state string, moves, deliveries int) {
	if c == nil {
		return
	}
	if c.FlightsPlanned != nil {
		c.FlightsPlanned.WithLabelValues(state).Inc()
	}
	if c.DeliveriesConfirmed != nil {
		c.DeliveriesConfirmed.Add(float64(deliveries))
	}
	if c.FlightMoves != nil {
		c.FlightMoves.Observe(float64(moves))
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *FlightCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
