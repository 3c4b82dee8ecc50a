package handlers

import (
	"drone-flight-planner/internal/api/dto"
	"drone-flight-planner/internal/domain"
	"drone-flight-planner/internal/platform/obs"
	"drone-flight-planner/internal/ports"
	"drone-flight-planner/internal/services"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

type FlightHandler struct {
	Repo     ports.OrderRepository
	Menus    ports.MenuProvider
	Geocoder ports.Geocoder
	Geometry ports.GeometryProvider

	// Optional outputs used when a request asks to persist the flight.
	Recorder ports.FlightRecorder
	Writer   ports.TraceWriter

	Metrics  *obs.FlightCollector
	Base     domain.Position
	MaxMoves int
}

// Plan simulates the drone's flight for one day's orders and reports the outcome.
// With persist set, the deliveries, flight path and trace file are written too.
func (h *FlightHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.FlightRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	date := strings.TrimSpace(req.Date)
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	svcReq := services.PlanFlightRequest{
		Date:     date,
		Base:     h.Base,
		MaxMoves: h.MaxMoves,
	}

	plan, err := services.PlanFlight(r.Context(), svcReq, h.Repo, h.Menus, h.Geocoder, h.Geometry)
	if err != nil {
		log.Printf("plan flight failed: date=%s err=%v", date, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	h.Metrics.ObserveFlight(plan.Flight.State.String(), plan.Flight.Moves(), len(plan.Deliveries))

	tracePath := ""
	if req.Persist {
		tracePath, err = services.PublishFlight(r.Context(), plan, h.Recorder, h.Writer)
		if err != nil {
			log.Printf("publish flight failed: date=%s err=%v", date, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	res := dto.FlightResponse{
		Date:       plan.Date,
		State:      plan.Flight.State.String(),
		Moves:      plan.Flight.Moves(),
		MaxMoves:   plan.Flight.MaxMoves,
		OrderCount: len(plan.Orders),
		Deliveries: make([]dto.DeliveryResponse, 0, len(plan.Deliveries)),
		EventCount: len(plan.Events),
		Persisted:  req.Persist,
		TracePath:  tracePath,
	}
	for _, d := range plan.Deliveries {
		res.Deliveries = append(res.Deliveries, dto.DeliveryResponse{
			OrderNo:     d.OrderNo,
			DeliveredTo: d.DeliverTo,
			CostInPence: d.PriceInPence,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
