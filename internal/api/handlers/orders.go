package handlers

import (
	"drone-flight-planner/internal/api/dto"
	"drone-flight-planner/internal/ports"
	"log"
	"net/http"
	"strings"
	"time"
)

// OrderHandler exposes read-only order retrieval endpoints.
type OrderHandler struct {
	Repo ports.OrderRepository
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	orders, err := h.Repo.ListOrders(r.Context(), date)
	if err != nil {
		log.Printf("list orders failed: date=%s err=%v", date, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListOrdersResponse{
		Date:   date,
		Orders: make([]dto.OrderResponse, 0, len(orders)),
	}
	for _, o := range orders {
		items := o.Items
		if items == nil {
			items = []string{}
		}
		res.Orders = append(res.Orders, dto.OrderResponse{
			OrderNo:   o.OrderNo,
			Customer:  o.Customer,
			DeliverTo: o.DeliverTo,
			Items:     items,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
