package dto

type FlightRequest struct {
	Date    string `json:"date"`
	Persist bool   `json:"persist"`
}

type DeliveryResponse struct {
	OrderNo     string `json:"order_no"`
	DeliveredTo string `json:"delivered_to"`
	CostInPence int    `json:"cost_in_pence"`
}

type FlightResponse struct {
	Date       string             `json:"date"`
	State      string             `json:"state"`
	Moves      int                `json:"moves"`
	MaxMoves   int                `json:"max_moves"`
	OrderCount int                `json:"order_count"`
	Deliveries []DeliveryResponse `json:"deliveries"`
	EventCount int                `json:"event_count"`
	Persisted  bool               `json:"persisted"`
	TracePath  string             `json:"trace_path,omitempty"`
}
