package dto

type OrderResponse struct {
	OrderNo   string   `json:"order_no"`
	Customer  string   `json:"customer"`
	DeliverTo string   `json:"deliver_to"`
	Items     []string `json:"items"`
}

type ListOrdersResponse struct {
	Date   string          `json:"date"`
	Orders []OrderResponse `json:"orders"`
}
