package dto

// Request/response bodies keep the field names the web client already
// sends to the edge functions (producto_id, cantidad, precio, ordenId).

type CreateOrderRequest struct {
	Total float64 `json:"total"`
}

type CreateOrderResponse struct {
	OrderID string `json:"orderID"`
}

type ConfirmItem struct {
	ProductID string  `json:"producto_id"`
	Quantity  int     `json:"cantidad"`
	Price     float64 `json:"precio"`
}

type ConfirmPaymentRequest struct {
	OrderID string        `json:"orderID"`
	Items   []ConfirmItem `json:"items"`
	Total   float64       `json:"total"`
}

type ConfirmPaymentResponse struct {
	Success bool   `json:"success"`
	OrdenID string `json:"ordenId"`
}

type AddToCartRequest struct {
	ProductID string `json:"producto_id"`
	Quantity  int    `json:"cantidad"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
