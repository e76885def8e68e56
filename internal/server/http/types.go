package http

import (
	orderbookv1 "github.com/subhdotsol/CEX-superdevs/internal/domain/orderbook/v1"
)

// createOrderRequest is the POST /order body. Quantities are unsigned on the
// wire, so negative inputs fail JSON decoding and surface as a 400.
type createOrderRequest struct {
	Price  uint64           `json:"price"`
	Qty    uint64           `json:"qty"`
	UserID uint64           `json:"user_id"`
	Side   orderbookv1.Side `json:"side"`
}

// createOrderResponse carries the assigned order id as a decimal string to
// avoid precision loss in numeric-unsafe clients.
type createOrderResponse struct {
	OrderID string `json:"order_id"`
}

// cancelOrderRequest is the DELETE /order body; the id is a decimal string.
type cancelOrderRequest struct {
	OrderID string `json:"order_id"`
}

// cancelOrderResponse reports fill totals for the cancelled order. The book
// never matches, so both values are always zero.
type cancelOrderResponse struct {
	FilledQty    uint64 `json:"filled_qty"`
	AveragePrice uint64 `json:"average_price"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
