package orderbookv1

import (
	"errors"
)

var (
	// ErrNilOrder is returned when a nil order is handed to a level.
	ErrNilOrder = errors.New("order cannot be nil")
	// ErrInvalidPrice is returned when a price is zero.
	ErrInvalidPrice = errors.New("price must be positive")
	// ErrInvalidQty is returned when a quantity is zero.
	ErrInvalidQty = errors.New("qty must be positive")
	// ErrInvalidUserID is returned when a user id is zero.
	ErrInvalidUserID = errors.New("user id must be positive")
	// ErrInvalidSide is returned when a side is neither Buy nor Sell.
	ErrInvalidSide = errors.New("side must be Buy or Sell")
	// ErrOrderNotFound is returned when an order id is unknown to the book.
	ErrOrderNotFound = errors.New("order not found")
)

// PriceLevel holds every resting order sharing one price on one side,
// ordered by arrival (FIFO). A level must never be left empty inside the
// book: the owning side prunes it when the last order is removed.
type PriceLevel struct {
	Price    uint64   `json:"price"`
	Orders   []*Order `json:"orders"`
	TotalQty uint64   `json:"totalQty"`
}

// NewPriceLevel creates an empty level at the given price.
func NewPriceLevel(price uint64) *PriceLevel {
	return &PriceLevel{
		Price:  price,
		Orders: make([]*Order, 0),
	}
}

// Append adds an order to the tail of the level and updates the running
// total quantity.
func (l *PriceLevel) Append(order *Order) error {
	if order == nil {
		return ErrNilOrder
	}
	if order.Qty == 0 {
		return ErrInvalidQty
	}
	if order.Price != l.Price {
		return ErrInvalidPrice
	}

	l.Orders = append(l.Orders, order)
	l.TotalQty += order.Qty

	return nil
}

// Remove deletes the order with the given id from the level, preserving the
// arrival order of the rest. The scan is bounded by the orders resting at
// this single price.
func (l *PriceLevel) Remove(orderID uint64) (*Order, error) {
	for i, o := range l.Orders {
		if o.ID == orderID {
			l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
			l.TotalQty -= o.Qty
			return o, nil
		}
	}

	return nil, ErrOrderNotFound
}

// IsEmpty checks if the level has no orders.
func (l *PriceLevel) IsEmpty() bool {
	return len(l.Orders) == 0
}

// OrderCount returns the number of orders at this level.
func (l *PriceLevel) OrderCount() int {
	return len(l.Orders)
}
