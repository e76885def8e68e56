package orderbookv1

// Side tags an order as resting on the bid or the ask book.
type Side string

const (
	// SideBuy is a bid order.
	SideBuy Side = "Buy"
	// SideSell is an ask order.
	SideSell Side = "Sell"
)

// IsValid checks that the side is one of the two known variants.
func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}
