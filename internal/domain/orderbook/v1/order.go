package orderbookv1

// Order represents a single resting order in the book. All fields are
// immutable after creation: there is no amend and no partial fill.
type Order struct {
	ID     uint64 `json:"order_id"`
	UserID uint64 `json:"user_id"`
	Price  uint64 `json:"price"`
	Qty    uint64 `json:"qty"`
	Side   Side   `json:"side"`
}

// Location records which price level an order rests at. The book keeps one
// Location per live order id so a cancel can jump straight to the right
// level instead of scanning both sides.
type Location struct {
	Price uint64
	Side  Side
}
