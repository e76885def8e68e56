package orderbookv1

// DepthEntry is one aggregated (price, total quantity) row, marshalled as a
// two-element JSON array for wire compatibility with Binance-style feeds.
type DepthEntry [2]uint64

// Price returns the price component of the entry.
func (e DepthEntry) Price() uint64 { return e[0] }

// Qty returns the aggregate quantity component of the entry.
func (e DepthEntry) Qty() uint64 { return e[1] }

// Depth is an immutable aggregated view of the book: one entry per occupied
// price level, bids sorted best (highest) first, asks sorted best (lowest)
// first. LastUpdateID carries the book's order counter at snapshot time as a
// decimal string; it never decreases between snapshots, so consumers can use
// it to discard stale frames.
//
// Field names and order are part of the wire contract: bids, asks,
// lastUpdateId.
type Depth struct {
	Bids         []DepthEntry `json:"bids"`
	Asks         []DepthEntry `json:"asks"`
	LastUpdateID string       `json:"lastUpdateId"`
}
