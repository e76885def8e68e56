package orderbook

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	orderbookv1 "github.com/subhdotsol/CEX-superdevs/internal/domain/orderbook/v1"
)

// Orderbook is the single owner of all resting-order state for one
// instrument. It is safe for concurrent use: reads take the shared lock,
// mutations take the exclusive lock, and nothing inside a critical section
// blocks on I/O. Mutations return the depth snapshot computed under the same
// write lock, so every published update reflects the book immediately after
// exactly that mutation.
type Orderbook struct {
	mu sync.RWMutex

	bidLevels map[uint64]*orderbookv1.PriceLevel // price -> level
	askLevels map[uint64]*orderbookv1.PriceLevel // price -> level

	// orderIndex maps a live order id to its level so cancellation never
	// scans the whole book. It is kept in exact sync with the level maps.
	orderIndex map[uint64]orderbookv1.Location

	// nextOrderID is strictly increasing for the lifetime of the process
	// and never reused, even after cancellation.
	nextOrderID uint64
}

// NewOrderbook creates a new empty order book.
func NewOrderbook() *Orderbook {
	return &Orderbook{
		bidLevels:  make(map[uint64]*orderbookv1.PriceLevel),
		askLevels:  make(map[uint64]*orderbookv1.PriceLevel),
		orderIndex: make(map[uint64]orderbookv1.Location),
	}
}

// CreateOrder appends a new resting order at the tail of its price level,
// creating the level if absent, and returns the assigned order id together
// with the post-insert depth snapshot.
func (ob *Orderbook) CreateOrder(price, qty, userID uint64, side orderbookv1.Side) (uint64, orderbookv1.Depth, error) {
	if price == 0 {
		return 0, orderbookv1.Depth{}, orderbookv1.ErrInvalidPrice
	}
	if qty == 0 {
		return 0, orderbookv1.Depth{}, orderbookv1.ErrInvalidQty
	}
	if userID == 0 {
		return 0, orderbookv1.Depth{}, orderbookv1.ErrInvalidUserID
	}
	if !side.IsValid() {
		return 0, orderbookv1.Depth{}, orderbookv1.ErrInvalidSide
	}

	ob.mu.Lock()
	defer ob.mu.Unlock()

	orderID := ob.nextOrderID
	ob.nextOrderID++

	order := &orderbookv1.Order{
		ID:     orderID,
		UserID: userID,
		Price:  price,
		Qty:    qty,
		Side:   side,
	}

	levels := ob.levelsFor(side)
	level, exists := levels[price]
	if !exists {
		level = orderbookv1.NewPriceLevel(price)
		levels[price] = level
	}

	if err := level.Append(order); err != nil {
		// Inputs were validated above; a failing append means the level
		// and the book disagree about the price key.
		panic(fmt.Sprintf("orderbook: level %d rejected order %d: %v", price, orderID, err))
	}

	ob.orderIndex[orderID] = orderbookv1.Location{Price: price, Side: side}

	return orderID, ob.depthLocked(), nil
}

// CancelOrder removes the order with the given id from the book. Cancelling
// an unknown or already-cancelled id returns ErrOrderNotFound and leaves the
// book untouched. The emptied level is pruned so depth never shows
// zero-quantity rows.
func (ob *Orderbook) CancelOrder(orderID uint64) (*orderbookv1.Order, orderbookv1.Depth, error) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	loc, exists := ob.orderIndex[orderID]
	if !exists {
		return nil, orderbookv1.Depth{}, orderbookv1.ErrOrderNotFound
	}

	levels := ob.levelsFor(loc.Side)
	level, exists := levels[loc.Price]
	if !exists {
		panic(fmt.Sprintf("orderbook: index knows order %d at price %d but the level is gone", orderID, loc.Price))
	}

	order, err := level.Remove(orderID)
	if err != nil {
		panic(fmt.Sprintf("orderbook: index knows order %d at price %d but the level does not: %v", orderID, loc.Price, err))
	}

	if level.IsEmpty() {
		delete(levels, loc.Price)
	}
	delete(ob.orderIndex, orderID)

	return order, ob.depthLocked(), nil
}

// Depth aggregates per-level total quantities into an immutable snapshot.
// It is a pure read and safe to call concurrently with other reads.
func (ob *Orderbook) Depth() orderbookv1.Depth {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	return ob.depthLocked()
}

// OrderCount returns the number of live resting orders.
func (ob *Orderbook) OrderCount() int {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	return len(ob.orderIndex)
}

// depthLocked builds the snapshot. Callers must hold at least the read lock.
func (ob *Orderbook) depthLocked() orderbookv1.Depth {
	bids := make([]orderbookv1.DepthEntry, 0, len(ob.bidLevels))
	for price, level := range ob.bidLevels {
		bids = append(bids, orderbookv1.DepthEntry{price, level.TotalQty})
	}

	asks := make([]orderbookv1.DepthEntry, 0, len(ob.askLevels))
	for price, level := range ob.askLevels {
		asks = append(asks, orderbookv1.DepthEntry{price, level.TotalQty})
	}

	// Bids descending (best bid first), asks ascending (best ask first).
	sort.Slice(bids, func(i, j int) bool {
		return bids[i].Price() > bids[j].Price()
	})
	sort.Slice(asks, func(i, j int) bool {
		return asks[i].Price() < asks[j].Price()
	})

	return orderbookv1.Depth{
		Bids:         bids,
		Asks:         asks,
		LastUpdateID: strconv.FormatUint(ob.nextOrderID, 10),
	}
}

func (ob *Orderbook) levelsFor(side orderbookv1.Side) map[uint64]*orderbookv1.PriceLevel {
	if side == orderbookv1.SideBuy {
		return ob.bidLevels
	}
	return ob.askLevels
}
