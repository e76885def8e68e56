package orderbook

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/subhdotsol/CEX-superdevs/internal/domain/orderbook/v1"
)

func TestNewOrderbook(t *testing.T) {
	ob := NewOrderbook()

	assert.NotNil(t, ob)
	assert.Equal(t, 0, ob.OrderCount())

	depth := ob.Depth()
	assert.Empty(t, depth.Bids)
	assert.Empty(t, depth.Asks)
	assert.Equal(t, "0", depth.LastUpdateID)
}

func TestOrderbook_CreateOrder_IDsStrictlyIncreasing(t *testing.T) {
	ob := NewOrderbook()

	var prev uint64
	for i := 0; i < 100; i++ {
		id, _, err := ob.CreateOrder(100, 1, 7, orderbookv1.SideBuy)
		require.NoError(t, err)
		if i > 0 {
			assert.Greater(t, id, prev)
		}
		prev = id
	}

	// ids are never reused after cancellation
	_, _, err := ob.CancelOrder(prev)
	require.NoError(t, err)
	id, _, err := ob.CreateOrder(100, 1, 7, orderbookv1.SideBuy)
	require.NoError(t, err)
	assert.Greater(t, id, prev)
}

func TestOrderbook_CreateOrder_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		price   uint64
		qty     uint64
		userID  uint64
		side    orderbookv1.Side
		wantErr error
	}{
		{name: "zero price", price: 0, qty: 5, userID: 1, side: orderbookv1.SideBuy, wantErr: orderbookv1.ErrInvalidPrice},
		{name: "zero qty", price: 100, qty: 0, userID: 1, side: orderbookv1.SideBuy, wantErr: orderbookv1.ErrInvalidQty},
		{name: "zero user id", price: 100, qty: 5, userID: 0, side: orderbookv1.SideBuy, wantErr: orderbookv1.ErrInvalidUserID},
		{name: "invalid side", price: 100, qty: 5, userID: 1, side: orderbookv1.Side("Hold"), wantErr: orderbookv1.ErrInvalidSide},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ob := NewOrderbook()
			_, _, err := ob.CreateOrder(tc.price, tc.qty, tc.userID, tc.side)

			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, 0, ob.OrderCount())
			// a rejected create allocates no id
			assert.Equal(t, "0", ob.Depth().LastUpdateID)
		})
	}
}

func TestOrderbook_SamePriceLevelAggregation(t *testing.T) {
	ob := NewOrderbook()

	firstID, depth, err := ob.CreateOrder(100, 5, 1, orderbookv1.SideBuy)
	require.NoError(t, err)
	assert.Equal(t, []orderbookv1.DepthEntry{{100, 5}}, depth.Bids)

	_, depth, err = ob.CreateOrder(100, 3, 2, orderbookv1.SideBuy)
	require.NoError(t, err)
	assert.Equal(t, []orderbookv1.DepthEntry{{100, 8}}, depth.Bids)
	assert.Empty(t, depth.Asks)

	// cancelling the first order leaves the second resting
	_, depth, err = ob.CancelOrder(firstID)
	require.NoError(t, err)
	assert.Equal(t, []orderbookv1.DepthEntry{{100, 3}}, depth.Bids)
}

func TestOrderbook_CancelOrder(t *testing.T) {
	t.Run("cancel unknown id reports not found", func(t *testing.T) {
		ob := NewOrderbook()
		_, _, err := ob.CancelOrder(9999)
		assert.ErrorIs(t, err, orderbookv1.ErrOrderNotFound)
	})

	t.Run("cancel is exactly once", func(t *testing.T) {
		ob := NewOrderbook()
		id, _, err := ob.CreateOrder(100, 5, 1, orderbookv1.SideBuy)
		require.NoError(t, err)

		order, _, err := ob.CancelOrder(id)
		require.NoError(t, err)
		assert.Equal(t, id, order.ID)
		assert.Equal(t, uint64(5), order.Qty)

		_, _, err = ob.CancelOrder(id)
		assert.ErrorIs(t, err, orderbookv1.ErrOrderNotFound)
	})

	t.Run("cancel leaves book unchanged on not found", func(t *testing.T) {
		ob := NewOrderbook()
		_, _, err := ob.CreateOrder(100, 5, 1, orderbookv1.SideBuy)
		require.NoError(t, err)
		before := ob.Depth()

		_, _, err = ob.CancelOrder(12345)
		assert.ErrorIs(t, err, orderbookv1.ErrOrderNotFound)
		assert.Equal(t, before, ob.Depth())
	})

	t.Run("emptied level is pruned from depth", func(t *testing.T) {
		ob := NewOrderbook()
		id, _, err := ob.CreateOrder(50, 10, 1, orderbookv1.SideSell)
		require.NoError(t, err)

		_, depth, err := ob.CancelOrder(id)
		require.NoError(t, err)
		assert.Empty(t, depth.Asks)
		assert.NotNil(t, depth.Asks) // [] on the wire, never null
	})
}

func TestOrderbook_Depth_Ordering(t *testing.T) {
	ob := NewOrderbook()

	for _, price := range []uint64{105, 99, 103, 101} {
		_, _, err := ob.CreateOrder(price, 1, 1, orderbookv1.SideBuy)
		require.NoError(t, err)
	}
	for _, price := range []uint64{205, 199, 203, 201} {
		_, _, err := ob.CreateOrder(price, 1, 1, orderbookv1.SideSell)
		require.NoError(t, err)
	}

	depth := ob.Depth()

	// bids strictly descending, best bid first
	require.Len(t, depth.Bids, 4)
	for i := 1; i < len(depth.Bids); i++ {
		assert.Greater(t, depth.Bids[i-1].Price(), depth.Bids[i].Price())
	}
	assert.Equal(t, uint64(105), depth.Bids[0].Price())

	// asks strictly ascending, best ask first
	require.Len(t, depth.Asks, 4)
	for i := 1; i < len(depth.Asks); i++ {
		assert.Less(t, depth.Asks[i-1].Price(), depth.Asks[i].Price())
	}
	assert.Equal(t, uint64(199), depth.Asks[0].Price())
}

func TestOrderbook_Depth_Idempotent(t *testing.T) {
	ob := NewOrderbook()

	_, _, err := ob.CreateOrder(100, 5, 1, orderbookv1.SideBuy)
	require.NoError(t, err)
	_, _, err = ob.CreateOrder(101, 2, 2, orderbookv1.SideSell)
	require.NoError(t, err)

	first := ob.Depth()
	second := ob.Depth()
	assert.Equal(t, first, second)
}

func TestOrderbook_Depth_VersionTracksCounter(t *testing.T) {
	ob := NewOrderbook()

	_, depth, err := ob.CreateOrder(100, 5, 1, orderbookv1.SideBuy)
	require.NoError(t, err)
	assert.Equal(t, "1", depth.LastUpdateID)

	id, depth, err := ob.CreateOrder(100, 5, 1, orderbookv1.SideBuy)
	require.NoError(t, err)
	assert.Equal(t, "2", depth.LastUpdateID)

	// cancellation does not advance the id counter
	_, depth, err = ob.CancelOrder(id)
	require.NoError(t, err)
	assert.Equal(t, "2", depth.LastUpdateID)
}

func TestOrderbook_ConcurrentCreates(t *testing.T) {
	const (
		workers          = 8
		ordersPerWorker  = 200
		price            = uint64(100)
		qtyPerOrder      = uint64(3)
		expectedTotalQty = uint64(workers * ordersPerWorker * 3)
	)

	ob := NewOrderbook()

	var wg sync.WaitGroup
	ids := make([][]uint64, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < ordersPerWorker; i++ {
				id, _, err := ob.CreateOrder(price, qtyPerOrder, uint64(w+1), orderbookv1.SideBuy)
				assert.NoError(t, err)
				ids[w] = append(ids[w], id)
			}
		}(w)
	}
	wg.Wait()

	// all ids distinct and accounted for
	seen := make(map[uint64]bool)
	for _, workerIDs := range ids {
		for _, id := range workerIDs {
			assert.False(t, seen[id], "duplicate order id %d", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, workers*ordersPerWorker)
	assert.Equal(t, workers*ordersPerWorker, ob.OrderCount())

	// no lost updates: aggregate qty equals the sum of created quantities
	depth := ob.Depth()
	require.Len(t, depth.Bids, 1)
	assert.Equal(t, expectedTotalQty, depth.Bids[0].Qty())
	assert.Equal(t, strconv.Itoa(workers*ordersPerWorker), depth.LastUpdateID)
}

func TestOrderbook_ConcurrentReadsAndWrites(t *testing.T) {
	ob := NewOrderbook()
	var wg sync.WaitGroup

	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_, _, err := ob.CreateOrder(uint64(100+i%5), 1, uint64(w+1), orderbookv1.SideSell)
				assert.NoError(t, err)
			}
		}(w)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				depth := ob.Depth()
				for j := 1; j < len(depth.Asks); j++ {
					assert.Less(t, depth.Asks[j-1].Price(), depth.Asks[j].Price())
				}
			}
		}()
	}
	wg.Wait()
}
