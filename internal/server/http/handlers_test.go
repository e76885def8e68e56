package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	orderbookv1 "github.com/subhdotsol/CEX-superdevs/internal/domain/orderbook/v1"
	"github.com/subhdotsol/CEX-superdevs/internal/usecase/broadcaster"
	"github.com/subhdotsol/CEX-superdevs/internal/usecase/orderbook"
	"github.com/subhdotsol/CEX-superdevs/pkg/errors"
	logger_mock "github.com/subhdotsol/CEX-superdevs/pkg/logger/mock"
)

func newTestHandler(t *testing.T) (*Handler, *broadcaster.Broadcaster) {
	ctrl := gomock.NewController(t)

	log := logger_mock.NewMockInterface(ctrl)
	log.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()

	bc := broadcaster.New(10)
	return NewHandler("orderbook", orderbook.NewOrderbook(), bc, log), bc
}

func doRequest(h http.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandler_Health(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(h.Health, http.MethodGet, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "orderbook", body.Service)
}

func TestHandler_CreateOrder(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   errors.ErrorCode
	}{
		{
			name:       "success",
			body:       `{"price":100,"qty":5,"user_id":1,"side":"Buy"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "zero price",
			body:       `{"price":0,"qty":5,"user_id":1,"side":"Buy"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrInvalidPrice,
		},
		{
			name:       "zero qty",
			body:       `{"price":100,"qty":0,"user_id":1,"side":"Sell"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrInvalidQty,
		},
		{
			name:       "zero user id",
			body:       `{"price":100,"qty":5,"user_id":0,"side":"Sell"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrInvalidUserID,
		},
		{
			name:       "invalid side",
			body:       `{"price":100,"qty":5,"user_id":1,"side":"Hold"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.ErrInvalidSide,
		},
		{
			name:       "negative price rejected at decode",
			body:       `{"price":-5,"qty":5,"user_id":1,"side":"Buy"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.GeneralBadRequestError,
		},
		{
			name:       "malformed body",
			body:       `{"price":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   errors.GeneralBadRequestError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newTestHandler(t)
			rec := doRequest(h.CreateOrder, http.MethodPost, tc.body)

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus == http.StatusCreated {
				var body createOrderResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "0", body.OrderID)
				return
			}

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, string(tc.wantCode), body.Code)
		})
	}
}

func TestHandler_CancelOrder(t *testing.T) {
	t.Run("cancel resting order", func(t *testing.T) {
		h, _ := newTestHandler(t)
		rec := doRequest(h.CreateOrder, http.MethodPost, `{"price":100,"qty":5,"user_id":1,"side":"Buy"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(h.CancelOrder, http.MethodDelete, `{"order_id":"0"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body cancelOrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, uint64(0), body.FilledQty)
		assert.Equal(t, uint64(0), body.AveragePrice)
	})

	t.Run("non-numeric order id", func(t *testing.T) {
		h, _ := newTestHandler(t)
		rec := doRequest(h.CancelOrder, http.MethodDelete, `{"order_id":"abc"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, string(errors.ErrInvalidOrderID), body.Code)
	})

	t.Run("missing order id", func(t *testing.T) {
		h, _ := newTestHandler(t)
		rec := doRequest(h.CancelOrder, http.MethodDelete, `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown order id", func(t *testing.T) {
		h, _ := newTestHandler(t)
		rec := doRequest(h.CancelOrder, http.MethodDelete, `{"order_id":"9999"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var body errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, string(errors.ErrOrderNotFound), body.Code)
	})
}

func TestHandler_Depth_WireFormat(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(h.CreateOrder, http.MethodPost, `{"price":100,"qty":5,"user_id":1,"side":"Buy"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doRequest(h.CreateOrder, http.MethodPost, `{"price":100,"qty":3,"user_id":2,"side":"Buy"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(h.Depth, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	// field names, order and casing are the wire contract
	assert.Equal(t,
		`{"bids":[[100,8]],"asks":[],"lastUpdateId":"2"}`,
		strings.TrimSpace(rec.Body.String()),
	)
}

// Scenario: two buys at one price, cancel the first, watch aggregate qty.
func TestHandler_CreateCancelDepthFlow(t *testing.T) {
	h, bc := newTestHandler(t)
	sub := bc.Subscribe()

	rec := doRequest(h.CreateOrder, http.MethodPost, `{"price":100,"qty":5,"user_id":1,"side":"Buy"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []orderbookv1.DepthEntry{{100, 5}}, (<-sub.C()).Bids)

	rec = doRequest(h.CreateOrder, http.MethodPost, `{"price":100,"qty":3,"user_id":2,"side":"Buy"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []orderbookv1.DepthEntry{{100, 8}}, (<-sub.C()).Bids)

	rec = doRequest(h.CancelOrder, http.MethodDelete, `{"order_id":"0"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []orderbookv1.DepthEntry{{100, 3}}, (<-sub.C()).Bids)

	// rejected requests publish nothing
	rec = doRequest(h.CancelOrder, http.MethodDelete, `{"order_id":"9999"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	select {
	case d := <-sub.C():
		t.Fatalf("unexpected broadcast %v", d.LastUpdateID)
	default:
	}
}

// Scenario: a cancelled sell leaves asks empty, not a zero-qty row.
func TestHandler_SellCancelPrunesLevel(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(h.CreateOrder, http.MethodPost, `{"price":50,"qty":10,"user_id":1,"side":"Sell"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(h.CancelOrder, http.MethodDelete, `{"order_id":"0"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(h.Depth, http.MethodGet, "")
	assert.Equal(t,
		`{"bids":[],"asks":[],"lastUpdateId":"1"}`,
		strings.TrimSpace(rec.Body.String()),
	)
}
