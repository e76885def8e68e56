package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	orderbookv1 "github.com/subhdotsol/CEX-superdevs/internal/domain/orderbook/v1"
	"github.com/subhdotsol/CEX-superdevs/internal/usecase/broadcaster"
	"github.com/subhdotsol/CEX-superdevs/internal/usecase/orderbook"
	"github.com/subhdotsol/CEX-superdevs/pkg/errors"
	"github.com/subhdotsol/CEX-superdevs/pkg/logger"
)

// Handler adapts the order book engine to the REST surface. The boundary
// validates and deserializes; the engine trusts validated input.
type Handler struct {
	service     string
	book        *orderbook.Orderbook
	broadcaster *broadcaster.Broadcaster
	logger      logger.Interface
}

// NewHandler creates the REST handler set.
func NewHandler(service string, book *orderbook.Orderbook, bc *broadcaster.Broadcaster, logger logger.Interface) *Handler {
	return &Handler{
		service:     service,
		book:        book,
		broadcaster: bc,
		logger:      logger,
	}
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Service: h.service,
	})
}

// CreateOrder handles POST /order.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", errors.GeneralBadRequestError)
		return
	}

	orderID, depth, err := h.book.CreateOrder(req.Price, req.Qty, req.UserID, req.Side)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), validationCode(err))
		return
	}

	h.logger.InfoContext(ctx, "order created",
		logger.Field{Key: "order_id", Value: orderID},
		logger.Field{Key: "user_id", Value: req.UserID},
		logger.Field{Key: "price", Value: req.Price},
		logger.Field{Key: "qty", Value: req.Qty},
		logger.Field{Key: "side", Value: req.Side},
	)

	// Fan-out happens after the engine lock is released.
	h.broadcaster.Publish(depth)

	writeJSON(w, http.StatusCreated, createOrderResponse{
		OrderID: strconv.FormatUint(orderID, 10),
	})
}

// CancelOrder handles DELETE /order.
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req cancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", errors.GeneralBadRequestError)
		return
	}

	// order ids travel as decimal strings; parse back before touching the engine.
	orderID, err := strconv.ParseUint(req.OrderID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "order_id must be a numeric string", errors.ErrInvalidOrderID)
		return
	}

	order, depth, err := h.book.CancelOrder(orderID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error(), errors.ErrOrderNotFound)
		return
	}

	h.logger.InfoContext(ctx, "order cancelled",
		logger.Field{Key: "order_id", Value: order.ID},
		logger.Field{Key: "user_id", Value: order.UserID},
		logger.Field{Key: "price", Value: order.Price},
		logger.Field{Key: "qty", Value: order.Qty},
	)

	h.broadcaster.Publish(depth)

	writeJSON(w, http.StatusOK, cancelOrderResponse{
		FilledQty:    0,
		AveragePrice: 0,
	})
}

// Depth handles GET /depth.
func (h *Handler) Depth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.book.Depth())
}

// validationCode maps engine sentinel errors to boundary error codes.
func validationCode(err error) errors.ErrorCode {
	switch err {
	case orderbookv1.ErrInvalidPrice:
		return errors.ErrInvalidPrice
	case orderbookv1.ErrInvalidQty:
		return errors.ErrInvalidQty
	case orderbookv1.ErrInvalidUserID:
		return errors.ErrInvalidUserID
	case orderbookv1.ErrInvalidSide:
		return errors.ErrInvalidSide
	default:
		return errors.GeneralBadRequestError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string, code errors.ErrorCode) {
	writeJSON(w, status, errorResponse{
		Error: message,
		Code:  string(code),
	})
}
