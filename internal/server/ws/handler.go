package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	orderbookv1 "github.com/subhdotsol/CEX-superdevs/internal/domain/orderbook/v1"
	"github.com/subhdotsol/CEX-superdevs/internal/usecase/broadcaster"
	"github.com/subhdotsol/CEX-superdevs/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
)

// depthMessage is the frame pushed to every connected client on each book
// mutation.
type depthMessage struct {
	Type string            `json:"type"`
	Data orderbookv1.Depth `json:"data"`
}

// Handler upgrades GET /ws requests and streams depth updates. Each
// connection owns one broadcaster subscription and one writer goroutine; a
// slow client only ever loses its own frames.
type Handler struct {
	upgrader    websocket.Upgrader
	broadcaster *broadcaster.Broadcaster
	logger      logger.Interface
}

// NewHandler creates the WebSocket handler.
func NewHandler(bc *broadcaster.Broadcaster, log logger.Interface) *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Public market data; any origin may connect.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		broadcaster: bc,
		logger:      log,
	}
}

// ServeHTTP upgrades the connection and runs the read/write pumps until the
// client goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ErrorContext(r.Context(), err, logger.Field{Key: "remote", Value: r.RemoteAddr})
		return
	}

	sub := h.broadcaster.Subscribe()

	h.logger.InfoContext(r.Context(), "websocket client connected",
		logger.Field{Key: "subscriber_id", Value: sub.ID()},
		logger.Field{Key: "remote", Value: r.RemoteAddr},
	)

	go h.writePump(conn, sub)
	h.readPump(conn, sub)
}

// writePump forwards queued depth updates to the client. It exits when the
// subscription is torn down or a write fails.
func (h *Handler) writePump(conn *websocket.Conn, sub *broadcaster.Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case depth, ok := <-sub.C():
			if !ok {
				// Subscription closed by the read pump.
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(depthMessage{Type: "depth", Data: depth}); err != nil {
				h.broadcaster.Unsubscribe(sub)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.broadcaster.Unsubscribe(sub)
				return
			}
		}
	}
}

// readPump consumes client frames until the connection drops, then tears the
// subscription down so no updates queue for a departed client.
func (h *Handler) readPump(conn *websocket.Conn, sub *broadcaster.Subscriber) {
	defer func() {
		h.broadcaster.Unsubscribe(sub)
		_ = conn.Close()
		h.logger.Info("websocket client disconnected",
			logger.Field{Key: "subscriber_id", Value: sub.ID()},
		)
	}()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		// Inbound payloads are ignored; the feed is one-way.
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
