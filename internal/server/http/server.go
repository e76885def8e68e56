package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/subhdotsol/CEX-superdevs/pkg/config"
	"github.com/subhdotsol/CEX-superdevs/pkg/logger"
)

// Server owns the HTTP listener and the route table.
type Server struct {
	httpServer *http.Server
	logger     logger.Interface
}

// NewServer builds the mux and wraps it with the middleware chain.
// The ws handler is passed in so the transport packages stay decoupled.
func NewServer(cfg config.AppConfig, handler *Handler, ws http.Handler, log logger.Interface) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("POST /order", handler.CreateOrder)
	mux.HandleFunc("DELETE /order", handler.CancelOrder)
	mux.HandleFunc("GET /depth", handler.Depth)
	mux.Handle("GET /ws", ws)

	var root http.Handler = mux
	root = AccessLog(log)(root)
	root = RequestID(root)
	root = CORS(root)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:           root,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: log,
	}
}

// ListenAndServe blocks serving requests until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", logger.Field{Key: "addr", Value: s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
