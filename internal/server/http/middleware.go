package http

import (
	"net/http"
	"time"

	"github.com/subhdotsol/CEX-superdevs/pkg/logger"
	"github.com/subhdotsol/CEX-superdevs/pkg/util"
)

// RequestID propagates an inbound X-Request-Id header into the request
// context, generating one when absent, so every log line for a request
// shares the same id.
func RequestID(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := util.WithRequestID(r.Context(), r.Header.Get("X-Request-Id"))
		w.Header().Set("X-Request-Id", util.GetRequestID(ctx))

		h.ServeHTTP(w, r.WithContext(ctx))
	}

	return http.HandlerFunc(fn)
}

// CORS answers preflight requests and marks every response as reachable from
// any origin. The feed is public market data; there is nothing to protect.
func CORS(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Id")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// AccessLog writes one structured log line per request.
func AccessLog(log logger.Interface) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			h.ServeHTTP(w, r)

			log.InfoContext(r.Context(), "request",
				logger.Field{Key: "method", Value: r.Method},
				logger.Field{Key: "path", Value: r.URL.Path},
				logger.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
			)
		}

		return http.HandlerFunc(fn)
	}
}
