package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"tastetrail-backend/pkg/observability"
)

// Logger creates a request-logging middleware. Each request is logged and
// its latency recorded; 5xx responses are counted as server errors. A nil
// metrics instance records nothing.
func Logger(logger *zap.Logger, metrics *observability.Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			operation := r.Method + " " + r.URL.Path

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", duration),
				zap.String("requestID", middleware.GetReqID(r.Context())),
				zap.String("remoteAddr", r.RemoteAddr),
			)

			metrics.RecordLatency(r.Context(), operation, duration)
			if ww.Status() >= 500 {
				metrics.RecordError(r.Context(), "ServerError", strconv.Itoa(ww.Status()))
			}
		})
	}
}
