package middleware

import (
	"log/slog"
	"net/http"

	"github.com/ruyichen/task-api/internal/api/shared"
	"github.com/ruyichen/task-api/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context, along with a
// request-scoped logger carrying that ID. It should be applied early in the
// middleware chain so all subsequent handlers share both.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		reqLogger := slog.Default().With(slog.String("trace_id", traceID))
		ctx = logger.WithContext(ctx, reqLogger)

		reqLogger.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
