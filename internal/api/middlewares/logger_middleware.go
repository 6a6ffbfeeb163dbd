package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/studyme-ai/studyme/internal/logger"
)

// RequestLogger attaches a request-scoped zap logger (carrying the chi
// request id) to the context and logs every request on completion. Pipeline
// stages pick the logger up via logger.FromContext, so stage failures can be
// traced back to a request.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLog := log.With(zap.String("request_id", chimiddleware.GetReqID(r.Context())))
			ctx := logger.ContextWithLogger(r.Context(), reqLog)

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLog.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
