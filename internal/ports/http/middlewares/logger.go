package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger emits one line per completed request through the package's
// otel-bridged logger. Severity follows the response status so failed
// requests stand out without a separate error hook.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			msg := fmt.Sprintf("%s %s -> %d (%dB) in %s",
				r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start))

			reqLogger := logger.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)

			switch {
			case ww.Status() >= http.StatusInternalServerError:
				reqLogger.ErrorContext(r.Context(), msg)
			case ww.Status() >= http.StatusBadRequest:
				reqLogger.WarnContext(r.Context(), msg)
			default:
				reqLogger.InfoContext(r.Context(), msg)
			}
		}()

		next.ServeHTTP(ww, r)
	})
}
