package v1

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/KirkDiggler/knight-api/internal/errors"
)

// HealthCheck reports whether a backing dependency is usable
type HealthCheck func(ctx context.Context) error

// RouterConfig holds what the HTTP router serves
type RouterConfig struct {
	Handler     *Handler
	HealthCheck HealthCheck
}

// Validate ensures the router has a handler to serve
func (c *RouterConfig) Validate() error {
	if c == nil || c.Handler == nil {
		return errors.InvalidArgument("handler is required")
	}
	return nil
}

// NewRouter builds the chi router with middleware, health and knight routes
func NewRouter(cfg *RouterConfig) (http.Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", healthHandler(cfg.HealthCheck))

	cfg.Handler.RegisterRoutes(r)

	return r, nil
}

func healthHandler(check HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := check(ctx); err != nil {
				slog.WarnContext(r.Context(), "health check failed", "error", err.Error())
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// requestLogger logs one line per request through slog
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chiMiddleware.GetReqID(r.Context()))
		}()

		next.ServeHTTP(ww, r)
	})
}
