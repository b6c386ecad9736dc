// Package httptransport assembles the public router: shared middleware,
// platform endpoints and the domain handlers.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"examreg/internal/platform/health"
	"examreg/internal/platform/metrics"
	"examreg/pkg/platform/httputil"
	"examreg/pkg/platform/middleware/metadata"
	"examreg/pkg/platform/middleware/request"
)

// RouteRegistrar is implemented by every domain handler.
type RouteRegistrar interface {
	Register(r chi.Router)
}

type Config struct {
	Logger         *slog.Logger
	Registry       *prometheus.Registry
	RequestMetrics *request.Metrics
	Health         *health.Handler
	Metadata       *metadata.Middleware
	AllowedOrigins []string
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

// NewRouter wires platform endpoints outside the request timeout and the
// domain handlers inside it.
func NewRouter(cfg Config, handlers ...RouteRegistrar) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.RequestID)
	r.Use(cfg.Metadata.Handler)
	r.Use(request.Logger(cfg.Logger))
	r.Use(request.LatencyMiddleware(cfg.RequestMetrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{Error: "method not allowed"})
	})

	cfg.Health.Register(r)
	metrics.Register(r, cfg.Registry)

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(cfg.RequestTimeout))
		r.Use(request.BodyLimit(cfg.MaxBodyBytes))
		r.Use(request.ContentTypeJSON)
		for _, h := range handlers {
			h.Register(r)
		}
	})

	return r
}
