// Package httpapi assembles the middleware chain and mounts every endpoint.
package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"shoplist/internal/platform/metrics"
	"shoplist/internal/platform/middleware"
	"shoplist/pkg/platform/httputil"
	"shoplist/pkg/platform/middleware/metadata"
	"shoplist/pkg/platform/middleware/request"
	"shoplist/pkg/platform/middleware/requesttime"
)

// Registrar mounts a group of authenticated routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

// Deps collects everything the router needs. Nil optional fields are skipped.
type Deps struct {
	Logger         *slog.Logger
	Resolver       middleware.IdentityResolver
	Routes         []Registrar
	RateLimit      func(http.Handler) http.Handler
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	HealthChecks   map[string]HealthCheck
	RequestTimeout time.Duration
	AccessLog      io.Writer
	AccessLogLevel slog.Level
	AccessLogJSON  bool
}

// NewRouter wires the public and authenticated route groups.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.Recovery(d.Logger))
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	if d.AccessLog != nil {
		r.Use(request.Logger("shoplist", d.AccessLogLevel, d.AccessLogJSON, d.AccessLog))
	}
	if d.Metrics != nil {
		r.Use(request.Latency(d.Metrics))
	}
	if d.RequestTimeout > 0 {
		r.Use(request.Timeout(d.RequestTimeout))
	}

	r.Get("/health", healthHandler(d.HealthChecks))
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(d.Gatherer))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireIdentity(d.Resolver, d.Logger))
		r.Use(request.ContentTypeJSON)
		if d.RateLimit != nil {
			r.Use(d.RateLimit)
		}
		for _, routes := range d.Routes {
			routes.Register(r)
		}
	})
	return r
}

type healthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// healthHandler answers 200 when every dependency responds, 503 otherwise.
func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		out := healthStatus{Status: "ok", Checks: make(map[string]string, len(names))}
		status := http.StatusOK
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				out.Checks[name] = "unavailable"
				out.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			out.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, out, nil)
	}
}
