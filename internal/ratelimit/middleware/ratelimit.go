// Package middleware applies per-caller request limits to HTTP routes.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"shoplist/internal/ratelimit/metrics"
	"shoplist/internal/ratelimit/models"
	"shoplist/internal/ratelimit/store/bucket"
	dErrors "shoplist/pkg/domain-errors"
	"shoplist/pkg/platform/circuit"
	"shoplist/pkg/platform/httputil"
	"shoplist/pkg/requestcontext"
)

// BucketStore counts requests per key.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
}

// Middleware limits requests per caller. Backend errors never reject a
// request: the limiter falls back to in-process counting.
type Middleware struct {
	primary  BucketStore
	fallback BucketStore
	breaker  *circuit.Breaker
	limit    int
	window   time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
	now      func() time.Time
}

type Option func(*Middleware)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Middleware) {
		m.logger = logger
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = mt
	}
}

// WithDisabled turns the middleware into a pass-through.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

// WithFallback replaces the in-process fallback store.
func WithFallback(store BucketStore) Option {
	return func(m *Middleware) {
		m.fallback = store
	}
}

// New builds the limiter. A nil primary means in-process counting only.
func New(primary BucketStore, limit int, window time.Duration, opts ...Option) *Middleware {
	m := &Middleware{
		primary:  primary,
		fallback: bucket.NewInMemory(),
		breaker:  circuit.New("ratelimit", circuit.WithFailureThreshold(5), circuit.WithSuccessThreshold(3)),
		limit:    limit,
		window:   window,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.primary == nil {
		m.primary = m.fallback
	}
	if m.disabled {
		m.logger.Info("rate limiting disabled")
	}
	return m
}

// Handler counts each request against the caller (or client address when
// the identity is not yet known) and answers 429 rateLimited once the window
// is exhausted.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		result := m.check(ctx, key(ctx))
		if result == nil {
			next.ServeHTTP(w, r)
			return
		}

		m.metrics.IncrementDecision(result.Allowed)
		addRateLimitHeaders(w, result)
		if m.breaker.IsOpen() {
			w.Header().Set("X-RateLimit-Status", "degraded")
		}
		if !result.Allowed {
			retryAfter := result.RetryAfter(m.now())
			m.logger.WarnContext(ctx, "rate limit exceeded",
				"request_id", requestcontext.RequestID(ctx),
				"user_id", requestcontext.UserID(ctx),
				"retry_after", retryAfter,
			)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "too many requests").
				WithDetails(map[string]int{"retryAfter": retryAfter, "limit": result.Limit}), nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// check counts against the primary store and uses the in-process fallback
// while the primary is failing or the circuit has not closed again. A nil
// result means both stores failed and the request passes uncounted.
func (m *Middleware) check(ctx context.Context, key string) *models.Result {
	result, err := m.primary.Allow(ctx, key, m.limit, m.window)
	if err != nil {
		m.metrics.IncrementBackendErrors()
		m.logger.ErrorContext(ctx, "rate limit backend failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		if _, change := m.breaker.RecordFailure(); change.Opened {
			m.metrics.SetDegraded(true)
			m.logger.WarnContext(ctx, "rate limit circuit opened, using in-process fallback")
		}
	} else if usePrimary, change := m.breaker.RecordSuccess(); usePrimary {
		if change.Closed {
			m.metrics.SetDegraded(false)
			m.logger.InfoContext(ctx, "rate limit circuit closed")
		}
		return result
	}

	result, err = m.fallback.Allow(ctx, key, m.limit, m.window)
	if err != nil {
		return nil
	}
	return result
}

func key(ctx context.Context) string {
	if userID := requestcontext.UserID(ctx); userID != "" {
		return models.UserKey(userID)
	}
	return models.ClientKey(requestcontext.ClientIP(ctx))
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
