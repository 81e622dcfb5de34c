package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplist/internal/ratelimit/models"
	"shoplist/internal/ratelimit/store/bucket"
	"shoplist/pkg/testutil"
)

type failingStore struct {
	calls int
}

func (f *failingStore) Allow(context.Context, string, int, time.Duration) (*models.Result, error) {
	f.calls++
	return nil, errors.New("connection refused")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRateLimitPerUser(t *testing.T) {
	h := New(nil, 2, time.Minute, WithLogger(quietLogger())).Handler(okHandler())

	for range 2 {
		rr := testutil.DoRequest(h, testutil.WithUser(testutil.NewRequest(t, http.MethodGet, "/lists"), "u-1"))
		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "2", rr.Header().Get("X-RateLimit-Limit"))
	}

	rr := testutil.DoRequest(h, testutil.WithUser(testutil.NewRequest(t, http.MethodGet, "/lists"), "u-1"))
	testutil.AssertStatusAndError(t, rr, http.StatusTooManyRequests, "rateLimited")
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))

	other := testutil.DoRequest(h, testutil.WithUser(testutil.NewRequest(t, http.MethodGet, "/lists"), "u-2"))
	assert.Equal(t, http.StatusNoContent, other.Code)
}

func TestRateLimitFailsOpenToFallback(t *testing.T) {
	primary := &failingStore{}
	m := New(primary, 1, time.Minute, WithLogger(quietLogger()))
	h := m.Handler(okHandler())

	rr := testutil.DoRequest(h, testutil.WithUser(testutil.NewRequest(t, http.MethodGet, "/lists"), "u-1"))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = testutil.DoRequest(h, testutil.WithUser(testutil.NewRequest(t, http.MethodGet, "/lists"), "u-1"))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code, "fallback keeps counting while the backend is down")
	assert.Equal(t, 2, primary.calls)
}

func TestRateLimitCircuitOpensAfterRepeatedFailures(t *testing.T) {
	m := New(&failingStore{}, 100, time.Minute, WithLogger(quietLogger()))
	h := m.Handler(okHandler())

	var rr = testutil.DoRequest(h, testutil.NewRequest(t, http.MethodGet, "/health"))
	for range 4 {
		rr = testutil.DoRequest(h, testutil.NewRequest(t, http.MethodGet, "/health"))
	}
	assert.True(t, m.breaker.IsOpen())
	assert.Equal(t, "degraded", rr.Header().Get("X-RateLimit-Status"))
}

func TestRateLimitDisabled(t *testing.T) {
	primary := &failingStore{}
	h := New(primary, 1, time.Minute, WithLogger(quietLogger()), WithDisabled(true)).Handler(okHandler())

	for range 3 {
		rr := testutil.DoRequest(h, testutil.NewRequest(t, http.MethodGet, "/lists"))
		assert.Equal(t, http.StatusNoContent, rr.Code)
	}
	assert.Zero(t, primary.calls)
}

// flakyStore fails until healthy is set, then delegates to an in-memory bucket.
type flakyStore struct {
	healthy bool
	inner   BucketStore
}

func (f *flakyStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error) {
	if !f.healthy {
		return nil, errors.New("i/o timeout")
	}
	return f.inner.Allow(ctx, key, limit, window)
}

func TestRateLimitCircuitClosesAfterRecovery(t *testing.T) {
	primary := &flakyStore{inner: bucket.NewInMemory()}
	m := New(primary, 100, time.Minute, WithLogger(quietLogger()))
	h := m.Handler(okHandler())

	for range 5 {
		testutil.DoRequest(h, testutil.WithUser(testutil.NewRequest(t, http.MethodGet, "/lists"), "u-1"))
	}
	require.True(t, m.breaker.IsOpen())

	primary.healthy = true
	for range 2 {
		rr := testutil.DoRequest(h, testutil.WithUser(testutil.NewRequest(t, http.MethodGet, "/lists"), "u-1"))
		assert.Equal(t, "degraded", rr.Header().Get("X-RateLimit-Status"))
	}
	rr := testutil.DoRequest(h, testutil.WithUser(testutil.NewRequest(t, http.MethodGet, "/lists"), "u-1"))
	assert.False(t, m.breaker.IsOpen())
	assert.Empty(t, rr.Header().Get("X-RateLimit-Status"))
	assert.Equal(t, "97", rr.Header().Get("X-RateLimit-Remaining"), "recovery probes were counted by the primary")
}
