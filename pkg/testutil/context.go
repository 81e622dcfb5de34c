package testutil

import (
	"context"
	"net/http"

	"shoplist/pkg/requestcontext"
)

// WithIdentity adds the caller to the request context.
// This simulates what the identity middleware does for authenticated requests.
func WithIdentity(req *http.Request, userID, profile string) *http.Request {
	return req.WithContext(requestcontext.WithIdentity(req.Context(), userID, profile))
}

// WithUser is WithIdentity for the default "user" tier.
func WithUser(req *http.Request, userID string) *http.Request {
	return WithIdentity(req, userID, "user")
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
