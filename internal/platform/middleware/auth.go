package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"shoplist/internal/identity"
	"shoplist/pkg/platform/httputil"
	"shoplist/pkg/requestcontext"
)

// IdentityResolver turns an Authorization header into the caller.
type IdentityResolver interface {
	Resolve(ctx context.Context, authorization string) (identity.Identity, error)
}

// RequireIdentity resolves the caller and stores it in the request context.
// Requests without a usable credential get a 401 envelope.
func RequireIdentity(resolver IdentityResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id, err := resolver.Resolve(ctx, r.Header.Get("Authorization"))
			if err != nil {
				logger.WarnContext(ctx, "unauthenticated request",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, err, nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(identity.WithContext(ctx, id)))
		})
	}
}
