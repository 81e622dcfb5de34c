// Package identity turns an Authorization header into the caller's identity.
//
// Two credential forms are understood:
//
//	Bearer <userId>|<profileTier>   (tier defaults to "user")
//	Bearer <HS256 JWT>              (sub = userId, profile claim = tier; only when a secret is configured)
//
// The resolver never decides what a caller may do; unsupported tiers are
// carried through and rejected by the authorization policy.
package identity

import (
	"context"
	"strings"

	dErrors "shoplist/pkg/domain-errors"
	"shoplist/pkg/requestcontext"
)

// ProfileTier is the coarse application-level privilege tier of a caller.
type ProfileTier string

const (
	ProfileUser  ProfileTier = "user"
	ProfileAdmin ProfileTier = "admin"
)

// Supported reports whether the tier may use list endpoints at all.
func (p ProfileTier) Supported() bool {
	return p == ProfileUser || p == ProfileAdmin
}

// Identity is the authenticated caller.
type Identity struct {
	UserID  string
	Profile ProfileTier
}

// FromContext returns the caller stored by the identity middleware.
func FromContext(ctx context.Context) (Identity, error) {
	userID := requestcontext.UserID(ctx)
	if userID == "" {
		return Identity{}, dErrors.New(dErrors.CodeUnauthenticated, "authentication required")
	}
	return Identity{UserID: userID, Profile: ProfileTier(requestcontext.Profile(ctx))}, nil
}

// WithContext stores id for downstream handlers.
func WithContext(ctx context.Context, id Identity) context.Context {
	return requestcontext.WithIdentity(ctx, id.UserID, string(id.Profile))
}

const bearerPrefix = "Bearer "

// Resolver resolves Authorization headers. The zero value accepts only
// header credentials.
type Resolver struct {
	tokens     *TokenVerifier
	requireJWT bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTokenVerifier enables JWT credentials. When require is true the
// userId|tier form is refused.
func WithTokenVerifier(v *TokenVerifier, require bool) Option {
	return func(r *Resolver) {
		r.tokens = v
		r.requireJWT = require && v != nil
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve parses the raw Authorization header value.
func (r *Resolver) Resolve(_ context.Context, authorization string) (Identity, error) {
	credential, ok := strings.CutPrefix(authorization, bearerPrefix)
	credential = strings.TrimSpace(credential)
	if !ok || credential == "" {
		return Identity{}, dErrors.New(dErrors.CodeUnauthenticated, "missing bearer credential")
	}

	if r.tokens != nil && looksLikeJWT(credential) {
		return r.tokens.Verify(credential)
	}
	if r.requireJWT {
		return Identity{}, dErrors.New(dErrors.CodeUnauthenticated, "bearer token required")
	}
	return ParseCredential(credential)
}

// ParseCredential parses the userId|tier form.
func ParseCredential(credential string) (Identity, error) {
	userID, tier, _ := strings.Cut(credential, "|")
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Identity{}, dErrors.New(dErrors.CodeUnauthenticated, "credential has no user id")
	}
	profile := ProfileTier(strings.TrimSpace(tier))
	if profile == "" {
		profile = ProfileUser
	}
	return Identity{UserID: userID, Profile: profile}, nil
}

func looksLikeJWT(credential string) bool {
	return strings.Count(credential, ".") == 2 && !strings.Contains(credential, "|")
}
