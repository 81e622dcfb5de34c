package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "shoplist/pkg/domain-errors"
)

// Claims are the JWT claims understood by the resolver.
type Claims struct {
	Profile string `json:"profile,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier validates HS256 tokens and can mint them for local use.
type TokenVerifier struct {
	signingKey []byte
	issuer     string
}

func NewTokenVerifier(signingKey, issuer string) *TokenVerifier {
	return &TokenVerifier{signingKey: []byte(signingKey), issuer: issuer}
}

// Issue mints a token for userID; used by tooling and tests.
func (v *TokenVerifier) Issue(userID string, profile ProfileTier, expiresIn time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Profile: string(profile),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(v.signingKey)
}

// Verify validates the token and returns the identity it names.
func (v *TokenVerifier) Verify(tokenString string) (Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return v.signingKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, dErrors.New(dErrors.CodeUnauthenticated, "token has expired")
		}
		return Identity{}, dErrors.New(dErrors.CodeUnauthenticated, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return Identity{}, dErrors.New(dErrors.CodeUnauthenticated, "invalid token claims")
	}
	profile := ProfileTier(claims.Profile)
	if profile == "" {
		profile = ProfileUser
	}
	return Identity{UserID: claims.Subject, Profile: profile}, nil
}
