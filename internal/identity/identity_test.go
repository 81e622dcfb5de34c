package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "shoplist/pkg/domain-errors"
)

type ResolverSuite struct {
	suite.Suite
	ctx context.Context
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *ResolverSuite) TestHeaderCredentials() {
	r := NewResolver()

	s.Run("user id with tier", func() {
		got, err := r.Resolve(s.ctx, "Bearer u-1|admin")
		s.Require().NoError(err)
		s.Equal(Identity{UserID: "u-1", Profile: ProfileAdmin}, got)
	})

	s.Run("tier defaults to user", func() {
		got, err := r.Resolve(s.ctx, "Bearer u-1")
		s.Require().NoError(err)
		s.Equal(ProfileUser, got.Profile)
	})

	s.Run("unknown tier is carried verbatim", func() {
		got, err := r.Resolve(s.ctx, "Bearer u-1|guest")
		s.Require().NoError(err)
		s.Equal(ProfileTier("guest"), got.Profile)
		s.False(got.Profile.Supported())
	})

	for name, header := range map[string]string{
		"absent":        "",
		"not bearer":    "Basic dXNlcjpwYXNz",
		"empty bearer":  "Bearer ",
		"empty user id": "Bearer |user",
	} {
		s.Run("rejects "+name, func() {
			_, err := r.Resolve(s.ctx, header)
			s.True(dErrors.HasCode(err, dErrors.CodeUnauthenticated))
		})
	}
}

func (s *ResolverSuite) TestTokenCredentials() {
	verifier := NewTokenVerifier("test-secret", "shoplist")

	s.Run("valid token resolves subject and profile", func() {
		token, err := verifier.Issue("u-2", ProfileAdmin, time.Minute)
		s.Require().NoError(err)

		got, err := NewResolver(WithTokenVerifier(verifier, false)).Resolve(s.ctx, "Bearer "+token)
		s.Require().NoError(err)
		s.Equal(Identity{UserID: "u-2", Profile: ProfileAdmin}, got)
	})

	s.Run("expired token is unauthenticated", func() {
		token, err := verifier.Issue("u-2", ProfileUser, -time.Minute)
		s.Require().NoError(err)

		_, err = NewResolver(WithTokenVerifier(verifier, false)).Resolve(s.ctx, "Bearer "+token)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})

	s.Run("token signed with another key is unauthenticated", func() {
		token, err := NewTokenVerifier("other", "shoplist").Issue("u-2", ProfileUser, time.Minute)
		s.Require().NoError(err)

		_, err = NewResolver(WithTokenVerifier(verifier, false)).Resolve(s.ctx, "Bearer "+token)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})

	s.Run("header credentials refused when tokens are required", func() {
		_, err := NewResolver(WithTokenVerifier(verifier, true)).Resolve(s.ctx, "Bearer u-1|user")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})

	s.Run("header credentials still accepted when tokens are optional", func() {
		got, err := NewResolver(WithTokenVerifier(verifier, false)).Resolve(s.ctx, "Bearer u-1|user")
		s.Require().NoError(err)
		s.Equal("u-1", got.UserID)
	})
}
