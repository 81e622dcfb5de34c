//go:build integration

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"shoplist/internal/users/models"
	id "shoplist/pkg/domain"
	"shoplist/pkg/platform/tx"
	"shoplist/pkg/testutil/containers"
)

type PostgresUsersSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *Postgres
	ctx   context.Context
}

func TestPostgresUsersSuite(t *testing.T) {
	suite.Run(t, new(PostgresUsersSuite))
}

func (s *PostgresUsersSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())
	db, err := OpenPostgres(s.ctx, s.pg.DSN)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })
	s.store = NewPostgres(db)
	s.Require().NoError(s.store.Migrate(s.ctx))
}

func (s *PostgresUsersSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(s.ctx, "users"))
}

func (s *PostgresUsersSuite) TestUpsertAndList() {
	zoe := models.User{ID: id.NewUserID(), Name: "Zoe"}
	amir := models.User{ID: id.NewUserID(), Name: "Amir"}
	s.Require().NoError(s.store.Upsert(s.ctx, zoe, amir))

	users, err := s.store.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal([]models.User{amir, zoe}, users)

	zoe.Name = "Zoey"
	s.Require().NoError(s.store.Upsert(s.ctx, zoe))
	users, err = s.store.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal("Zoey", users[1].Name)
}

func (s *PostgresUsersSuite) TestEmptyDirectory() {
	users, err := s.store.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Empty(users)
}

func (s *PostgresUsersSuite) TestUpsertJoinsTransaction() {
	kept := models.User{ID: id.NewUserID(), Name: "Kept"}
	rolledBack := models.User{ID: id.NewUserID(), Name: "Rolled back"}
	boom := errors.New("abort")

	s.Require().NoError(tx.Run(s.ctx, s.store.DB(), func(ctx context.Context) error {
		return s.store.Upsert(ctx, kept)
	}))
	err := tx.Run(s.ctx, s.store.DB(), func(ctx context.Context) error {
		if err := s.store.Upsert(ctx, rolledBack); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	users, err := s.store.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal([]models.User{kept}, users)
}
