package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"shoplist/internal/users/models"
	id "shoplist/pkg/domain"
	"shoplist/pkg/platform/tx"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id    UUID PRIMARY KEY,
    name  TEXT NOT NULL CHECK (char_length(name) BETWEEN 1 AND 100)
)`

// Postgres reads the directory through database/sql and the lib/pq driver.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres opens a database/sql handle for dsn using the lib/pq driver.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse users DSN: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping users database: %w", err)
	}
	return db, nil
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// DB exposes the handle for tx.Run.
func (s *Postgres) DB() *sql.DB {
	return s.db
}

// Migrate creates the users table when it does not exist.
func (s *Postgres) Migrate(ctx context.Context) error {
	if _, err := tx.Conn(ctx, s.db).ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply users schema: %w", err)
	}
	return nil
}

// Upsert inserts or renames users in one statement using unnest.
// It joins a transaction opened with tx.Run.
func (s *Postgres) Upsert(ctx context.Context, users ...models.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]string, len(users))
	names := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID.String()
		names[i] = u.Name
	}
	query := `
		INSERT INTO users (id, name)
		SELECT * FROM unnest($1::uuid[], $2::text[])
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
	`
	if _, err := tx.Conn(ctx, s.db).ExecContext(ctx, query, pq.Array(ids), pq.Array(names)); err != nil {
		return fmt.Errorf("upsert users: %w", err)
	}
	return nil
}

// ListUsers returns all users ordered by name, then id.
func (s *Postgres) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, `SELECT id, name FROM users ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var (
			rawID string
			u     models.User
		)
		if err := rows.Scan(&rawID, &u.Name); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		userID, err := id.ParseUserID(rawID)
		if err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		u.ID = userID
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}
