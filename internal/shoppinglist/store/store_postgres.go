package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"shoplist/internal/shoppinglist/models"
	id "shoplist/pkg/domain"
)

//go:embed schema.sql
var schema string

// Migrate creates the list tables when they do not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply list schema: %w", err)
		}
	}
	return nil
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres persists list aggregates across three tables. Each mutation is one
// transaction: it first bumps shopping_lists.updated_at (taking the row lock that
// serializes writers of the same list), then issues a targeted statement against
// the child table, then re-reads the aggregate.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) mutate(ctx context.Context, listID id.ListID, now time.Time, fn func(tx pgx.Tx) error) (*models.List, error) {
	var out *models.List
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := touch(ctx, tx, listID, now); err != nil {
			return err
		}
		if fn != nil {
			if err := fn(tx); err != nil {
				return err
			}
		}
		l, err := loadList(ctx, tx, listID, true)
		out = l
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func touch(ctx context.Context, tx pgx.Tx, listID id.ListID, now time.Time) error {
	tag, err := tx.Exec(ctx, `UPDATE shopping_lists SET updated_at = $2 WHERE id = $1`, uuid.UUID(listID), now)
	if err != nil {
		return fmt.Errorf("lock list: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrListNotFound
	}
	return nil
}

func (s *Postgres) CreateList(ctx context.Context, list *models.List) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO shopping_lists (id, name, archived, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.UUID(list.ID), list.Name, list.Archived, list.CreatedAt, list.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert list: %w", err)
		}
		for _, m := range list.Memberships {
			if _, err := tx.Exec(ctx,
				`INSERT INTO list_memberships (list_id, user_id, role) VALUES ($1, $2, $3)`,
				uuid.UUID(list.ID), uuid.UUID(m.UserID), string(m.Role)); err != nil {
				return fmt.Errorf("insert membership: %w", err)
			}
		}
		for _, it := range list.Items {
			if err := insertItem(ctx, tx, list.ID, it); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteList removes the list; memberships and items go with it via ON DELETE CASCADE.
func (s *Postgres) DeleteList(ctx context.Context, listID id.ListID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM shopping_lists WHERE id = $1`, uuid.UUID(listID))
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrListNotFound
	}
	return nil
}

const overviewFilter = `
	FROM shopping_lists l
	WHERE l.archived = $2
	  AND EXISTS (SELECT 1 FROM list_memberships m WHERE m.list_id = l.id AND m.user_id = $1)
	  AND ($3 = '' OR l.name ILIKE '%' || $3 || '%' ESCAPE '\')`

// FindListsForUser counts and pages concurrently, then loads children for the page in bulk.
func (s *Postgres) FindListsForUser(ctx context.Context, userID id.UserID, q models.ListQuery) (int, []*models.List, error) {
	search := escapeLike(strings.TrimSpace(q.Search))
	args := []any{uuid.UUID(userID), q.Archived, search}

	var (
		total int
		lists []*models.List
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.pool.QueryRow(gctx, `SELECT count(*)`+overviewFilter, args...).Scan(&total); err != nil {
			return fmt.Errorf("count lists: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		rows, err := s.pool.Query(gctx, `SELECT l.id, l.name, l.archived, l.created_at, l.updated_at`+overviewFilter+`
			ORDER BY l.created_at DESC, l.id DESC
			LIMIT $4 OFFSET $5`, append(args, q.PageSize, q.Offset())...)
		if err != nil {
			return fmt.Errorf("query lists: %w", err)
		}
		lists, err = pgx.CollectRows(rows, scanList)
		if err != nil {
			return fmt.Errorf("scan lists: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, nil, err
	}

	if err := loadChildren(ctx, s.pool, lists, true); err != nil {
		return 0, nil, err
	}
	return total, lists, nil
}

// FindListForUser reads the aggregate from one snapshot. Non-members get
// ErrListNotFound, the same as for an unknown list.
func (s *Postgres) FindListForUser(ctx context.Context, listID id.ListID, userID id.UserID, includeResolved bool) (*models.List, error) {
	var out *models.List
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		var member bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM list_memberships WHERE list_id = $1 AND user_id = $2)`,
			uuid.UUID(listID), uuid.UUID(userID)).Scan(&member)
		if err != nil {
			return fmt.Errorf("check membership: %w", err)
		}
		if !member {
			return models.ErrListNotFound
		}
		out, err = loadList(ctx, tx, listID, includeResolved)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Postgres) FindMembershipRole(ctx context.Context, listID id.ListID, userID id.UserID) (models.Role, error) {
	var role *string
	err := s.pool.QueryRow(ctx, `
		SELECT m.role
		FROM shopping_lists l
		LEFT JOIN list_memberships m ON m.list_id = l.id AND m.user_id = $2
		WHERE l.id = $1`, uuid.UUID(listID), uuid.UUID(userID)).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.RoleNone, models.ErrListNotFound
		}
		return models.RoleNone, fmt.Errorf("find membership role: %w", err)
	}
	if role == nil {
		return models.RoleNone, models.ErrMembershipMissing
	}
	return models.Role(*role), nil
}

func (s *Postgres) Rename(ctx context.Context, listID id.ListID, name string, now time.Time) (*models.List, error) {
	return s.mutate(ctx, listID, now, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE shopping_lists SET name = $2 WHERE id = $1`, uuid.UUID(listID), name); err != nil {
			return fmt.Errorf("rename list: %w", err)
		}
		return nil
	})
}

// SetArchived keeps updated_at unchanged when the flag already has the requested value.
func (s *Postgres) SetArchived(ctx context.Context, listID id.ListID, archived bool, now time.Time) (*models.List, error) {
	var out *models.List
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE shopping_lists
			SET archived = $2,
			    updated_at = CASE WHEN archived = $2 THEN updated_at ELSE $3 END
			WHERE id = $1`, uuid.UUID(listID), archived, now)
		if err != nil {
			return fmt.Errorf("set archived: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return models.ErrListNotFound
		}
		out, err = loadList(ctx, tx, listID, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Postgres) AddMembership(ctx context.Context, listID id.ListID, userID id.UserID, now time.Time) (*models.List, error) {
	return s.mutate(ctx, listID, now, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			INSERT INTO list_memberships (list_id, user_id, role) VALUES ($1, $2, 'member')
			ON CONFLICT (list_id, user_id) DO NOTHING`, uuid.UUID(listID), uuid.UUID(userID))
		if err != nil {
			return fmt.Errorf("insert membership: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return models.ErrMembershipExists
		}
		return nil
	})
}

func (s *Postgres) RemoveMembership(ctx context.Context, listID id.ListID, userID id.UserID, now time.Time) (*models.List, error) {
	return s.mutate(ctx, listID, now, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			DELETE FROM list_memberships
			WHERE list_id = $1 AND user_id = $2 AND role <> 'owner'`, uuid.UUID(listID), uuid.UUID(userID))
		if err != nil {
			return fmt.Errorf("delete membership: %w", err)
		}
		if tag.RowsAffected() > 0 {
			return nil
		}
		var isOwner bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM list_memberships WHERE list_id = $1 AND user_id = $2)`,
			uuid.UUID(listID), uuid.UUID(userID)).Scan(&isOwner)
		if err != nil {
			return fmt.Errorf("check membership: %w", err)
		}
		if isOwner {
			return models.ErrOwnerMembership
		}
		return models.ErrMembershipMissing
	})
}

func (s *Postgres) AddItem(ctx context.Context, listID id.ListID, item models.Item, now time.Time) (*models.List, error) {
	return s.mutate(ctx, listID, now, func(tx pgx.Tx) error {
		return insertItem(ctx, tx, listID, item)
	})
}

func (s *Postgres) UpdateItem(ctx context.Context, listID id.ListID, itemID id.ItemID, patch models.ItemPatch, now time.Time) (*models.List, error) {
	return s.mutate(ctx, listID, now, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE list_items
			SET name = COALESCE($3::text, name),
			    quantity = COALESCE($4::integer, quantity),
			    resolved = COALESCE($5::boolean, resolved),
			    updated_at = $6
			WHERE list_id = $1 AND id = $2`,
			uuid.UUID(listID), uuid.UUID(itemID), patch.Name, patch.Quantity, patch.Resolved, now)
		if err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return models.ErrItemNotFound
		}
		return nil
	})
}

func (s *Postgres) RemoveItem(ctx context.Context, listID id.ListID, itemID id.ItemID, now time.Time) (*models.List, error) {
	return s.mutate(ctx, listID, now, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM list_items WHERE list_id = $1 AND id = $2`, uuid.UUID(listID), uuid.UUID(itemID))
		if err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return models.ErrItemNotFound
		}
		return nil
	})
}

func insertItem(ctx context.Context, q querier, listID id.ListID, it models.Item) error {
	_, err := q.Exec(ctx, `
		INSERT INTO list_items (id, list_id, name, quantity, resolved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.UUID(it.ID), uuid.UUID(listID), it.Name, it.Quantity, it.Resolved, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func scanList(row pgx.CollectableRow) (*models.List, error) {
	var (
		listID uuid.UUID
		l      models.List
	)
	if err := row.Scan(&listID, &l.Name, &l.Archived, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.ID = id.ListID(listID)
	l.Memberships = []models.Membership{}
	l.Items = []models.Item{}
	return &l, nil
}

func loadList(ctx context.Context, q querier, listID id.ListID, includeResolved bool) (*models.List, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, archived, created_at, updated_at
		FROM shopping_lists WHERE id = $1`, uuid.UUID(listID))
	if err != nil {
		return nil, fmt.Errorf("query list: %w", err)
	}
	l, err := pgx.CollectExactlyOneRow(rows, scanList)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrListNotFound
		}
		return nil, fmt.Errorf("scan list: %w", err)
	}
	if err := loadChildren(ctx, q, []*models.List{l}, includeResolved); err != nil {
		return nil, err
	}
	return l, nil
}

// loadChildren fills memberships and items for lists with two queries total.
func loadChildren(ctx context.Context, q querier, lists []*models.List, includeResolved bool) error {
	if len(lists) == 0 {
		return nil
	}
	byID := make(map[id.ListID]*models.List, len(lists))
	ids := make([]string, 0, len(lists))
	for _, l := range lists {
		byID[l.ID] = l
		ids = append(ids, l.ID.String())
	}

	rows, err := q.Query(ctx, `
		SELECT list_id, user_id, role FROM list_memberships
		WHERE list_id = ANY($1::uuid[])
		ORDER BY seq`, ids)
	if err != nil {
		return fmt.Errorf("query memberships: %w", err)
	}
	var listID, userID uuid.UUID
	var role string
	_, err = pgx.ForEachRow(rows, []any{&listID, &userID, &role}, func() error {
		l := byID[id.ListID(listID)]
		l.Memberships = append(l.Memberships, models.Membership{UserID: id.UserID(userID), Role: models.Role(role)})
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan memberships: %w", err)
	}

	rows, err = q.Query(ctx, `
		SELECT list_id, id, name, quantity, resolved, created_at, updated_at FROM list_items
		WHERE list_id = ANY($1::uuid[]) AND ($2 OR NOT resolved)
		ORDER BY seq`, ids, includeResolved)
	if err != nil {
		return fmt.Errorf("query items: %w", err)
	}
	var (
		itemID uuid.UUID
		it     models.Item
	)
	_, err = pgx.ForEachRow(rows, []any{&listID, &itemID, &it.Name, &it.Quantity, &it.Resolved, &it.CreatedAt, &it.UpdatedAt}, func() error {
		it.ID = id.ItemID(itemID)
		l := byID[id.ListID(listID)]
		l.Items = append(l.Items, it)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan items: %w", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes search a literal substring for ILIKE.
func escapeLike(search string) string {
	return likeEscaper.Replace(search)
}
