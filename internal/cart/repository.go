package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("cart not found")
	ErrUnknownProduct = errors.New("unknown product")
)

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error)
	Clear(ctx context.Context, userID string) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*Cart, error) {
	var c Cart
	row := r.pool.QueryRow(ctx, `SELECT id, user_id, updated_at FROM carts WHERE user_id=$1`, userID)
	if err := row.Scan(&c.ID, &c.UserID, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

// AddItem creates the cart row on first use and merges quantities when the
// product is already in the cart. The whole mutation runs in one transaction.
func (r *PostgresRepository) AddItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, productID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownProduct
	}

	var cartID string
	err = tx.QueryRow(ctx, `
		INSERT INTO carts (id, user_id, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET updated_at=now()
		RETURNING id
	`, uuid.NewString(), userID).Scan(&cartID)
	if err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE cart_items SET quantity = quantity + $3
		WHERE cart_id=$1 AND product_id=$2
	`, cartID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		_, err = tx.Exec(ctx, `
			INSERT INTO cart_items (id, cart_id, product_id, quantity, position)
			VALUES ($1, $2, $3, $4,
				(SELECT COALESCE(MAX(position)+1, 0) FROM cart_items WHERE cart_id=$2))
		`, uuid.NewString(), cartID, productID, quantity)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.Get(ctx, userID)
}

// Clear empties the item rows but keeps the cart row, so a cleared cart
// stays distinguishable from a user who never had one.
func (r *PostgresRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM cart_items
		USING carts
		WHERE cart_items.cart_id = carts.id AND carts.user_id=$1
	`, userID)
	return err
}

func (r *PostgresRepository) loadItems(ctx context.Context, cartID string) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_id, quantity
		FROM cart_items
		WHERE cart_id=$1
		ORDER BY position
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
