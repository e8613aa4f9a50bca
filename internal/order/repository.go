package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("order not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository interface {
	GetByID(ctx context.Context, orderID string) (*Detail, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByID resolves the order's product references with an explicit second
// query instead of relying on any ORM-style auto join.
func (r *PostgresRepository) GetByID(ctx context.Context, orderID string) (*Detail, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, ErrNotFound
	}

	var d Detail
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, total_price, order_date FROM orders WHERE id=$1`,
		orderID,
	).Scan(&d.ID, &d.UserID, &d.TotalPrice, &d.OrderDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT oi.quantity, p.id, p.title, p.price, p.description, p.availability, p.category_id
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id=$1
		ORDER BY oi.position
	`, d.ID)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	d.Products = make([]ResolvedItem, 0)
	for rows.Next() {
		var it ResolvedItem
		if err := rows.Scan(&it.Quantity, &it.Product.ID, &it.Product.Title, &it.Product.Price,
			&it.Product.Description, &it.Product.Availability, &it.Product.CategoryID); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}
		d.Products = append(d.Products, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return &d, nil
}

// ListByUser returns the user's order history, most recent first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, total_price, order_date
		FROM orders
		WHERE user_id=$1
		ORDER BY order_date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.OrderDate); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	// Load items per order with explicit queries.
	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Products = items
	}

	return orders, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT product_id, quantity FROM order_items WHERE order_id=$1 ORDER BY position`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
