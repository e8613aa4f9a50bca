package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrCartEmpty    = errors.New("cart is empty")
)

// PlacementService turns a user's cart into an order. The whole flow runs in
// one transaction with the cart row locked, so two concurrent placements for
// the same user serialize and cannot both consume the same cart.
type PlacementService struct {
	pool DBPool
}

func NewPlacementService(pool DBPool) *PlacementService {
	return &PlacementService{pool: pool}
}

func (s *PlacementService) PlaceOrder(ctx context.Context, userID string) (*Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cartID string
	err = tx.QueryRow(ctx, `SELECT id FROM carts WHERE user_id=$1 FOR UPDATE`, userID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("lock cart: %w", err)
	}

	// Each line resolves to its own product row, so duplicate product ids in
	// a cart price correctly and the total never goes through a second search.
	type line struct {
		productID string
		quantity  int
		price     float64
	}
	rows, err := tx.Query(ctx, `
		SELECT ci.product_id, ci.quantity, p.price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id=$1
		ORDER BY ci.position
	`, cartID)
	if err != nil {
		return nil, fmt.Errorf("select cart items: %w", err)
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.quantity, &l.price); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	o := &Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		OrderDate: time.Now().UTC(),
	}
	for _, l := range lines {
		o.TotalPrice += float64(l.quantity) * l.price
		o.Products = append(o.Products, Item{ProductID: l.productID, Quantity: l.quantity})
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, user_id, total_price, order_date) VALUES ($1, $2, $3, $4)`,
		o.ID, o.UserID, o.TotalPrice, o.OrderDate,
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for i, it := range o.Products {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, product_id, quantity, position) VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), o.ID, it.ProductID, it.Quantity, i,
		)
		if err != nil {
			return nil, fmt.Errorf("insert order_item: %w", err)
		}
	}

	// Clear the cart only after the order rows are in.
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return o, nil
}
