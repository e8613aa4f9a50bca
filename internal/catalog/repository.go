package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListByCategory(ctx context.Context, categoryID string) ([]ProductSummary, error)
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) ListByCategory(ctx context.Context, categoryID string) ([]ProductSummary, error) {
	// A malformed id would fail the uuid cast in postgres; treat it as no match.
	if _, err := uuid.Parse(categoryID); err != nil {
		return make([]ProductSummary, 0), nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT title, price, description, availability
		FROM products
		WHERE category_id=$1
		ORDER BY title
	`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// An unknown category is an empty listing, not an error.
	products := make([]ProductSummary, 0)
	for rows.Next() {
		var p ProductSummary
		if err := rows.Scan(&p.Title, &p.Price, &p.Description, &p.Availability); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) GetProduct(ctx context.Context, productID string) (Product, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return Product{}, ErrNotFound
	}
	var p Product
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, price, description, availability, category_id
		FROM products
		WHERE id=$1
	`, productID)
	if err := row.Scan(&p.ID, &p.Title, &p.Price, &p.Description, &p.Availability, &p.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}
