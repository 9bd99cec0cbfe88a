package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"product-catalog/internal/domain"
	"product-catalog/internal/ports"
)

// ProductsRepo implements ports.ProductStore on Postgres.
type ProductsRepo struct {
	pool *pgxpool.Pool
}

var _ ports.ProductStore = (*ProductsRepo)(nil)

// NewProductsRepo constructs a ProductsRepo over the given pool.
func NewProductsRepo(pool *pgxpool.Pool) *ProductsRepo {
	return &ProductsRepo{pool: pool}
}

// Get retrieves a single product by id.
func (r *ProductsRepo) Get(ctx context.Context, productID string) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, `
		SELECT product_id, name
		FROM products
		WHERE product_id = $1
	`, productID).Scan(&p.ProductID, &p.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Msg: `Could not find product with provided "productId"`}
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "products.get", Err: err}
	}
	return &p, nil
}

// Put writes the record unconditionally, overwriting any existing one with
// the same id.
func (r *ProductsRepo) Put(ctx context.Context, p domain.Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (product_id, name)
		VALUES ($1, $2)
		ON CONFLICT (product_id) DO UPDATE SET name = EXCLUDED.name
	`, p.ProductID, p.Name)
	if err != nil {
		return &domain.StorageError{Op: "products.put", Err: err}
	}
	return nil
}

// UpdateName writes the name field and returns the full record. A missing id
// still succeeds and creates a record with only the name set.
func (r *ProductsRepo) UpdateName(ctx context.Context, productID, name string) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (product_id, name)
		VALUES ($1, $2)
		ON CONFLICT (product_id) DO UPDATE SET name = EXCLUDED.name
		RETURNING product_id, name
	`, productID, name).Scan(&p.ProductID, &p.Name)
	if err != nil {
		return nil, &domain.StorageError{Op: "products.update_name", Err: err}
	}
	return &p, nil
}

// Delete removes the record; deleting a missing id is not an error.
func (r *ProductsRepo) Delete(ctx context.Context, productID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return &domain.StorageError{Op: "products.delete", Err: err}
	}
	return nil
}
