package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"product-catalog/internal/domain"
	"product-catalog/internal/ports"
)

// OrdersRepo implements ports.OrderStore on Postgres. Order lines live as a
// JSONB document on the order row; they are immutable after creation, so no
// line-item table is needed.
type OrdersRepo struct {
	pool *pgxpool.Pool
}

var _ ports.OrderStore = (*OrdersRepo)(nil)

// NewOrdersRepo constructs an OrdersRepo over the given pool.
func NewOrdersRepo(pool *pgxpool.Pool) *OrdersRepo {
	return &OrdersRepo{pool: pool}
}

// Get retrieves a single order by id.
func (r *OrdersRepo) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `
		SELECT order_id, user_id, products, status, created_at
		FROM orders
		WHERE order_id = $1
	`, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Msg: "Order not found"}
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "orders.get", Err: err}
	}
	return o, nil
}

// Put writes the full record unconditionally.
func (r *OrdersRepo) Put(ctx context.Context, o domain.Order) error {
	lines, err := json.Marshal(o.Products)
	if err != nil {
		return &domain.StorageError{Op: "orders.put", Err: err}
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO orders (order_id, user_id, products, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    products = EXCLUDED.products,
		    status = EXCLUDED.status,
		    created_at = EXCLUDED.created_at
	`, o.OrderID, o.UserID, lines, o.Status, o.CreatedAt)
	if err != nil {
		return &domain.StorageError{Op: "orders.put", Err: err}
	}
	return nil
}

// UpdateStatus writes the status field and returns the full updated record.
// A missing id still succeeds and creates a partial record with only the
// status set (column defaults fill the rest).
func (r *OrdersRepo) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `
		INSERT INTO orders (order_id, status)
		VALUES ($1, $2)
		ON CONFLICT (order_id) DO UPDATE SET status = EXCLUDED.status
		RETURNING order_id, user_id, products, status, created_at
	`, orderID, status))
	if err != nil {
		return nil, &domain.StorageError{Op: "orders.update_status", Err: err}
	}
	return o, nil
}

// ListByUser queries the user_id secondary index. The result may be empty;
// no pagination.
func (r *OrdersRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT order_id, user_id, products, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, &domain.StorageError{Op: "orders.list_by_user", Err: err}
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "orders.list_by_user", Err: err}
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "orders.list_by_user", Err: err}
	}
	return out, nil
}

// scanOrder reads one order row, decoding the JSONB lines document.
func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o     domain.Order
		lines []byte
	)
	if err := row.Scan(&o.OrderID, &o.UserID, &lines, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &o.Products); err != nil {
			return nil, err
		}
	}
	return &o, nil
}
