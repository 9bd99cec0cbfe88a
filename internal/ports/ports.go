// Package ports declares the seams between the application services and
// their collaborators. Every implementation is injected at construction
// time; nothing holds process-wide client handles.
package ports

import (
	"context"

	"product-catalog/internal/auth"
	"product-catalog/internal/domain"
)

// ProductStore is single-record persistence for catalog products.
// Get returns *domain.NotFoundError when the id is absent. Put is an
// unconditional upsert. UpdateName keeps the store's upsert-on-update
// semantic: a missing id still succeeds and creates a record with only the
// name set. Delete is idempotent.
type ProductStore interface {
	Get(ctx context.Context, productID string) (*domain.Product, error)
	Put(ctx context.Context, p domain.Product) error
	UpdateName(ctx context.Context, productID, name string) (*domain.Product, error)
	Delete(ctx context.Context, productID string) error
}

// OrderStore is single-record persistence for orders plus the secondary-index
// query by owner. UpdateStatus shares the upsert-on-update semantic with
// ProductStore.UpdateName and returns the full updated record.
type OrderStore interface {
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	Put(ctx context.Context, o domain.Order) error
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// EventPublisher fans an event out to subscribers. Fire-and-forget: delivery
// retry belongs to the broker, and duplicates are possible downstream.
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.Event) error
}

// JobEnqueuer hands an order to the work queue for asynchronous processing.
// Delivery is at least once; the consumer must tolerate redelivery.
type JobEnqueuer interface {
	Enqueue(ctx context.Context, o domain.Order) error
}

// ProductService is the role-gated CRUD surface over the catalog.
type ProductService interface {
	Get(ctx context.Context, caller auth.Identity, productID string) (*domain.Product, error)
	Create(ctx context.Context, caller auth.Identity, productID, name string) (*domain.Product, error)
	UpdateName(ctx context.Context, caller auth.Identity, productID, name string) (*domain.Product, error)
	Delete(ctx context.Context, caller auth.Identity, productID string) error
}

// OrderService covers order creation, queries with ownership checks, and the
// explicit status-update path.
type OrderService interface {
	Create(ctx context.Context, caller auth.Identity, products []domain.OrderLine) (*domain.Order, error)
	ListByUser(ctx context.Context, caller auth.Identity) ([]domain.Order, error)
	Get(ctx context.Context, caller auth.Identity, orderID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, caller auth.Identity, orderID string, status domain.OrderStatus) (*domain.Order, error)
}
