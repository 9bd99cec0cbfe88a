package api

import (
	"context"

	"product-catalog/internal/auth"
	"product-catalog/internal/domain"
	"product-catalog/internal/ports"
	"product-catalog/internal/shared/logger"
)

// orderService implements ports.OrderService. Creation is an ordered sequence
// of independent side effects (persist, publish, enqueue) with no
// compensation: a failure after step i leaves steps <i durably applied.
type orderService struct {
	store     ports.OrderStore
	publisher ports.EventPublisher
	enqueuer  ports.JobEnqueuer
	logger    *logger.Logger
}

var _ ports.OrderService = (*orderService)(nil)

// NewOrderService wires the order service over its collaborators.
func NewOrderService(
	store ports.OrderStore,
	publisher ports.EventPublisher,
	enqueuer ports.JobEnqueuer,
	logger *logger.Logger,
) ports.OrderService {
	return &orderService{
		store:     store,
		publisher: publisher,
		enqueuer:  enqueuer,
		logger:    logger,
	}
}

// Create validates and persists a new PENDING order, publishes ORDER_CREATED,
// and enqueues the processing job.
func (service *orderService) Create(ctx context.Context, caller auth.Identity, products []domain.OrderLine) (*domain.Order, error) {
	if caller.Anonymous() {
		return nil, &domain.AuthenticationError{Msg: "Unauthorized - User ID not found"}
	}
	if len(products) == 0 {
		return nil, &domain.ValidationError{Msg: "Products array is required"}
	}

	order := domain.NewOrder(caller.UserID, products)

	if err := service.store.Put(ctx, order); err != nil {
		return nil, err
	}
	if err := service.publisher.Publish(ctx, domain.Event{Type: domain.EventOrderCreated, Order: order}); err != nil {
		return nil, err
	}
	if err := service.enqueuer.Enqueue(ctx, order); err != nil {
		return nil, err
	}

	service.logger.Debug(ctx, "order_created", "Order persisted and dispatched", map[string]any{
		"order_id": order.OrderID,
		"user_id":  order.UserID,
		"products": len(order.Products),
	})
	return &order, nil
}

// ListByUser queries the secondary index keyed by the caller's user id.
func (service *orderService) ListByUser(ctx context.Context, caller auth.Identity) ([]domain.Order, error) {
	if caller.Anonymous() {
		return nil, &domain.AuthenticationError{Msg: "Unauthorized - User ID not found"}
	}
	return service.store.ListByUser(ctx, caller.UserID)
}

// Get returns a single order with an ownership check. There is no admin
// bypass here; only the creating user may read the order.
func (service *orderService) Get(ctx context.Context, caller auth.Identity, orderID string) (*domain.Order, error) {
	if caller.Anonymous() {
		return nil, &domain.AuthenticationError{Msg: "Unauthorized - User ID not found"}
	}

	order, err := service.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != caller.UserID {
		return nil, &domain.AuthorizationError{Msg: "Forbidden - Not authorized to view this order"}
	}
	return order, nil
}

// UpdateStatus applies any of the four known statuses regardless of the
// order's current one. This is a pure membership check, distinct from the
// worker's linear walk; the two paths deliberately disagree on legality.
func (service *orderService) UpdateStatus(ctx context.Context, caller auth.Identity, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if caller.Anonymous() {
		return nil, &domain.AuthenticationError{Msg: "Unauthorized - User ID not found"}
	}
	if !domain.ValidStatus(status) {
		return nil, &domain.ValidationError{Msg: "Invalid status"}
	}

	updated, err := service.store.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	if err := service.publisher.Publish(ctx, domain.Event{Type: domain.EventOrderStatusUpdated, Order: *updated}); err != nil {
		return nil, err
	}

	service.logger.Debug(ctx, "order_status_updated", "Order status written", map[string]any{
		"order_id": orderID,
		"status":   string(status),
	})
	return updated, nil
}
