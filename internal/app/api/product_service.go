package api

import (
	"context"

	"product-catalog/internal/auth"
	"product-catalog/internal/domain"
	"product-catalog/internal/ports"
	"product-catalog/internal/shared/logger"
)

// productService implements ports.ProductService: role gate first, then a
// single store operation. No coordination concerns live here.
type productService struct {
	store  ports.ProductStore
	logger *logger.Logger
}

var _ ports.ProductService = (*productService)(nil)

// NewProductService wires the catalog service over its store.
func NewProductService(store ports.ProductStore, logger *logger.Logger) ports.ProductService {
	return &productService{store: store, logger: logger}
}

// Get returns a product for admin or viewer callers.
func (service *productService) Get(ctx context.Context, caller auth.Identity, productID string) (*domain.Product, error) {
	if !auth.IsAllowed(caller.Role, auth.RoleAdmin, auth.RoleViewer) {
		return nil, &domain.AuthorizationError{Msg: "Insufficient permissions"}
	}
	return service.store.Get(ctx, productID)
}

// Create upserts the record unconditionally: a duplicate id silently
// overwrites. Callers relying on create-only semantics must check first.
func (service *productService) Create(ctx context.Context, caller auth.Identity, productID, name string) (*domain.Product, error) {
	if !auth.IsAllowed(caller.Role, auth.RoleAdmin) {
		return nil, &domain.AuthorizationError{Msg: "Insufficient permissions"}
	}
	if productID == "" || name == "" {
		return nil, &domain.ValidationError{Msg: `"productId" and "name" must be strings`}
	}

	p := domain.Product{ProductID: productID, Name: name}
	if err := service.store.Put(ctx, p); err != nil {
		return nil, err
	}

	service.logger.Debug(ctx, "product_created", "Product record written", map[string]any{
		"product_id": productID,
	})
	return &p, nil
}

// UpdateName writes the name field, empty string included; unlike Create
// there is no non-empty rule here. A missing id still succeeds and creates
// a record with only the name set; existence checking is deliberately absent.
func (service *productService) UpdateName(ctx context.Context, caller auth.Identity, productID, name string) (*domain.Product, error) {
	if !auth.IsAllowed(caller.Role, auth.RoleAdmin) {
		return nil, &domain.AuthorizationError{Msg: "Insufficient permissions"}
	}
	return service.store.UpdateName(ctx, productID, name)
}

// Delete removes the record; deleting a missing id is still a success.
func (service *productService) Delete(ctx context.Context, caller auth.Identity, productID string) error {
	if !auth.IsAllowed(caller.Role, auth.RoleAdmin) {
		return &domain.AuthorizationError{Msg: "Insufficient permissions"}
	}
	return service.store.Delete(ctx, productID)
}
