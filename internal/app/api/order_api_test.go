package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-catalog/internal/domain"
	"product-catalog/internal/ports"
	"product-catalog/internal/shared/logger"
	"product-catalog/internal/shared/memory"
)

func TestOrderCreate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/orders", bearer("user-1", "viewer"),
		`{"products":[{"productId":"p-1","quantity":2},{"productId":"p-2","quantity":1}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.NotEmpty(t, order.OrderID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, []domain.OrderLine{{ProductID: "p-1", Quantity: 2}, {ProductID: "p-2", Quantity: 1}}, order.Products)

	events := env.publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventOrderCreated, events[0].Type)
	assert.Equal(t, order.OrderID, events[0].Order.OrderID)

	queued := <-env.queue.Jobs()
	assert.Equal(t, order.OrderID, queued.OrderID)
}

func TestOrderCreateUnauthenticated(t *testing.T) {
	env := newTestEnv(t)

	for _, auth := range []string{"", "Bearer not-json", `Bearer {"claims":{"custom:custom:role":"admin"}}`} {
		rec := env.do(http.MethodPost, "/orders", auth, `{"products":[{"productId":"p-1","quantity":1}]}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, errBody("Unauthorized - User ID not found"), rec.Body.String())
	}
}

func TestOrderCreateEmptyProducts(t *testing.T) {
	env := newTestEnv(t)
	token := bearer("user-1", "viewer")

	for _, body := range []string{`{}`, `{"products":[]}`, `not-json`} {
		rec := env.do(http.MethodPost, "/orders", token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.JSONEq(t, errBody("Products array is required"), rec.Body.String())
	}
}

func TestOrderCreateDistinctIDs(t *testing.T) {
	env := newTestEnv(t)
	token := bearer("user-1", "viewer")

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		rec := env.do(http.MethodPost, "/orders", token, `{"products":[{"productId":"p","quantity":1}]}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var order domain.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
		require.False(t, seen[order.OrderID])
		seen[order.OrderID] = true
	}
}

func TestOrderList(t *testing.T) {
	env := newTestEnv(t)
	mine := bearer("user-1", "viewer")
	theirs := bearer("user-2", "viewer")

	require.Equal(t, http.StatusCreated,
		env.do(http.MethodPost, "/orders", mine, `{"products":[{"productId":"a","quantity":1}]}`).Code)
	require.Equal(t, http.StatusCreated,
		env.do(http.MethodPost, "/orders", theirs, `{"products":[{"productId":"b","quantity":1}]}`).Code)

	rec := env.do(http.MethodGet, "/orders", mine, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "user-1", orders[0].UserID)
}

func TestOrderListEmptyIsArray(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/orders", bearer("user-1", "viewer"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestOrderListUnauthenticated(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/orders", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, errBody("Unauthorized - User ID not found"), rec.Body.String())
}

func TestOrderGetOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := bearer("user-1", "viewer")

	rec := env.do(http.MethodPost, "/orders", owner, `{"products":[{"productId":"a","quantity":1}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	rec = env.do(http.MethodGet, "/orders/"+order.OrderID, owner, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// no admin bypass on single-order reads
	rec = env.do(http.MethodGet, "/orders/"+order.OrderID, bearer("admin-1", "admin"), "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, errBody("Forbidden - Not authorized to view this order"), rec.Body.String())
}

func TestOrderGetMissing(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/orders/nope", bearer("user-1", "viewer"), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, errBody("Order not found"), rec.Body.String())
}

func TestOrderUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	owner := bearer("user-1", "viewer")

	rec := env.do(http.MethodPost, "/orders", owner, `{"products":[{"productId":"a","quantity":1}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	rec = env.do(http.MethodPut, "/orders/"+order.OrderID+"/status", owner, `{"status":"CANCELLED"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, domain.StatusCancelled, updated.Status)
	assert.Equal(t, order.UserID, updated.UserID)

	events := env.publisher.Events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventOrderStatusUpdated, events[1].Type)
	assert.Equal(t, domain.StatusCancelled, events[1].Order.Status)
}

func TestOrderUpdateStatusAnyTransition(t *testing.T) {
	env := newTestEnv(t)
	owner := bearer("user-1", "viewer")

	rec := env.do(http.MethodPost, "/orders", owner, `{"products":[{"productId":"a","quantity":1}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	// no transition graph here: COMPLETED can go straight back to PENDING
	for _, status := range []string{"COMPLETED", "PENDING", "PROCESSING"} {
		rec = env.do(http.MethodPut, "/orders/"+order.OrderID+"/status", owner, `{"status":"`+status+`"}`)
		require.Equal(t, http.StatusOK, rec.Code, "status %s", status)
	}
}

func TestOrderUpdateStatusInvalid(t *testing.T) {
	env := newTestEnv(t)
	owner := bearer("user-1", "viewer")

	for _, body := range []string{`{"status":"SHIPPED"}`, `{"status":""}`, `{}`, `not-json`} {
		rec := env.do(http.MethodPut, "/orders/some-id/status", owner, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.JSONEq(t, errBody("Invalid status"), rec.Body.String())
	}
}

func TestOrderUpdateStatusUnauthenticated(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPut, "/orders/some-id/status", "", `{"status":"PENDING"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, errBody("Unauthorized - User ID not found"), rec.Body.String())
}

func TestOrderUpdateStatusAnyAuthenticatedCaller(t *testing.T) {
	env := newTestEnv(t)
	owner := bearer("user-1", "viewer")

	rec := env.do(http.MethodPost, "/orders", owner, `{"products":[{"productId":"a","quantity":1}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	// authentication only: a different user may update the status
	rec = env.do(http.MethodPut, "/orders/"+order.OrderID+"/status", bearer("user-2", "viewer"), `{"status":"CANCELLED"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// failingOrderStore returns a storage error from every operation.
type failingOrderStore struct{}

var errDown = errors.New("connection refused")

func (failingOrderStore) Get(context.Context, string) (*domain.Order, error) {
	return nil, &domain.StorageError{Op: "orders.get", Err: errDown}
}

func (failingOrderStore) Put(context.Context, domain.Order) error {
	return &domain.StorageError{Op: "orders.put", Err: errDown}
}

func (failingOrderStore) UpdateStatus(context.Context, string, domain.OrderStatus) (*domain.Order, error) {
	return nil, &domain.StorageError{Op: "orders.update_status", Err: errDown}
}

func (failingOrderStore) ListByUser(context.Context, string) ([]domain.Order, error) {
	return nil, &domain.StorageError{Op: "orders.list_by_user", Err: errDown}
}

func TestOrderStorageFailures(t *testing.T) {
	log := logger.NewLogger("api-test")
	env := &testEnv{
		router: NewRouter(
			NewProductService(memory.NewProductStore(), log),
			NewOrderService(failingOrderStore{}, memory.NewEventPublisher(), memory.NewJobQueue(1), log),
			log,
		),
	}
	token := bearer("user-1", "viewer")

	tests := []struct {
		method   string
		path     string
		body     string
		fallback string
	}{
		{http.MethodPost, "/orders", `{"products":[{"productId":"a","quantity":1}]}`, "Could not create order"},
		{http.MethodGet, "/orders", "", "Could not retrieve orders"},
		{http.MethodGet, "/orders/some-id", "", "Could not retrieve order"},
		{http.MethodPut, "/orders/some-id/status", `{"status":"PENDING"}`, "Could not update order status"},
	}

	for _, tt := range tests {
		rec := env.do(tt.method, tt.path, token, tt.body)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, "%s %s", tt.method, tt.path)
		assert.JSONEq(t, errBody(tt.fallback), rec.Body.String())
	}
}

var _ ports.OrderStore = failingOrderStore{}
