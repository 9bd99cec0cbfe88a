package api

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"product-catalog/internal/shared/logger"
	"product-catalog/internal/shared/memory"
)

type testEnv struct {
	router    *gin.Engine
	products  *memory.ProductStore
	orders    *memory.OrderStore
	publisher *memory.EventPublisher
	queue     *memory.JobQueue
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logger.NewLogger("api-test")
	products := memory.NewProductStore()
	orders := memory.NewOrderStore()
	publisher := memory.NewEventPublisher()
	queue := memory.NewJobQueue(64)

	router := NewRouter(
		NewProductService(products, log),
		NewOrderService(orders, publisher, queue, log),
		log,
	)

	return &testEnv{
		router:    router,
		products:  products,
		orders:    orders,
		publisher: publisher,
		queue:     queue,
	}
}

// bearer builds the Authorization header value the identity middleware parses.
func bearer(sub, role string) string {
	return fmt.Sprintf(`Bearer {"claims":{"sub":%q,"custom:custom:role":%q}}`, sub, role)
}

func (env *testEnv) do(method, path, auth, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func errBody(msg string) string {
	return fmt.Sprintf(`{"error":%q}`, msg)
}
