package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-catalog/internal/domain"
)

func TestProductCreateThenGet(t *testing.T) {
	env := newTestEnv(t)
	admin := bearer("admin-1", "admin")

	rec := env.do(http.MethodPost, "/products", admin, `{"productId":"p-1","name":"Widget"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, domain.Product{ProductID: "p-1", Name: "Widget"}, created)

	rec = env.do(http.MethodGet, "/products/p-1", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created, got)
}

func TestProductGetAllowsViewer(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated,
		env.do(http.MethodPost, "/products", bearer("admin-1", "admin"), `{"productId":"p-1","name":"Widget"}`).Code)

	rec := env.do(http.MethodGet, "/products/p-1", bearer("viewer-1", "viewer"), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductGetMissing(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/products/nope", bearer("admin-1", "admin"), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, errBody(`Could not find product with provided "productId"`), rec.Body.String())
}

func TestProductRoleMatrix(t *testing.T) {
	admin := bearer("u-1", "admin")
	viewer := bearer("u-2", "viewer")
	stranger := bearer("u-3", "courier")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		auth   string
		want   int
	}{
		{"create viewer", http.MethodPost, "/products", `{"productId":"p","name":"n"}`, viewer, http.StatusForbidden},
		{"create no auth", http.MethodPost, "/products", `{"productId":"p","name":"n"}`, "", http.StatusForbidden},
		{"create unknown role", http.MethodPost, "/products", `{"productId":"p","name":"n"}`, stranger, http.StatusForbidden},
		{"create admin", http.MethodPost, "/products", `{"productId":"p","name":"n"}`, admin, http.StatusCreated},
		{"get no auth", http.MethodGet, "/products/p", "", "", http.StatusForbidden},
		{"get unknown role", http.MethodGet, "/products/p", "", stranger, http.StatusForbidden},
		{"update viewer", http.MethodPut, "/products/p", `{"name":"n2"}`, viewer, http.StatusForbidden},
		{"update no auth", http.MethodPut, "/products/p", `{"name":"n2"}`, "", http.StatusForbidden},
		{"update unknown role", http.MethodPut, "/products/p", `{"name":"n2"}`, stranger, http.StatusForbidden},
		{"update admin", http.MethodPut, "/products/p", `{"name":"n2"}`, admin, http.StatusOK},
		{"delete viewer", http.MethodDelete, "/products/p", "", viewer, http.StatusForbidden},
		{"delete no auth", http.MethodDelete, "/products/p", "", "", http.StatusForbidden},
		{"delete unknown role", http.MethodDelete, "/products/p", "", stranger, http.StatusForbidden},
		{"delete admin", http.MethodDelete, "/products/p", "", admin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rec := env.do(tt.method, tt.path, tt.auth, tt.body)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusForbidden {
				assert.JSONEq(t, errBody("Insufficient permissions"), rec.Body.String())
			}
		})
	}
}

func TestProductCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := bearer("admin-1", "admin")

	for _, body := range []string{
		`{}`,
		`{"productId":"p-1"}`,
		`{"name":"Widget"}`,
		`{"productId":"","name":""}`,
	} {
		rec := env.do(http.MethodPost, "/products", admin, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.JSONEq(t, errBody(`"productId" and "name" must be strings`), rec.Body.String())
	}
}

func TestProductUpdateValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := bearer("admin-1", "admin")

	for _, body := range []string{`{}`, `{"name":123}`, `{"name":null}`, `not-json`} {
		rec := env.do(http.MethodPut, "/products/p-1", admin, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.JSONEq(t, errBody(`"name" must be a string`), rec.Body.String())
	}
}

func TestProductUpdateAcceptsEmptyName(t *testing.T) {
	env := newTestEnv(t)
	admin := bearer("admin-1", "admin")

	require.Equal(t, http.StatusCreated,
		env.do(http.MethodPost, "/products", admin, `{"productId":"p-1","name":"Widget"}`).Code)

	// an explicit empty string is a valid name on update, unlike on create
	rec := env.do(http.MethodPut, "/products/p-1", admin, `{"name":""}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.Product{ProductID: "p-1", Name: ""}, got)

	rec = env.do(http.MethodGet, "/products/p-1", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Empty(t, got.Name)
}

func TestProductUpdateMissingCreatesRecord(t *testing.T) {
	env := newTestEnv(t)
	admin := bearer("admin-1", "admin")

	rec := env.do(http.MethodPut, "/products/ghost", admin, `{"name":"Phantom"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.Product{ProductID: "ghost", Name: "Phantom"}, got)

	rec = env.do(http.MethodGet, "/products/ghost", admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductDelete(t *testing.T) {
	env := newTestEnv(t)
	admin := bearer("admin-1", "admin")

	require.Equal(t, http.StatusCreated,
		env.do(http.MethodPost, "/products", admin, `{"productId":"p-1","name":"Widget"}`).Code)

	rec := env.do(http.MethodDelete, "/products/p-1", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Product deleted successfully"}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/products/p-1", admin, "").Code)

	// deleting an absent id is still a success
	rec = env.do(http.MethodDelete, "/products/p-1", admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductCreateOverwritesDuplicate(t *testing.T) {
	env := newTestEnv(t)
	admin := bearer("admin-1", "admin")

	require.Equal(t, http.StatusCreated,
		env.do(http.MethodPost, "/products", admin, `{"productId":"p-1","name":"Widget"}`).Code)
	require.Equal(t, http.StatusCreated,
		env.do(http.MethodPost, "/products", admin, `{"productId":"p-1","name":"Gadget"}`).Code)

	rec := env.do(http.MethodGet, "/products/p-1", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Gadget", got.Name)
}
