package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simrandung/Ecommerce-API/internal/catalog"
)

func TestListCategories_OK(t *testing.T) {
	r, deps := newTestRouter(t)
	deps.catalog.listCategoriesFunc = func(ctx context.Context) ([]catalog.Category, error) {
		return []catalog.Category{{ID: "c1", Name: "Books"}}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []catalog.Category
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "Books", got[0].Name)
}

func TestListCategories_StoreError(t *testing.T) {
	r, deps := newTestRouter(t)
	deps.catalog.listCategoriesFunc = func(ctx context.Context) ([]catalog.Category, error) {
		return nil, errors.New("connection refused")
	}

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body, "error")
}

func TestListProducts_EmptyCategoryIsEmptyList(t *testing.T) {
	r, deps := newTestRouter(t)
	deps.catalog.listByCategory = func(ctx context.Context, categoryID string) ([]catalog.ProductSummary, error) {
		return []catalog.ProductSummary{}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/products/7b8e7a9e-3a54-4a9c-9a3c-0f1c2d3e4f5a", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestListProducts_Projection(t *testing.T) {
	r, deps := newTestRouter(t)
	deps.catalog.listByCategory = func(ctx context.Context, categoryID string) ([]catalog.ProductSummary, error) {
		return []catalog.ProductSummary{
			{Title: "Mug", Price: 9.5, Description: "Ceramic", Availability: true},
		}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/products/7b8e7a9e-3a54-4a9c-9a3c-0f1c2d3e4f5a", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "Mug", got[0]["title"])
	// The projection must not leak ids.
	assert.NotContains(t, got[0], "id")
	assert.NotContains(t, got[0], "categoryId")
}

func TestGetProduct_NotFound(t *testing.T) {
	r, deps := newTestRouter(t)
	deps.catalog.getProductFunc = func(ctx context.Context, productID string) (catalog.Product, error) {
		return catalog.Product{}, catalog.ErrNotFound
	}

	req := httptest.NewRequest(http.MethodGet, "/product/does-not-exist", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProduct_OK(t *testing.T) {
	r, deps := newTestRouter(t)
	deps.catalog.getProductFunc = func(ctx context.Context, productID string) (catalog.Product, error) {
		return catalog.Product{ID: productID, Title: "Mug", Price: 9.5, Availability: true, CategoryID: "c1"}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/product/p1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got catalog.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "Mug", got.Title)
}

func TestGetProduct_StoreError(t *testing.T) {
	r, deps := newTestRouter(t)
	deps.catalog.getProductFunc = func(ctx context.Context, productID string) (catalog.Product, error) {
		return catalog.Product{}, errors.New("connection refused")
	}

	req := httptest.NewRequest(http.MethodGet, "/product/p1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
