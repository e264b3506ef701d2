package postgrest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	path   string
	query  url.Values
	header http.Header
}

func newTestStore(t *testing.T, status int, body string) (*CatalogStore, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, recorded{path: r.URL.Path, query: r.URL.Query(), header: r.Header.Clone()})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	store, err := NewCatalogStore(Options{URL: srv.URL + "/rest/v1/", APIKey: "anon-key"})
	require.NoError(t, err)
	return store, &calls
}

func TestCatalogStore_ListProducts(t *testing.T) {
	store, calls := newTestStore(t, http.StatusOK, `[
		{"id":"p1","name":"Aviator","slug":"aviator","category_id":"c1","price":1299.6,
		 "description":null,"features":{"Movement":"Quartz","Strap":"Leather"},"images":null,
		 "is_bestseller":true,"is_new":false,"in_stock":true,"gender":"men",
		 "created_at":"2024-03-01T10:00:00.123456+00:00","updated_at":"2024-03-01T10:00:00+00:00"}
	]`)

	products, err := store.ListProducts(t.Context(), models.ProductQuery{CategoryID: "c1", Featured: true, Limit: 8})
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, models.ObjectID("p1"), p.ID)
	assert.Equal(t, int64(1300), p.Price)
	assert.Equal(t, models.Features{"Movement: Quartz", "Strap: Leather"}, p.Features)
	assert.Equal(t, []string{}, p.Images)
	assert.Nil(t, p.Description)
	assert.Equal(t, models.GenderMen, p.Gender)
	assert.False(t, p.CreatedAt.IsZero())

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "/rest/v1/products", call.path)
	assert.Equal(t, "*", call.query.Get("select"))
	assert.Equal(t, "eq.c1", call.query.Get("category_id"))
	assert.Equal(t, "(is_bestseller.eq.true,is_new.eq.true)", call.query.Get("or"))
	assert.Equal(t, "8", call.query.Get("limit"))
	assert.Equal(t, "anon-key", call.header.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", call.header.Get("Authorization"))
}

func TestCatalogStore_FindBySlug(t *testing.T) {
	t.Run("category found", func(t *testing.T) {
		store, calls := newTestStore(t, http.StatusOK, `[{"id":"c1","name":"Men","slug":"men","description":"For him","image":null}]`)
		c, err := store.FindCategoryBySlug(t.Context(), "men")
		require.NoError(t, err)
		assert.Equal(t, "Men", c.Name)
		require.NotNil(t, c.Description)
		assert.Equal(t, "For him", *c.Description)
		assert.Equal(t, "eq.men", (*calls)[0].query.Get("slug"))
		assert.Equal(t, "1", (*calls)[0].query.Get("limit"))
	})

	t.Run("category missing", func(t *testing.T) {
		store, _ := newTestStore(t, http.StatusOK, `[]`)
		_, err := store.FindCategoryBySlug(t.Context(), "kids")
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("product missing", func(t *testing.T) {
		store, _ := newTestStore(t, http.StatusOK, `[]`)
		_, err := store.FindProductBySlug(t.Context(), "ghost")
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestCatalogStore_FindProductByID(t *testing.T) {
	store, calls := newTestStore(t, http.StatusOK, `[{"id":"p1","name":"Aviator","price":1200}]`)
	p, err := store.FindProductByID(t.Context(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1200), p.Price)
	assert.Equal(t, "eq.p1", (*calls)[0].query.Get("id"))
}

func TestCatalogStore_Related(t *testing.T) {
	store, calls := newTestStore(t, http.StatusOK, `[]`)
	products, err := store.ListRelatedProducts(t.Context(), "p1", "c1", 4)
	require.NoError(t, err)
	assert.Empty(t, products)

	q := (*calls)[0].query
	assert.Equal(t, "eq.c1", q.Get("category_id"))
	assert.Equal(t, "neq.p1", q.Get("id"))
	assert.Equal(t, "4", q.Get("limit"))
}

func TestCatalogStore_Reviews(t *testing.T) {
	store, calls := newTestStore(t, http.StatusOK, `[{"id":"r1","product_id":"p1","name":"Asha","rating":5,"comment":"Lovely"}]`)
	reviews, err := store.ListReviews(t.Context(), "p1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, "/rest/v1/reviews", (*calls)[0].path)
	assert.Equal(t, "eq.p1", (*calls)[0].query.Get("product_id"))
}

func TestCatalogStore_Errors(t *testing.T) {
	t.Run("error status", func(t *testing.T) {
		store, calls := newTestStore(t, http.StatusServiceUnavailable, `{"message":"down"}`)
		_, err := store.ListCategories(t.Context())
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.Status)
		assert.Len(t, *calls, 1, "no retries")
	})

	t.Run("cancelled context", func(t *testing.T) {
		store, _ := newTestStore(t, http.StatusOK, `[]`)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := store.ListCategories(ctx)
		require.Error(t, err)
	})

	t.Run("missing url", func(t *testing.T) {
		_, err := NewCatalogStore(Options{})
		require.Error(t, err)
	})
}

func TestProductParams(t *testing.T) {
	assert.Empty(t, productParams(models.ProductQuery{}))
	assert.Equal(t, map[string]string{"limit": "3"}, productParams(models.ProductQuery{Limit: 3}))
}
