// Package postgrest reads the catalog from a hosted PostgREST endpoint, the
// REST API exposed by Supabase style backends.
package postgrest

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/pkg/util"
)

const (
	tableCategories = "categories"
	tableProducts   = "products"
	tableReviews    = "reviews"
)

type Options struct {
	// URL is the REST root, e.g. https://<project>.supabase.co/rest/v1
	URL     string
	APIKey  string
	Timeout time.Duration
}

type CatalogStore struct {
	client *resty.Client
}

func NewCatalogStore(opts Options) (*CatalogStore, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.URL), "/")
	if base == "" {
		return nil, fmt.Errorf("postgrest url is required")
	}
	client := util.NewRestyClient(opts.Timeout).
		SetBaseURL(base).
		SetHeader("Accept", "application/json")
	if opts.APIKey != "" {
		client.
			SetHeader("apikey", opts.APIKey).
			SetAuthToken(opts.APIKey)
	}
	return &CatalogStore{client: client}, nil
}

// productRow accepts prices sent as decimals and rounds them to whole units.
type productRow struct {
	models.Product
	Price float64 `json:"price"`
}

func (r productRow) toProduct() models.Product {
	p := r.Product
	p.Price = int64(math.Round(r.Price))
	p.Normalize()
	return p
}

func (s *CatalogStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	if err := s.get(ctx, tableCategories, nil, &rows); err != nil {
		return nil, err
	}
	return nonNil(rows), nil
}

func (s *CatalogStore) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var rows []models.Category
	params := map[string]string{"slug": eq(slug), "limit": "1"}
	if err := s.get(ctx, tableCategories, params, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, models.ErrNotFound
	}
	return &rows[0], nil
}

func (s *CatalogStore) ListProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	return s.listProducts(ctx, productParams(q))
}

func (s *CatalogStore) FindProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return s.findProduct(ctx, map[string]string{"slug": eq(slug), "limit": "1"})
}

func (s *CatalogStore) findProduct(ctx context.Context, params map[string]string) (*models.Product, error) {
	products, err := s.listProducts(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, models.ErrNotFound
	}
	return &products[0], nil
}

func (s *CatalogStore) FindProductByID(ctx context.Context, id models.ObjectID) (*models.Product, error) {
	return s.findProduct(ctx, map[string]string{"id": eq(id.String()), "limit": "1"})
}

func (s *CatalogStore) ListReviews(ctx context.Context, productID models.ObjectID) ([]models.Review, error) {
	var rows []models.Review
	params := map[string]string{"product_id": eq(productID.String())}
	if err := s.get(ctx, tableReviews, params, &rows); err != nil {
		return nil, err
	}
	return nonNil(rows), nil
}

func (s *CatalogStore) ListRelatedProducts(ctx context.Context, productID, categoryID models.ObjectID, limit int) ([]models.Product, error) {
	return s.listProducts(ctx, relatedParams(productID, categoryID, limit))
}

func (s *CatalogStore) listProducts(ctx context.Context, params map[string]string) ([]models.Product, error) {
	var rows []productRow
	if err := s.get(ctx, tableProducts, params, &rows); err != nil {
		return nil, err
	}
	return util.ConvertList(rows, productRow.toProduct), nil
}

func (s *CatalogStore) get(ctx context.Context, table string, params map[string]string, out any) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParams(params).
		SetResult(out).
		Get("/" + table)
	if err != nil {
		return fmt.Errorf("get %s: %w", table, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return &StatusError{Table: table, Status: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}
	return nil
}

type StatusError struct {
	Table  string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("get %s: status %d: %s", e.Table, e.Status, e.Body)
}

func productParams(q models.ProductQuery) map[string]string {
	params := map[string]string{}
	if q.CategoryID != "" {
		params["category_id"] = eq(q.CategoryID.String())
	}
	if q.Featured {
		params["or"] = "(is_bestseller.eq.true,is_new.eq.true)"
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	return params
}

func relatedParams(productID, categoryID models.ObjectID, limit int) map[string]string {
	params := map[string]string{
		"category_id": eq(categoryID.String()),
		"id":          "neq." + productID.String(),
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	return params
}

func eq(v string) string {
	return "eq." + strings.TrimSpace(v)
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
