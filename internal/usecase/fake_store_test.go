package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/nguyentranbao-ct/storefront/internal/models"
)

var errBackendDown = errors.New("backend down")

// fakeStore is an in-memory CatalogStore. failOps makes the named operations
// fail with errBackendDown.
type fakeStore struct {
	categories []models.Category
	products   []models.Product
	reviews    []models.Review
	failOps    map[string]bool

	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeStore) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[op]++
	if f.failOps[op] {
		return errBackendDown
	}
	return nil
}

func (f *fakeStore) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	if err := f.record("ListCategories"); err != nil {
		return nil, err
	}
	return append([]models.Category{}, f.categories...), nil
}

func (f *fakeStore) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if err := f.record("FindCategoryBySlug"); err != nil {
		return nil, err
	}
	for _, c := range f.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) ListProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	if err := f.record("ListProducts"); err != nil {
		return nil, err
	}
	out := []models.Product{}
	for _, p := range f.products {
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		if q.Featured && !p.IsFeatured() {
			continue
		}
		out = append(out, p)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) FindProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if err := f.record("FindProductBySlug"); err != nil {
		return nil, err
	}
	for _, p := range f.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) FindProductByID(ctx context.Context, id models.ObjectID) (*models.Product, error) {
	if err := f.record("FindProductByID"); err != nil {
		return nil, err
	}
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) ListReviews(ctx context.Context, productID models.ObjectID) ([]models.Review, error) {
	if err := f.record("ListReviews"); err != nil {
		return nil, err
	}
	out := []models.Review{}
	for _, r := range f.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRelatedProducts(ctx context.Context, productID, categoryID models.ObjectID, limit int) ([]models.Product, error) {
	if err := f.record("ListRelatedProducts"); err != nil {
		return nil, err
	}
	out := []models.Product{}
	for _, p := range f.products {
		if p.CategoryID != categoryID || p.ID == productID {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func text(s string) *string { return &s }

func newFakeStore() *fakeStore {
	products := []models.Product{
		{ID: "p1", Slug: "steel-chrono", Name: "Steel Chronograph", CategoryID: "men", Price: 4500, IsBestseller: true, Images: []string{"p1.jpg"}},
		{ID: "p2", Slug: "rose-classic", Name: "Rose Gold Classic", CategoryID: "women", Price: 3200, IsNew: true, Description: text("A slim dress watch")},
		{ID: "p3", Slug: "field", Name: "Field Watch", CategoryID: "men", Price: 1800},
		{ID: "p4", Slug: "pearl", Name: "Pearl Dial", CategoryID: "women", Price: 6100},
	}
	for i := 5; i <= 12; i++ {
		id := models.ObjectID("m" + strings.Repeat("x", i))
		products = append(products, models.Product{ID: id, Slug: id.String(), Name: "Men Watch", CategoryID: "men", Price: int64(i * 100)})
	}
	return &fakeStore{
		categories: []models.Category{
			{ID: "men", Name: "Men", Slug: "men"},
			{ID: "women", Name: "Women", Slug: "women"},
		},
		products: products,
		reviews: []models.Review{
			{ID: "r1", ProductID: "p1", Name: "Asha", Rating: 5},
			{ID: "r2", ProductID: "p1", Name: "Ravi", Rating: 4},
		},
	}
}
