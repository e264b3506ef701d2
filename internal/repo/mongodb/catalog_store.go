package mongodb

import (
	"context"

	"github.com/nguyentranbao-ct/storefront/internal/models"
)

// CatalogStore serves the catalog from the categories, products and reviews
// collections.
type CatalogStore struct {
	categories CategoryRepository
	products   ProductRepository
	reviews    ReviewRepository
}

func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{
		categories: NewCategoryRepository(db),
		products:   NewProductRepository(db),
		reviews:    NewReviewRepository(db),
	}
}

func (s *CatalogStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogStore) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.categories.FindBySlug(ctx, slug)
}

func (s *CatalogStore) ListProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	return s.products.List(ctx, q)
}

func (s *CatalogStore) FindProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return s.products.FindBySlug(ctx, slug)
}

func (s *CatalogStore) FindProductByID(ctx context.Context, id models.ObjectID) (*models.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *CatalogStore) ListReviews(ctx context.Context, productID models.ObjectID) ([]models.Review, error) {
	return s.reviews.ListByProduct(ctx, productID)
}

func (s *CatalogStore) ListRelatedProducts(ctx context.Context, productID, categoryID models.ObjectID, limit int) ([]models.Product, error) {
	return s.products.ListRelated(ctx, productID, categoryID, limit)
}
