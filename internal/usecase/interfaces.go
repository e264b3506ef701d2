package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/storefront/internal/models"
)

// CatalogStore is the read-only catalog backend. Single entity lookups return
// models.ErrNotFound when nothing matches.
type CatalogStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error)
	FindProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	FindProductByID(ctx context.Context, id models.ObjectID) (*models.Product, error)
	ListReviews(ctx context.Context, productID models.ObjectID) ([]models.Review, error)
	ListRelatedProducts(ctx context.Context, productID, categoryID models.ObjectID, limit int) ([]models.Product, error)
}
