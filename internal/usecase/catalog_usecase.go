package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentranbao-ct/storefront/internal/listing"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
	"github.com/nguyentranbao-ct/storefront/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	RelatedProductsLimit = 4
	SearchResultsLimit   = 8
)

// ProductFilter selects products. CategoryID wins over CategorySlug when both
// are set.
type ProductFilter struct {
	CategoryID   models.ObjectID
	CategorySlug string
	Featured     bool
	Limit        int
}

type CatalogUsecase interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetProductByID(ctx context.Context, id models.ObjectID) (*models.Product, error)
	ListReviewsForProduct(ctx context.Context, productID models.ObjectID) ([]models.Review, error)
	ListRelatedProducts(ctx context.Context, productID, categoryID models.ObjectID) ([]models.Product, error)
	GetProductDetail(ctx context.Context, slug string) (*models.ProductDetail, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
}

type catalogUsecase struct {
	store   CatalogStore
	latency *prometheus.HistogramVec
}

func NewCatalogUsecase(store CatalogStore) (CatalogUsecase, error) {
	latency, err := util.GetHistogramVec("catalog_fetch_duration_seconds", "op", "status")
	if err != nil {
		return nil, fmt.Errorf("get histogram vec: %w", err)
	}
	return &catalogUsecase{
		store:   store,
		latency: latency,
	}, nil
}

// fetch times a store call and turns store failures into ErrFetchFailed.
// ErrNotFound passes through untouched.
func fetch[T any](ctx context.Context, uc *catalogUsecase, op string, call func() (T, error)) (T, error) {
	start := time.Now()
	out, err := call()

	status := "ok"
	switch {
	case err == nil:
	case errors.Is(err, models.ErrNotFound):
		status = "not_found"
	default:
		status = "error"
	}
	uc.latency.WithLabelValues(op, status).Observe(time.Since(start).Seconds())

	if err == nil || errors.Is(err, models.ErrNotFound) {
		return out, err
	}
	if ctx.Err() == nil {
		logger.Errorw(ctx, "catalog fetch failed", "op", op, "error", err)
	}
	var zero T
	return zero, fmt.Errorf("%w: %s: %w", models.ErrFetchFailed, op, err)
}

func (uc *catalogUsecase) ListCategories(ctx context.Context) ([]models.Category, error) {
	return fetch(ctx, uc, "list_categories", func() ([]models.Category, error) {
		return uc.store.ListCategories(ctx)
	})
}

func (uc *catalogUsecase) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, models.ErrNotFound
	}
	return fetch(ctx, uc, "get_category", func() (*models.Category, error) {
		return uc.store.FindCategoryBySlug(ctx, slug)
	})
}

// ListProducts resolves a category slug to its id before filtering. An
// unknown slug yields an empty list.
func (uc *catalogUsecase) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	q := models.ProductQuery{CategoryID: filter.CategoryID, Featured: filter.Featured, Limit: filter.Limit}

	slug := strings.TrimSpace(filter.CategorySlug)
	if q.CategoryID == "" && slug != "" && !strings.EqualFold(slug, "all") {
		category, err := uc.GetCategoryBySlug(ctx, slug)
		if errors.Is(err, models.ErrNotFound) {
			return []models.Product{}, nil
		}
		if err != nil {
			return nil, err
		}
		q.CategoryID = category.ID
	}

	return fetch(ctx, uc, "list_products", func() ([]models.Product, error) {
		return uc.store.ListProducts(ctx, q)
	})
}

func (uc *catalogUsecase) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, models.ErrNotFound
	}
	return fetch(ctx, uc, "get_product", func() (*models.Product, error) {
		return uc.store.FindProductBySlug(ctx, slug)
	})
}

func (uc *catalogUsecase) GetProductByID(ctx context.Context, id models.ObjectID) (*models.Product, error) {
	if strings.TrimSpace(id.String()) == "" {
		return nil, models.ErrNotFound
	}
	return fetch(ctx, uc, "get_product_by_id", func() (*models.Product, error) {
		return uc.store.FindProductByID(ctx, id)
	})
}

func (uc *catalogUsecase) ListReviewsForProduct(ctx context.Context, productID models.ObjectID) ([]models.Review, error) {
	return fetch(ctx, uc, "list_reviews", func() ([]models.Review, error) {
		return uc.store.ListReviews(ctx, productID)
	})
}

// ListRelatedProducts returns up to four other products of the same category.
func (uc *catalogUsecase) ListRelatedProducts(ctx context.Context, productID, categoryID models.ObjectID) ([]models.Product, error) {
	products, err := fetch(ctx, uc, "list_related", func() ([]models.Product, error) {
		return uc.store.ListRelatedProducts(ctx, productID, categoryID, RelatedProductsLimit)
	})
	if err != nil {
		return nil, err
	}
	products = util.Filter(products, func(p models.Product) bool { return p.ID != productID })
	if len(products) > RelatedProductsLimit {
		products = products[:RelatedProductsLimit]
	}
	return products, nil
}

// GetProductDetail loads the product, then its reviews and related products
// concurrently.
func (uc *catalogUsecase) GetProductDetail(ctx context.Context, slug string) (*models.ProductDetail, error) {
	product, err := uc.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	detail := &models.ProductDetail{Product: product}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reviews, err := uc.ListReviewsForProduct(gctx, product.ID)
		if err != nil {
			return err
		}
		detail.Reviews = reviews
		return nil
	})
	g.Go(func() error {
		related, err := uc.ListRelatedProducts(gctx, product.ID, product.CategoryID)
		if err != nil {
			return err
		}
		detail.Related = related
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	detail.AverageRating = averageRating(detail.Reviews)
	return detail, nil
}

// Search matches name or description case-insensitively and returns at most
// eight products. A blank query returns nothing without touching the store.
func (uc *catalogUsecase) Search(ctx context.Context, query string) ([]models.Product, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []models.Product{}, nil
	}

	products, err := uc.ListProducts(ctx, ProductFilter{})
	if err != nil {
		return nil, err
	}

	out := make([]models.Product, 0, SearchResultsLimit)
	for _, p := range products {
		if !listing.MatchesText(p, needle) {
			continue
		}
		out = append(out, p)
		if len(out) == SearchResultsLimit {
			break
		}
	}
	return out, nil
}

func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
