package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/storefront/internal/listing"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"golang.org/x/sync/errgroup"
)

type BrowseResult struct {
	listing.Page
	Category   *models.Category  `json:"category,omitempty"`
	Categories []models.Category `json:"categories"`
}

type ShopUsecase interface {
	// Browse lists the whole shop with the listing controls applied.
	Browse(ctx context.Context, q listing.Query) (*BrowseResult, error)
	// BrowseCategory lists one category. Unknown slugs return ErrNotFound.
	BrowseCategory(ctx context.Context, slug string, q listing.Query) (*BrowseResult, error)
}

type shopUsecase struct {
	catalog  CatalogUsecase
	pageSize int
}

func NewShopUsecase(catalog CatalogUsecase, pageSize int) ShopUsecase {
	if pageSize < 1 {
		pageSize = listing.DefaultPageSize
	}
	return &shopUsecase{catalog: catalog, pageSize: pageSize}
}

func (uc *shopUsecase) Browse(ctx context.Context, q listing.Query) (*BrowseResult, error) {
	var (
		categories []models.Category
		products   []models.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = uc.catalog.ListCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = uc.catalog.ListProducts(gctx, ProductFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &BrowseResult{
		Page:       uc.page(products, categories, q),
		Categories: categories,
	}, nil
}

func (uc *shopUsecase) page(products []models.Product, categories []models.Category, q listing.Query) listing.Page {
	state := listing.NewState(uc.pageSize)
	state.Update(q)
	return state.Result(products, categories)
}

func (uc *shopUsecase) BrowseCategory(ctx context.Context, slug string, q listing.Query) (*BrowseResult, error) {
	category, err := uc.catalog.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	products, err := uc.catalog.ListProducts(ctx, ProductFilter{CategoryID: category.ID})
	if err != nil {
		return nil, err
	}

	// products are already scoped to the category
	q.CategorySlug = ""
	categories := []models.Category{*category}
	return &BrowseResult{
		Page:       uc.page(products, categories, q),
		Category:   category,
		Categories: categories,
	}, nil
}
