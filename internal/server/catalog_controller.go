package server

import (
	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront/internal/listing"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
)

// CatalogController handlers are registered through middleware.WrapHandler.
type CatalogController interface {
	ListCategories(c echo.Context, req struct{}) ([]models.Category, error)
	BrowseCategory(c echo.Context, req ListingRequest) (*usecase.BrowseResult, error)
	Browse(c echo.Context, req ListingRequest) (*usecase.BrowseResult, error)
	ListProducts(c echo.Context, req ProductListRequest) ([]models.Product, error)
	Search(c echo.Context, req SearchRequest) ([]models.Product, error)
	GetProduct(c echo.Context, req ProductRequest) (*models.ProductDetail, error)
	ListReviews(c echo.Context, req ProductRequest) ([]models.Review, error)
	ListRelated(c echo.Context, req ProductRequest) ([]models.Product, error)
}

type catalogController struct {
	catalog usecase.CatalogUsecase
	shop    usecase.ShopUsecase
}

func NewCatalogController(catalog usecase.CatalogUsecase, shop usecase.ShopUsecase) CatalogController {
	return &catalogController{
		catalog: catalog,
		shop:    shop,
	}
}

// ListingRequest is the shop and category query. Price bounds are inclusive;
// an absent or zero min_price/max_price leaves that side unbounded, so a
// [0, 0] range cannot be requested.
type ListingRequest struct {
	Slug     string `param:"slug"`
	Text     string `query:"q"`
	Category string `query:"category"`
	MinPrice int64  `query:"min_price" validate:"gte=0"`
	MaxPrice int64  `query:"max_price" validate:"gte=0"`
	Sort     string `query:"sort"`
	Page     int    `query:"page"`
}

func (r ListingRequest) query() listing.Query {
	return listing.Query{
		Text:         r.Text,
		CategorySlug: r.Category,
		MinPrice:     r.MinPrice,
		MaxPrice:     r.MaxPrice,
		Sort:         listing.ParseSort(r.Sort),
		Page:         r.Page,
	}
}

type ProductListRequest struct {
	Category string `query:"category"`
	Featured bool   `query:"featured"`
	Limit    int    `query:"limit" validate:"gte=0,lte=100"`
}

type SearchRequest struct {
	Text string `query:"q"`
}

type ProductRequest struct {
	Slug string `param:"slug" validate:"required"`
}

func (h *catalogController) ListCategories(c echo.Context, _ struct{}) ([]models.Category, error) {
	return h.catalog.ListCategories(c.Request().Context())
}

func (h *catalogController) BrowseCategory(c echo.Context, req ListingRequest) (*usecase.BrowseResult, error) {
	return h.shop.BrowseCategory(c.Request().Context(), req.Slug, req.query())
}

func (h *catalogController) Browse(c echo.Context, req ListingRequest) (*usecase.BrowseResult, error) {
	return h.shop.Browse(c.Request().Context(), req.query())
}

func (h *catalogController) ListProducts(c echo.Context, req ProductListRequest) ([]models.Product, error) {
	return h.catalog.ListProducts(c.Request().Context(), usecase.ProductFilter{
		CategorySlug: req.Category,
		Featured:     req.Featured,
		Limit:        req.Limit,
	})
}

func (h *catalogController) Search(c echo.Context, req SearchRequest) ([]models.Product, error) {
	return h.catalog.Search(c.Request().Context(), req.Text)
}

func (h *catalogController) GetProduct(c echo.Context, req ProductRequest) (*models.ProductDetail, error) {
	return h.catalog.GetProductDetail(c.Request().Context(), req.Slug)
}

func (h *catalogController) ListReviews(c echo.Context, req ProductRequest) ([]models.Review, error) {
	ctx := c.Request().Context()
	product, err := h.catalog.GetProductBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	return h.catalog.ListReviewsForProduct(ctx, product.ID)
}

func (h *catalogController) ListRelated(c echo.Context, req ProductRequest) ([]models.Product, error) {
	ctx := c.Request().Context()
	product, err := h.catalog.GetProductBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	return h.catalog.ListRelatedProducts(ctx, product.ID, product.CategoryID)
}
