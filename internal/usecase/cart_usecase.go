package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentranbao-ct/storefront/internal/cart"
	"github.com/nguyentranbao-ct/storefront/internal/checkout"
	"github.com/nguyentranbao-ct/storefront/internal/models"
)

// AddItemRequest names the product by id or slug. The price and display
// fields always come from the catalog.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Slug      string `json:"slug"`
	Quantity  int    `json:"quantity"`
}

// CartView is a cart snapshot with its shipping summary.
type CartView struct {
	models.CartSnapshot
	Shipping checkout.Summary `json:"shipping"`
}

type CartUsecase interface {
	Get(ctx context.Context, session string) (*CartView, error)
	AddItem(ctx context.Context, session string, req AddItemRequest) (*CartView, error)
	UpdateQuantity(ctx context.Context, session, productID string, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, session, productID string) (*CartView, error)
	Clear(ctx context.Context, session string) (*CartView, error)
	// Subscribe streams snapshots of the session's cart until cancel is called.
	Subscribe(ctx context.Context, session string, buffer int) (<-chan models.CartSnapshot, func(), error)
	View(snap models.CartSnapshot) *CartView
}

type cartUsecase struct {
	carts    *cart.Manager
	catalog  CatalogUsecase
	composer *checkout.Composer
}

func NewCartUsecase(carts *cart.Manager, catalog CatalogUsecase, composer *checkout.Composer) CartUsecase {
	return &cartUsecase{
		carts:    carts,
		catalog:  catalog,
		composer: composer,
	}
}

func (uc *cartUsecase) store(ctx context.Context, session string) (*cart.Store, error) {
	s, err := uc.carts.Get(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return s, nil
}

func (uc *cartUsecase) View(snap models.CartSnapshot) *CartView {
	if snap.Items == nil {
		snap.Items = []models.CartLineItem{}
	}
	return &CartView{
		CartSnapshot: snap,
		Shipping:     uc.composer.Summary(snap.TotalPrice),
	}
}

func (uc *cartUsecase) Get(ctx context.Context, session string) (*CartView, error) {
	s, err := uc.store(ctx, session)
	if err != nil {
		return nil, err
	}
	return uc.View(s.Snapshot()), nil
}

func (uc *cartUsecase) AddItem(ctx context.Context, session string, req AddItemRequest) (*CartView, error) {
	s, err := uc.store(ctx, session)
	if err != nil {
		return nil, err
	}
	product, err := uc.resolveProduct(ctx, req)
	if err != nil {
		return nil, err
	}
	snap := s.AddItem(ctx, models.NewCartProduct(product), req.Quantity)
	return uc.View(snap), nil
}

func (uc *cartUsecase) resolveProduct(ctx context.Context, req AddItemRequest) (*models.Product, error) {
	if id := strings.TrimSpace(req.ProductID); id != "" {
		return uc.catalog.GetProductByID(ctx, models.ObjectID(id))
	}
	if slug := strings.TrimSpace(req.Slug); slug != "" {
		return uc.catalog.GetProductBySlug(ctx, slug)
	}
	return nil, fmt.Errorf("%w: product_id or slug is required", models.ErrInvalidInput)
}

func (uc *cartUsecase) UpdateQuantity(ctx context.Context, session, productID string, quantity int) (*CartView, error) {
	s, err := uc.store(ctx, session)
	if err != nil {
		return nil, err
	}
	return uc.View(s.UpdateQuantity(ctx, productID, quantity)), nil
}

func (uc *cartUsecase) RemoveItem(ctx context.Context, session, productID string) (*CartView, error) {
	s, err := uc.store(ctx, session)
	if err != nil {
		return nil, err
	}
	return uc.View(s.RemoveItem(ctx, productID)), nil
}

func (uc *cartUsecase) Clear(ctx context.Context, session string) (*CartView, error) {
	s, err := uc.store(ctx, session)
	if err != nil {
		return nil, err
	}
	return uc.View(s.ClearCart(ctx)), nil
}

func (uc *cartUsecase) Subscribe(ctx context.Context, session string, buffer int) (<-chan models.CartSnapshot, func(), error) {
	s, err := uc.store(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.Subscribe(buffer)
	return ch, cancel, nil
}
