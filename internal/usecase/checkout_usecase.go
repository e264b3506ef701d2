package usecase

import (
	"context"
	"fmt"

	"github.com/nguyentranbao-ct/storefront/internal/cart"
	"github.com/nguyentranbao-ct/storefront/internal/checkout"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
)

type CheckoutResult struct {
	URL        string           `json:"url"`
	Message    string           `json:"message"`
	TotalItems int              `json:"total_items"`
	TotalPrice int64            `json:"total_price"`
	Shipping   checkout.Summary `json:"shipping"`
}

type InquiryResult struct {
	URL      string `json:"url"`
	Message  string `json:"message"`
	Quantity int    `json:"quantity"`
	Total    int64  `json:"total"`
}

type CheckoutUsecase interface {
	// Checkout builds the chat handoff for the session's cart. The cart is
	// left untouched.
	Checkout(ctx context.Context, session, pageURL string) (*CheckoutResult, error)
	ProductInquiry(ctx context.Context, slug string, quantity int) (*InquiryResult, error)
}

type checkoutUsecase struct {
	carts    *cart.Manager
	catalog  CatalogUsecase
	composer *checkout.Composer
}

func NewCheckoutUsecase(carts *cart.Manager, catalog CatalogUsecase, composer *checkout.Composer) CheckoutUsecase {
	return &checkoutUsecase{
		carts:    carts,
		catalog:  catalog,
		composer: composer,
	}
}

func (uc *checkoutUsecase) Checkout(ctx context.Context, session, pageURL string) (*CheckoutResult, error) {
	s, err := uc.carts.Get(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	snap := s.Snapshot()
	if snap.IsEmpty() {
		return nil, models.ErrEmptyCart
	}

	msg, err := checkout.OrderMessage(snap, pageURL)
	if err != nil {
		return nil, err
	}

	logger.Infow(ctx, "checkout handoff", "items", snap.TotalItems, "total", snap.TotalPrice)
	return &CheckoutResult{
		URL:        uc.composer.Link(msg),
		Message:    msg,
		TotalItems: snap.TotalItems,
		TotalPrice: snap.TotalPrice,
		Shipping:   uc.composer.Summary(snap.TotalPrice),
	}, nil
}

func (uc *checkoutUsecase) ProductInquiry(ctx context.Context, slug string, quantity int) (*InquiryResult, error) {
	product, err := uc.catalog.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	quantity = models.ClampQuantity(quantity)

	msg, err := uc.composer.ProductInquiryMessage(models.NewCartProduct(product), quantity)
	if err != nil {
		return nil, err
	}
	return &InquiryResult{
		URL:      uc.composer.Link(msg),
		Message:  msg,
		Quantity: quantity,
		Total:    models.CartLineItem{Price: product.Price, Quantity: quantity}.Subtotal(),
	}, nil
}
