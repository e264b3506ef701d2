package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nguyentranbao-ct/storefront/internal/server/middleware"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
	"github.com/nguyentranbao-ct/storefront/pkg/util"
)

type CheckoutController interface {
	Checkout(c echo.Context, req CheckoutRequest) (*usecase.CheckoutResult, error)
	Redirect(c echo.Context, req CheckoutRequest) error
	Inquiry(c echo.Context, req InquiryRequest) (*usecase.InquiryResult, error)
}

type checkoutController struct {
	checkout usecase.CheckoutUsecase
	handoffs *prometheus.CounterVec
}

func NewCheckoutController(checkout usecase.CheckoutUsecase) (CheckoutController, error) {
	handoffs, err := util.GetCounterVec("checkout_handoffs_total", "kind")
	if err != nil {
		return nil, err
	}
	return &checkoutController{
		checkout: checkout,
		handoffs: handoffs,
	}, nil
}

// CheckoutRequest takes the page link to quote in the message. The redirect
// endpoint reads it from the query, the JSON endpoint from the body.
type CheckoutRequest struct {
	PageURL string `json:"page_url" query:"page_url" validate:"omitempty,weburl"`
}

type InquiryRequest struct {
	Slug     string `param:"slug" validate:"required"`
	Quantity int    `query:"quantity"`
}

func (h *checkoutController) Checkout(c echo.Context, req CheckoutRequest) (*usecase.CheckoutResult, error) {
	res, err := h.checkout.Checkout(c.Request().Context(), middleware.GetCartSession(c), req.PageURL)
	if err != nil {
		return nil, err
	}
	h.handoffs.WithLabelValues("checkout").Inc()
	return res, nil
}

// Redirect sends the browser straight to the chat deep link.
func (h *checkoutController) Redirect(c echo.Context, req CheckoutRequest) error {
	ctx := c.Request().Context()
	res, err := h.checkout.Checkout(ctx, middleware.GetCartSession(c), req.PageURL)
	if err != nil {
		return err
	}
	h.handoffs.WithLabelValues("redirect").Inc()
	logger.Infow(ctx, "checkout redirect", "total_items", res.TotalItems, "total_price", res.TotalPrice)
	return c.Redirect(http.StatusFound, res.URL)
}

func (h *checkoutController) Inquiry(c echo.Context, req InquiryRequest) (*usecase.InquiryResult, error) {
	res, err := h.checkout.ProductInquiry(c.Request().Context(), req.Slug, req.Quantity)
	if err != nil {
		return nil, err
	}
	h.handoffs.WithLabelValues("inquiry").Inc()
	return res, nil
}
