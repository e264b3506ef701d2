package server

import (
	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront/internal/server/middleware"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
)

// CartController handlers act on the cart of the caller's session.
type CartController interface {
	GetCart(c echo.Context, req struct{}) (*usecase.CartView, error)
	AddItem(c echo.Context, req AddItemRequest) (*usecase.CartView, error)
	UpdateItem(c echo.Context, req UpdateItemRequest) (*usecase.CartView, error)
	RemoveItem(c echo.Context, req ItemRequest) (*usecase.CartView, error)
	ClearCart(c echo.Context, req struct{}) (*usecase.CartView, error)
}

type cartController struct {
	cart usecase.CartUsecase
}

func NewCartController(cart usecase.CartUsecase) CartController {
	return &cartController{cart: cart}
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required_without=Slug"`
	Slug      string `json:"slug" validate:"required_without=ProductID"`
	Quantity  int    `json:"quantity" validate:"lte=999"`
}

type ItemRequest struct {
	ProductID string `param:"id" json:"-" validate:"required"`
}

type UpdateItemRequest struct {
	ProductID string `param:"id" json:"-" validate:"required"`
	Quantity  int    `json:"quantity" validate:"lte=999"`
}

func (h *cartController) GetCart(c echo.Context, _ struct{}) (*usecase.CartView, error) {
	return h.cart.Get(c.Request().Context(), middleware.GetCartSession(c))
}

func (h *cartController) AddItem(c echo.Context, req AddItemRequest) (*usecase.CartView, error) {
	return h.cart.AddItem(c.Request().Context(), middleware.GetCartSession(c), usecase.AddItemRequest{
		ProductID: req.ProductID,
		Slug:      req.Slug,
		Quantity:  req.Quantity,
	})
}

func (h *cartController) UpdateItem(c echo.Context, req UpdateItemRequest) (*usecase.CartView, error) {
	return h.cart.UpdateQuantity(c.Request().Context(), middleware.GetCartSession(c), req.ProductID, req.Quantity)
}

func (h *cartController) RemoveItem(c echo.Context, req ItemRequest) (*usecase.CartView, error) {
	return h.cart.RemoveItem(c.Request().Context(), middleware.GetCartSession(c), req.ProductID)
}

func (h *cartController) ClearCart(c echo.Context, _ struct{}) (*usecase.CartView, error) {
	return h.cart.Clear(c.Request().Context(), middleware.GetCartSession(c))
}
