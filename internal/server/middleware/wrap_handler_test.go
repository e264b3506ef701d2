package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nguyentranbao-ct/storefront/internal/models"
)

type addItemRequest struct {
	Slug     string `json:"slug" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
	Source   string `header:"x-source"`
}

type checkoutRequest struct {
	PageURL string `json:"page_url" validate:"omitempty,weburl"`
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(zap.NewNop().Sugar())
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("x-source", "web")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestWrapHandler(t *testing.T) {
	e := newTestEcho()
	e.POST("/cart/items", WrapHandler(func(c echo.Context, req addItemRequest) (map[string]any, error) {
		if req.Slug == "ghost" {
			return nil, models.ErrNotFound
		}
		return map[string]any{"slug": req.Slug, "quantity": req.Quantity, "source": req.Source}, nil
	}))
	e.POST("/created", WrapHandler(func(c echo.Context, req struct{}) (*Response, error) {
		return &Response{Status: http.StatusCreated, Success: true, Data: "ok"}, nil
	}))

	rec := doJSON(e, http.MethodPost, "/cart/items", `{"slug":"field","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"slug":"field","quantity":2,"source":"web"}}`, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/cart/items", `{"quantity":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "slug")

	rec = doJSON(e, http.MethodPost, "/cart/items", `{"slug":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodPost, "/created", `{}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":"ok"}`, rec.Body.String())
}

func TestWrapNoContent(t *testing.T) {
	e := newTestEcho()
	e.POST("/checkout", WrapNoContent(func(c echo.Context, req checkoutRequest) error {
		if req.PageURL == "" {
			return c.Redirect(http.StatusFound, "https://wa.me/1")
		}
		return nil
	}))
	e.POST("/fail", WrapNoContent(func(c echo.Context, req struct{}) error {
		return errors.New("boom")
	}))

	rec := doJSON(e, http.MethodPost, "/checkout", `{"page_url":"https://shop.example/cart"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodPost, "/checkout", `{}`)
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = doJSON(e, http.MethodPost, "/checkout", `{"page_url":"javascript:alert(1)"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/fail", `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWrapHandler_RejectsNonStruct(t *testing.T) {
	assert.Panics(t, func() {
		WrapHandler(func(c echo.Context, id string) (string, error) { return id, nil })
	})
}
