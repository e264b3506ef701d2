package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nguyentranbao-ct/storefront/internal/models"
)

func TestLogRequest(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core).Sugar()

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(log)
	e.Use(
		RequestIDWithConfig(RequestIDConfig{GenerateFunc: func() string { return "req-1" }}),
		CartSession(CartSessionConfig{GenerateFunc: func() string { return "cart-1" }}),
		LogRequest(LogRequestConfig{
			Logger:       log,
			RequestBody:  func(echo.Context) bool { return true },
			ResponseBody: func(echo.Context) bool { return true },
		}),
	)
	e.POST("/api/v1/cart/items", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]int{"total_items": 2})
	})
	e.GET("/api/v1/products/:slug", func(c echo.Context) error {
		return models.ErrNotFound
	})
	e.GET("/api/v1/categories", func(c echo.Context) error {
		return models.ErrFetchFailed
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"slug":"field","quantity":2}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	e.ServeHTTP(httptest.NewRecorder(), req)
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/products/ghost", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 3)

	ok := entries[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.EqualValues(t, 200, ok["status"])
	assert.Equal(t, "req-1", ok["request_id"])
	assert.Equal(t, "cart-1", ok["cart_session"])
	assert.Equal(t, "/api/v1/cart/items", ok["route"])
	assert.NotNil(t, ok["request_body"])
	assert.NotNil(t, ok["response_body"])

	notFound := entries[1].ContextMap()
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.EqualValues(t, 404, notFound["status"])
	assert.Equal(t, map[string]string{"slug": "ghost"}, notFound["params"])

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.EqualValues(t, 502, entries[2].ContextMap()["status"])
	assert.Contains(t, entries[2].ContextMap()["error"], "fetch")
}

func TestLogRequest_RequiresLogger(t *testing.T) {
	assert.Panics(t, func() { LogRequest(LogRequestConfig{}) })
}
