package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront/pkg/ctxval"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
)

const (
	XRequestID     = "X-Request-Id"
	XCorrelationID = "X-Correlation-Id"

	requestIDKey = "request_id"
)

// GetRequestID returns the id assigned by RequestID, falling back to the
// incoming headers.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(requestIDKey).(string); ok && id != "" {
		return id
	}
	h := c.Request().Header
	if id := h.Get(XRequestID); id != "" {
		return id
	}
	return h.Get(XCorrelationID)
}

type RequestIDConfig struct {
	Skipper      Skipper
	GenerateFunc func() string
}

var DefaultRequestIDConfig = RequestIDConfig{
	Skipper:      DefaultSkipper,
	GenerateFunc: uuid.NewString,
}

func RequestID() echo.MiddlewareFunc {
	return RequestIDWithConfig(DefaultRequestIDConfig)
}

// RequestIDWithConfig reuses an incoming request id or generates one, echoes
// it back in the response and wraps the request context so that every log
// line written with pkg/logger carries it.
func RequestIDWithConfig(config RequestIDConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultRequestIDConfig.Skipper
	}
	if config.GenerateFunc == nil {
		config.GenerateFunc = DefaultRequestIDConfig.GenerateFunc
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}
			reqID := GetRequestID(c)
			if reqID == "" {
				reqID = config.GenerateFunc()
			}

			ctx := ctxval.Wrap(c.Request().Context())
			logger.WithField(ctx, logger.KeyRequestID, reqID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(XRequestID, reqID)
			return next(c)
		}
	}
}
