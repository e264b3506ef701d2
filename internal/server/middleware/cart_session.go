package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront/pkg/crypto"
	"github.com/nguyentranbao-ct/storefront/pkg/ctxval"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
)

const (
	XCartSession   = "X-Cart-Session"
	CartCookieName = "cart_session"

	cartSessionKey    = "cart_session"
	maxCartSessionLen = 128
)

type CartSessionConfig struct {
	Skipper Skipper
	// Sealer, when set, encrypts the session id before it leaves the server.
	Sealer       crypto.Sealer
	Secure       bool
	MaxAge       time.Duration
	GenerateFunc func() string
}

var DefaultCartSessionConfig = CartSessionConfig{
	Skipper:      DefaultSkipper,
	MaxAge:       30 * 24 * time.Hour,
	GenerateFunc: uuid.NewString,
}

// GetCartSession returns the session id resolved by CartSession.
func GetCartSession(c echo.Context) string {
	id, _ := c.Get(cartSessionKey).(string)
	return id
}

// CartSession resolves the cart session of the caller from the X-Cart-Session
// header or the cart_session cookie. A missing, oversized or undecryptable
// token starts a new session. The token is echoed in both the header and the
// cookie so browsers and API clients can carry it forward.
func CartSession(config CartSessionConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultCartSessionConfig.Skipper
	}
	if config.GenerateFunc == nil {
		config.GenerateFunc = DefaultCartSessionConfig.GenerateFunc
	}
	if config.MaxAge <= 0 {
		config.MaxAge = DefaultCartSessionConfig.MaxAge
	}

	open := func(token string) string {
		token = strings.TrimSpace(token)
		if token == "" {
			return ""
		}
		if config.Sealer != nil {
			id, err := config.Sealer.Open(token)
			if err != nil {
				return ""
			}
			token = id
		}
		if len(token) > maxCartSessionLen {
			return ""
		}
		return token
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			token := c.Request().Header.Get(XCartSession)
			if token == "" {
				if cookie, err := c.Cookie(CartCookieName); err == nil {
					token = cookie.Value
				}
			}

			id := open(token)
			if id == "" {
				id = config.GenerateFunc()
				token = id
				if config.Sealer != nil {
					sealed, err := config.Sealer.Seal(id)
					if err != nil {
						return err
					}
					token = sealed
				}
			}

			c.SetCookie(&http.Cookie{
				Name:     CartCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(config.MaxAge.Seconds()),
				HttpOnly: true,
				Secure:   config.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			c.Response().Header().Set(XCartSession, token)

			ctx := ctxval.Wrap(c.Request().Context())
			logger.WithField(ctx, logger.KeyCartSession, id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set(cartSessionKey, id)
			return next(c)
		}
	}
}
