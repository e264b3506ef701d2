package server

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront/internal/server/middleware"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
)

const (
	streamBuffer     = 8
	streamWriteWait  = 10 * time.Second
	streamPingPeriod = 30 * time.Second
)

// CartStream pushes a CartView over a websocket every time the session's cart
// changes. The first message is the current cart.
type CartStream struct {
	cart     usecase.CartUsecase
	upgrader websocket.Upgrader
}

// NewCartStream accepts same-origin upgrades and origins matching any of the
// allowed patterns.
func NewCartStream(cart usecase.CartUsecase, allowedOrigins []*regexp.Regexp) *CartStream {
	return &CartStream{
		cart: cart,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host {
					return true
				}
				for _, p := range allowedOrigins {
					if p.MatchString(origin) {
						return true
					}
				}
				return false
			},
		},
	}
}

func (s *CartStream) Serve(c echo.Context) error {
	ctx := c.Request().Context()
	updates, cancel, err := s.cart.Subscribe(ctx, middleware.GetCartSession(c), streamBuffer)
	if err != nil {
		return err
	}
	defer cancel()

	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already answered with an http error
		logger.Warnw(ctx, "cart stream upgrade failed", "error", err)
		return nil
	}

	// the client never sends anything useful; reading surfaces close frames
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
	defer func() {
		_ = conn.Close()
		<-closed
	}()

	ping := time.NewTicker(streamPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-closed:
			return nil
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(s.cart.View(snap)); err != nil {
				logger.Debugw(ctx, "cart stream write failed", "error", err)
				return nil
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return nil
			}
		}
	}
}
