package middleware

import (
	"fmt"
	"net/http"
	"reflect"
	"runtime"

	"github.com/labstack/echo/v4"
)

// WrapHandler binds and validates Req, calls f and renders its result in the
// Response envelope. Returning a *Response from f overrides the envelope.
func WrapHandler[Req, Res any](f func(echo.Context, Req) (Res, error)) echo.HandlerFunc {
	mustStructRequest[Req](f)

	return func(c echo.Context) error {
		var req Req
		if err := BindAndValidate(c, &req); err != nil {
			return err
		}

		data, err := f(c, req)
		if err != nil {
			return err
		}

		if v, ok := any(data).(*Response); ok && v != nil {
			return c.JSON(v.Status, v)
		}
		return c.JSON(http.StatusOK, &Response{
			Status:  http.StatusOK,
			Success: true,
			Data:    data,
		})
	}
}

// WrapNoContent is WrapHandler for handlers that render nothing on success,
// or render the response themselves.
func WrapNoContent[Req any](f func(echo.Context, Req) error) echo.HandlerFunc {
	mustStructRequest[Req](f)

	return func(c echo.Context) error {
		var req Req
		if err := BindAndValidate(c, &req); err != nil {
			return err
		}
		if err := f(c, req); err != nil {
			return err
		}
		if !c.Response().Committed {
			return c.NoContent(http.StatusNoContent)
		}
		return nil
	}
}

func mustStructRequest[Req any](f any) {
	typ := reflect.TypeFor[Req]()
	if typ.Kind() == reflect.Struct {
		return
	}
	name := runtime.FuncForPC(reflect.ValueOf(f).Pointer()).Name()
	panic(fmt.Errorf("[%s] request argument must has type struct: %v", name, typ.Kind()))
}
