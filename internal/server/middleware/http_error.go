package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/storefront/internal/models"
)

const (
	ErrCodeFetchFailed  = "fetch_failed"
	ErrCodeNotFound     = "not_found"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeEmptyCart    = "empty_cart"
	ErrCodeInternal     = "internal"

	// StatusClientClosedRequest is the nginx convention for a cancelled request.
	StatusClientClosedRequest = 499
)

// MessageFetchFailed is shown whenever the catalog backend could not be read.
const MessageFetchFailed = "failed to load data, please try again later"

// ToResponseError maps domain errors to a status and a user-facing message.
func ToResponseError(err error) *ResponseError {
	var re *ResponseError
	if errors.As(err, &re) {
		return re
	}
	resp := &ResponseError{Status: http.StatusInternalServerError, ErrorCode: ErrCodeInternal, Err: err}

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		resp.Status = he.Code
		resp.ErrorCode = ""
		resp.ErrorMessage = fmt.Sprint(he.Message)
	case errors.Is(err, models.ErrNotFound):
		resp.Status = http.StatusNotFound
		resp.ErrorCode = ErrCodeNotFound
		resp.ErrorMessage = "not found"
	case errors.Is(err, models.ErrFetchFailed):
		resp.Status = http.StatusBadGateway
		resp.ErrorCode = ErrCodeFetchFailed
		resp.ErrorMessage = MessageFetchFailed
	case errors.Is(err, models.ErrEmptyCart):
		resp.Status = http.StatusBadRequest
		resp.ErrorCode = ErrCodeEmptyCart
		resp.ErrorMessage = "cart is empty"
	case errors.Is(err, models.ErrInvalidInput):
		resp.Status = http.StatusBadRequest
		resp.ErrorCode = ErrCodeInvalidInput
		resp.ErrorMessage = err.Error()
	case errors.Is(err, context.Canceled):
		resp.Status = StatusClientClosedRequest
	}
	return resp
}

// ErrorHandler return custom http error handler.
func ErrorHandler(log Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		resp := ToResponseError(err)
		if resp.Status == StatusClientClosedRequest && c.Request().Context().Err() == nil {
			// cancelled somewhere else, not by the client
			resp.Status = http.StatusInternalServerError
		}
		if resp.Status == http.StatusNotFound && isNotFoundHandler(c.Handler()) {
			resp.ErrorMessage = "no route matched"
		}
		if resp.Status >= http.StatusInternalServerError && resp.ErrorMessage == "" {
			resp.ErrorMessage = http.StatusText(resp.Status)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(resp.Status)
		} else {
			err = c.JSON(resp.Status, resp)
		}
		if err != nil {
			log.Errorw("could not response", "code", resp.Status, "response_body", resp)
		}
	}
}
