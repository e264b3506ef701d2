package models

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrFetchFailed  = errors.New("fetch failed")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidInput = errors.New("invalid input")
)
