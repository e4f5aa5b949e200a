package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrVariantRequired = errors.New("product has variants, one must be chosen")
	ErrVariantMismatch = errors.New("variant does not belong to product")
	ErrEmptyCart       = errors.New("cart is empty")
)
