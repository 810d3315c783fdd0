package errors

import (
	"fmt"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrUserNotFound is returned when a checkout references an unknown buyer
type ErrUserNotFound struct {
	UID string
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UID)
}

// ErrCouponInvalid is returned when an applied coupon no longer exists
type ErrCouponInvalid struct {
	CouponID string
}

func (e *ErrCouponInvalid) Error() string {
	return fmt.Sprintf("coupon is no longer valid: %s", e.CouponID)
}

// ErrCouponExhausted is returned when a coupon has reached its usage limit
type ErrCouponExhausted struct {
	Code string
}

func (e *ErrCouponExhausted) Error() string {
	return fmt.Sprintf("coupon has reached its usage limit: %s", e.Code)
}

// ErrInsufficientBalance is returned when the buyer cannot cover the cart total
type ErrInsufficientBalance struct {
	Balance float64
	Total   float64
}

func (e *ErrInsufficientBalance) Error() string {
	return fmt.Sprintf("insufficient balance: have %.2f, need %.2f", e.Balance, e.Total)
}

// ErrProductMisconfigured is returned when a cart line references a product
// that does not exist or has no stock list at all
type ErrProductMisconfigured struct {
	ProductID string
	Name      string
}

func (e *ErrProductMisconfigured) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("product %q is misconfigured", e.Name)
	}
	return fmt.Sprintf("product is misconfigured: %s", e.ProductID)
}

// ErrOutOfStock is returned when a product has no unsold stock units left
type ErrOutOfStock struct {
	ProductID string
	Name      string
}

func (e *ErrOutOfStock) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("product %q is out of stock", e.Name)
	}
	return fmt.Sprintf("product is out of stock: %s", e.ProductID)
}
