package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrCartNotFound        = errors.New("cart not found")
	ErrCartItemNotFound    = errors.New("item not in cart")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderClosed         = errors.New("order is in a terminal state")
	ErrForbiddenTransition = errors.New("status transition not permitted")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUsernameTaken       = errors.New("username already registered")

	// ErrTransactionFailed wraps store-level commit failures. The whole
	// checkout rolled back, so retrying from scratch is safe.
	ErrTransactionFailed = errors.New("transaction failed and was rolled back")
)

type ProductNotFoundError struct {
	ProductID uint64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

type InsufficientStockError struct {
	ProductID uint64
	Name      string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (product %d): %d available, %d requested",
		e.Name, e.ProductID, e.Available, e.Requested)
}

// isCheckoutValidationError tells validation failures, which surface
// as-is with no writes made, apart from store failures that become
// ErrTransactionFailed.
func isCheckoutValidationError(err error) bool {
	var notFound *ProductNotFoundError
	var shortStock *InsufficientStockError
	return errors.Is(err, ErrEmptyCart) ||
		errors.As(err, &notFound) ||
		errors.As(err, &shortStock)
}
