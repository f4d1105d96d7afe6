package service

import "errors"

var (
	// ErrCaptureDeclined means PayPal answered the capture call but the
	// order did not end up COMPLETED. The buyer has to start a new
	// checkout; the same gateway order id is not retryable.
	ErrCaptureDeclined = errors.New("payment could not be captured")

	// ErrUnknownProduct means a confirmed item references a product id
	// that is not in the catalog.
	ErrUnknownProduct = errors.New("unknown product in order")

	// ErrTotalMismatch means the client-reported total disagrees with the
	// total recomputed from catalog prices.
	ErrTotalMismatch = errors.New("order total does not match catalog prices")

	// ErrCapturedAmountMismatch means the gateway captured a different
	// amount than the order being confirmed is worth.
	ErrCapturedAmountMismatch = errors.New("captured amount does not match order total")

	// ErrInvalidQuantity means an item carries a quantity below one.
	ErrInvalidQuantity = errors.New("item quantity must be positive")
)
