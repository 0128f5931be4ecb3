package service

import "errors"

var (
	// ErrInvalidOrderID is returned when the order ID is empty.
	ErrInvalidOrderID = errors.New("invalid order id")

	// ErrUnsupportedCurrency is returned when the order currency cannot be
	// processed by JazzyPay. No network call is made.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrConnectionFailed is returned when the processor cannot be reached,
	// times out, or answers with an undecodable body.
	ErrConnectionFailed = errors.New("payment processor connection failed")

	// ErrProcessorRejected is returned when the processor answers with any
	// status other than Success.
	ErrProcessorRejected = errors.New("payment processor rejected initiation")

	// ErrMalformedCallback is returned when a callback arrives without an
	// order id or status, or for the wrong gateway. No Order Store call is
	// made for such callbacks.
	ErrMalformedCallback = errors.New("malformed payment callback")
)
