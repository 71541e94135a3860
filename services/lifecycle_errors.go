package services

import "errors"

// Errors returned by the order lifecycle. Controllers map these to HTTP codes
// with errors.Is; none of them are retried inside the service itself.
var (
	// actor has no scope over the order's canteen
	ErrForbidden = errors.New("forbidden")

	// the requested status is not a successor of the current one
	ErrInvalidTransition = errors.New("invalid status transition")

	// online payment already captured and preparation has started
	ErrCancellationWindowClosed = errors.New("cancellation window closed: payment captured and preparation started")

	// the conditional status write lost to a concurrent writer; re-read and retry
	ErrConcurrentModification = errors.New("order was modified concurrently")

	// the refund step failed; the order status was left untouched
	ErrRefundFailed = errors.New("refund failed")

	// reconcile called on a payment that is not an online captured payment
	ErrPaymentNotRefundable = errors.New("payment is not refundable")
)
