package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrBadRequest = errors.New("bad request")

	// ErrInvalidTransition marks a lifecycle operation invoked from a state
	// outside its allowed sources. Nothing is written.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPartialDispatch marks a dispatch where one or more per-recipient
	// notification writes failed. The broadcast and audit records were still
	// written; the wrapped result lists the recipients to retry.
	ErrPartialDispatch = errors.New("partial dispatch failure")
)
