// Package domain holds the error kinds shared by all workflow packages.
// Specific sentinels in the entity packages wrap these so handlers can map
// any domain error to an HTTP status with a single errors.Is chain.
package domain

import "errors"

var (
	// ErrUnauthorized is returned when the caller cannot be resolved from
	// credentials or a token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned on role mismatch, wrong family, or when the
	// caller does not own the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when an entity cannot be found by id or code.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned on duplicate phone numbers, duplicate pending
	// requests, or transitions out of a terminal state.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput is returned for malformed payload values that pass
	// schema validation but fail domain rules.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientFunds is returned when a balance cannot cover a
	// transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInconsistentState signals a broken invariant (e.g. an active loan
	// without a lender). Never caused by user input.
	ErrInconsistentState = errors.New("inconsistent state")
)
