// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrBetNotFound       = errors.New("bet not found")
	ErrInvalidInput      = errors.New("invalid input provided")
	ErrEmptyWagerText    = errors.New("wager text must not be empty")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrNegativeCashout   = errors.New("cash-out amount must not be negative")
	ErrParse             = errors.New("could not parse stake/payout input")
	// Add more specific errors as needed
)

// IsError reports whether err matches target, unwrapping as needed.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
