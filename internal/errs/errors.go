package errs

import "errors"

// Common sentinel errors for cross-layer signaling. The store and services
// return these (possibly wrapped) so callers can react without string
// matching; the HTTP layer maps them onto status codes.
var (
	ErrNotFound = errors.New("not_found")
	ErrInvalid  = errors.New("invalid")
	// ErrInvalidAmount flags amounts that are negative or not a finite decimal.
	ErrInvalidAmount = errors.New("invalid_amount")
	// ErrUnknownAccount flags a transaction referencing a nonexistent account.
	// The balance side-effect is never silently skipped.
	ErrUnknownAccount = errors.New("unknown_account")
	// ErrUnknownCategory flags a budget referencing a nonexistent category.
	ErrUnknownCategory = errors.New("unknown_category")
	// ErrLastAccount is the refusal to delete the sole remaining account,
	// which would orphan its transactions.
	ErrLastAccount = errors.New("last_account")
)
