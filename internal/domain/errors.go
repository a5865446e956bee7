package domain

import (
	"errors"
	"strings"
)

var (
	// ErrTitleRequired means an artwork has an empty title.
	ErrTitleRequired = errors.New("title is required")
	// ErrSoldArtworkFeatured means the sold/featured flags disagree.
	ErrSoldArtworkFeatured = errors.New("a sold artwork cannot be featured")
	// ErrArtworkIDRequired means an order does not reference an artwork.
	ErrArtworkIDRequired = errors.New("artwork_id is required")
	// ErrCustomerNameRequired means an order has an empty customer name.
	ErrCustomerNameRequired = errors.New("customer name is required")
	// ErrEmailRequired means an order has an empty email address.
	ErrEmailRequired = errors.New("email is required")
	// ErrEmailInvalid means the email address does not look like an address.
	ErrEmailInvalid = errors.New("email address is invalid")
	// ErrArtworkNotFound is the absent signal for artwork lookups.
	ErrArtworkNotFound = errors.New("artwork not found")
	// ErrOrderNotFound is the absent signal for order lookups.
	ErrOrderNotFound = errors.New("order not found")
	// ErrArtworkSold rejects ordering an artwork that is already sold.
	ErrArtworkSold = errors.New("artwork is already sold")
)

// ValidationError aggregates every field violation of a single request so the
// caller sees all of them at once instead of fixing one at a time.
type ValidationError struct {
	Violations []error
}

// NewValidationError wraps a non-empty violation list into a single error.
func NewValidationError(violations []error) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the human-readable text of each violation.
func (e *ValidationError) Messages() []string {
	messages := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		messages = append(messages, v.Error())
	}
	return messages
}

// Unwrap exposes the violations to errors.Is.
func (e *ValidationError) Unwrap() []error {
	return e.Violations
}
