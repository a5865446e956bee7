package domain

import (
	"regexp"
	"strings"
	"time"
)

// emailPattern is a deliberately loose address check: one @, something on
// both sides, a dot in the domain part.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Order is a purchase request for a single artwork. ArtworkTitle is a
// denormalized snapshot captured when the order is written and is never
// re-derived from the artwork afterwards, so order history survives a later
// retitle or deletion of the artwork row.
type Order struct {
	ID           int64     `json:"id"`
	ArtworkID    int64     `json:"artwork_id"`
	ArtworkTitle string    `json:"artwork_title"`
	CustomerName string    `json:"customer_name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	Message      *string   `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidateInvariants checks the field-level constraints and returns every
// violation found, not just the first one.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.ArtworkID <= 0 {
		errs = append(errs, ErrArtworkIDRequired)
	}
	if strings.TrimSpace(o.CustomerName) == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}
	if strings.TrimSpace(o.Email) == "" {
		errs = append(errs, ErrEmailRequired)
	} else if !emailPattern.MatchString(o.Email) {
		errs = append(errs, ErrEmailInvalid)
	}

	return errs
}
