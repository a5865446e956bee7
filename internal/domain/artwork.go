package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Artwork is the catalog entity. The ID is assigned by storage on insert and
// is zero before persistence. Optional attributes are pointers so absence is
// explicit rather than encoded as a zero value.
type Artwork struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"image_url"`
	Price       *decimal.Decimal `json:"price"`
	Size        *string          `json:"size"`
	Medium      *string          `json:"medium"`
	Year        *int             `json:"year"`
	IsFeatured  bool             `json:"is_featured"`
	IsSold      bool             `json:"is_sold"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// IsAvailable reports whether the artwork can still be ordered.
func (a *Artwork) IsAvailable() bool {
	return !a.IsSold
}

// CanBeFeatured reports whether the artwork may appear in the featured list.
func (a *Artwork) CanBeFeatured() bool {
	return !a.IsSold
}

// MarkAsSold flips the sold flag. A sold artwork is removed from the featured
// list at the same time; the two flags never disagree after this call.
func (a *Artwork) MarkAsSold() {
	a.IsSold = true
	if a.IsFeatured {
		a.IsFeatured = false
	}
}

// ValidateInvariants checks the record-level constraints and returns every
// violation found.
func (a *Artwork) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(a.Title) == "" {
		errs = append(errs, ErrTitleRequired)
	}
	if a.IsSold && a.IsFeatured {
		errs = append(errs, ErrSoldArtworkFeatured)
	}

	return errs
}

// ArtworkFilter narrows artwork listings. Nil fields leave the corresponding
// column unconstrained; set fields combine conjunctively.
type ArtworkFilter struct {
	Featured *bool
	Sold     *bool
}
