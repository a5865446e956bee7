package domain_test

import (
	"errors"
	"testing"

	"github.com/aoyamagallery/backend/internal/domain"
)

func validOrder() domain.Order {
	return domain.Order{
		ArtworkID:    7,
		CustomerName: "Aiko Tanaka",
		Email:        "aiko@example.com",
	}
}

func TestOrderValidateInvariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Order)
		want   []error
	}{
		{
			name:   "valid order",
			mutate: func(*domain.Order) {},
			want:   nil,
		},
		{
			name:   "missing artwork reference",
			mutate: func(o *domain.Order) { o.ArtworkID = 0 },
			want:   []error{domain.ErrArtworkIDRequired},
		},
		{
			name:   "negative artwork reference",
			mutate: func(o *domain.Order) { o.ArtworkID = -3 },
			want:   []error{domain.ErrArtworkIDRequired},
		},
		{
			name:   "blank customer name",
			mutate: func(o *domain.Order) { o.CustomerName = "  " },
			want:   []error{domain.ErrCustomerNameRequired},
		},
		{
			name:   "missing email",
			mutate: func(o *domain.Order) { o.Email = "" },
			want:   []error{domain.ErrEmailRequired},
		},
		{
			name:   "malformed email",
			mutate: func(o *domain.Order) { o.Email = "not-an-address" },
			want:   []error{domain.ErrEmailInvalid},
		},
		{
			name:   "email without domain dot",
			mutate: func(o *domain.Order) { o.Email = "aiko@localhost" },
			want:   []error{domain.ErrEmailInvalid},
		},
		{
			name: "all violations reported together",
			mutate: func(o *domain.Order) {
				o.ArtworkID = 0
				o.CustomerName = ""
				o.Email = "broken"
			},
			want: []error{domain.ErrArtworkIDRequired, domain.ErrCustomerNameRequired, domain.ErrEmailInvalid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validOrder()
			tt.mutate(&order)

			got := order.ValidateInvariants()
			if len(got) != len(tt.want) {
				t.Fatalf("got %d violations %v, want %d", len(got), got, len(tt.want))
			}
			for i, want := range tt.want {
				if !errors.Is(got[i], want) {
					t.Errorf("violation %d: got %v, want %v", i, got[i], want)
				}
			}
		})
	}
}

func TestValidationErrorAggregation(t *testing.T) {
	err := domain.NewValidationError([]error{domain.ErrCustomerNameRequired, domain.ErrEmailInvalid})

	if !errors.Is(err, domain.ErrCustomerNameRequired) {
		t.Error("expected errors.Is to match the name violation")
	}
	if !errors.Is(err, domain.ErrEmailInvalid) {
		t.Error("expected errors.Is to match the email violation")
	}
	if errors.Is(err, domain.ErrEmailRequired) {
		t.Error("did not expect errors.Is to match an absent violation")
	}

	messages := err.Messages()
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0] != domain.ErrCustomerNameRequired.Error() {
		t.Errorf("got message %q, want %q", messages[0], domain.ErrCustomerNameRequired.Error())
	}

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatal("expected errors.As to extract *ValidationError")
	}
}
