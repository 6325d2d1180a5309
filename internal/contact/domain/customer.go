package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidContact   = errors.New("invalid contact")

	ErrNameRequired = fmt.Errorf("%w: name is required", ErrInvalidContact)
	ErrInvalidPhone = fmt.Errorf("%w: invalid phone number", ErrInvalidContact)
	ErrInvalidKind  = fmt.Errorf("%w: kind must be client or supplier", ErrInvalidContact)
)

type Kind string

const (
	KindClient   Kind = "client"
	KindSupplier Kind = "supplier"
)

// Customer is a contact of the shop. An empty Kind reads as a client.
type Customer struct {
	ID             string          `json:"id"`
	Kind           Kind            `json:"kind"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Company        string          `json:"company,omitempty"`
	TotalPurchases decimal.Decimal `json:"total_purchases"` // advisory, never updated by checkout
	CreatedAt      time.Time       `json:"created_at"`
}

func (c Customer) IsSupplier() bool {
	return c.Kind == KindSupplier
}

var phonePattern = regexp.MustCompile(`^[+]?[0-9\s\-()]{8,}$`)

// ContactRequest is the create/edit form of a contact.
type ContactRequest struct {
	Kind    Kind   `json:"kind"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

// Normalize trims the fields and defaults Kind to client.
func (r ContactRequest) Normalize() ContactRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	if r.Kind == "" {
		r.Kind = KindClient
	}
	return r
}

// Validate expects a normalized request. Phone is optional.
func (r ContactRequest) Validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}
	if r.Phone != "" && !phonePattern.MatchString(r.Phone) {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, r.Phone)
	}
	if r.Kind != KindClient && r.Kind != KindSupplier {
		return fmt.Errorf("%w: %q", ErrInvalidKind, r.Kind)
	}
	return nil
}
