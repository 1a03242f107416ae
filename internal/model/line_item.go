package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Kind distinguishes recurring rentals from one-time purchases.
type Kind string

const (
	KindRent Kind = "rent"
	KindBuy  Kind = "buy"
)

// DefaultDurationMonths is applied to rentals that carry no explicit duration.
const DefaultDurationMonths = 3

// CartDurations are the rental durations offered on the cart page.
var CartDurations = []int{3, 6, 12}

// IsCartDuration reports whether months is one of CartDurations.
func IsCartDuration(months int) bool {
	return slices.Contains(CartDurations, months)
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindRent || k == KindBuy
}

// ParseKind converts a raw string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

// LineItem is a single cart entry.
type LineItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name,omitempty"`
	Image          string          `json:"image,omitempty"`
	VendorID       string          `json:"vendorId,omitempty"`
	Kind           Kind            `json:"kind"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Quantity       int             `json:"quantity"`
	DurationMonths int             `json:"durationMonths,omitempty"`
	Deposit        decimal.Decimal `json:"deposit"`
}

// Normalize enforces the line item invariants: quantity of at least one,
// buy items without duration or deposit, rentals with a duration.
func (i LineItem) Normalize() LineItem {
	if i.Quantity < 1 {
		i.Quantity = 1
	}
	switch i.Kind {
	case KindBuy:
		i.DurationMonths = 0
		i.Deposit = decimal.Zero
	case KindRent:
		if i.DurationMonths < 1 {
			i.DurationMonths = DefaultDurationMonths
		}
	}
	return i
}

// Duration returns the rental duration in months, falling back to the default.
func (i LineItem) Duration() int {
	if i.DurationMonths < 1 {
		return DefaultDurationMonths
	}
	return i.DurationMonths
}

// SameLine reports whether two items share the (id, kind) identity used for merging.
func (i LineItem) SameLine(id string, kind Kind) bool {
	return i.ID == id && i.Kind == kind
}

// ErrCorruptCart is returned when persisted cart data cannot be decoded.
var ErrCorruptCart = errors.New("corrupt cart data")

// EncodeLineItems serialises a full cart list.
func EncodeLineItems(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	return data, nil
}

// DecodeLineItems parses a serialised cart list. Empty input is an empty cart.
func DecodeLineItems(data []byte) ([]LineItem, error) {
	if len(data) == 0 {
		return []LineItem{}, nil
	}
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCart, err)
	}
	if items == nil {
		items = []LineItem{}
	}
	return items, nil
}
