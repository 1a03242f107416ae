package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalogue entry that can be rented, bought, or both.
// A zero RentPrice means the product cannot be rented; a zero BuyPrice means
// it cannot be bought.
type Product struct {
	ID        string          `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Image     string          `json:"image,omitempty" db:"image"`
	Category  string          `json:"category" db:"category"`
	VendorID  string          `json:"vendorId,omitempty" db:"vendor_id"`
	RentPrice decimal.Decimal `json:"rentPrice" db:"rent_price"`
	BuyPrice  decimal.Decimal `json:"buyPrice" db:"buy_price"`
	Deposit   decimal.Decimal `json:"deposit" db:"deposit"`
	Available bool            `json:"available" db:"available"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// Offers reports whether the product can be taken under the given kind.
func (p *Product) Offers(kind Kind) bool {
	if !p.Available {
		return false
	}
	switch kind {
	case KindRent:
		return p.RentPrice.IsPositive()
	case KindBuy:
		return p.BuyPrice.IsPositive()
	default:
		return false
	}
}

// LineItem builds a cart line for the product. Rentals carry the deposit and
// the requested duration.
func (p *Product) LineItem(kind Kind, durationMonths int) LineItem {
	item := LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Image:    p.Image,
		VendorID: p.VendorID,
		Kind:     kind,
		Quantity: 1,
	}
	if kind == KindRent {
		item.UnitPrice = p.RentPrice
		item.Deposit = p.Deposit
		item.DurationMonths = durationMonths
	} else {
		item.UnitPrice = p.BuyPrice
	}
	return item.Normalize()
}
