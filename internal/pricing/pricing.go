// Package pricing aggregates cart line items into display totals.
package pricing

import (
	"rentlify/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultDeliveryCharge is the flat delivery fee itemised on the cart page.
var DefaultDeliveryCharge = decimal.NewFromInt(499)

// DeliveryFree is the label shown instead of an amount when delivery is not charged.
const DeliveryFree = "FREE"

// Totals is the per-category breakdown of a list of line items.
type Totals struct {
	MonthlyRentTotal     decimal.Decimal `json:"monthlyRentTotal"`
	OneTimePurchaseTotal decimal.Decimal `json:"oneTimePurchaseTotal"`
	TotalDeposit         decimal.Decimal `json:"totalDeposit"`
	DeliveryCharge       decimal.Decimal `json:"deliveryCharge"`
	GrandTotal           decimal.Decimal `json:"grandTotal"`
	ItemCount            int             `json:"itemCount"`
}

// ComputeTotals folds the items into rent, purchase and deposit sums and adds
// the delivery charge. Negative amounts count as zero and items of an unknown
// kind are left out of every sum. The deposit is taken once per line, not per
// unit.
func ComputeTotals(items []model.LineItem, deliveryCharge decimal.Decimal) Totals {
	t := Totals{
		MonthlyRentTotal:     decimal.Zero,
		OneTimePurchaseTotal: decimal.Zero,
		TotalDeposit:         decimal.Zero,
		DeliveryCharge:       nonNegative(deliveryCharge),
	}

	for _, item := range items {
		qty := item.Quantity
		if qty < 0 {
			qty = 0
		}
		line := nonNegative(item.UnitPrice).Mul(decimal.NewFromInt(int64(qty)))

		switch item.Kind {
		case model.KindRent:
			t.MonthlyRentTotal = t.MonthlyRentTotal.Add(line)
			t.TotalDeposit = t.TotalDeposit.Add(nonNegative(item.Deposit))
		case model.KindBuy:
			t.OneTimePurchaseTotal = t.OneTimePurchaseTotal.Add(line)
		default:
			continue
		}
		t.ItemCount += qty
	}

	t.GrandTotal = t.MonthlyRentTotal.
		Add(t.OneTimePurchaseTotal).
		Add(t.TotalDeposit).
		Add(t.DeliveryCharge)

	return t
}

// Summary is a presentation of Totals with a delivery label.
type Summary struct {
	Totals
	DeliveryLabel string `json:"deliveryLabel"`
}

// CartSummary itemises the delivery charge, as the cart page does.
func CartSummary(items []model.LineItem, deliveryCharge decimal.Decimal) Summary {
	t := ComputeTotals(items, deliveryCharge)
	return Summary{
		Totals:        t,
		DeliveryLabel: t.DeliveryCharge.StringFixed(2),
	}
}

// CheckoutSummary shows delivery as free. The amount actually charged is
// decided by the Order API, so this intentionally differs from CartSummary.
func CheckoutSummary(items []model.LineItem) Summary {
	return Summary{
		Totals:        ComputeTotals(items, decimal.Zero),
		DeliveryLabel: DeliveryFree,
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
