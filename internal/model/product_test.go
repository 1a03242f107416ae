package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_Offers(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		rent    bool
		buy     bool
	}{
		{
			name:    "rental only",
			product: Product{RentPrice: decimal.NewFromInt(899), Available: true},
			rent:    true,
		},
		{
			name:    "rent and buy",
			product: Product{RentPrice: decimal.NewFromInt(1200), BuyPrice: decimal.NewFromInt(34999), Available: true},
			rent:    true,
			buy:     true,
		},
		{
			name:    "unavailable",
			product: Product{RentPrice: decimal.NewFromInt(899), BuyPrice: decimal.NewFromInt(5000)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.rent, tt.product.Offers(KindRent))
			assert.Equal(t, tt.buy, tt.product.Offers(KindBuy))
			assert.False(t, tt.product.Offers(Kind("lease")))
		})
	}
}

func TestProduct_LineItem(t *testing.T) {
	p := Product{
		ID:        "tv",
		Name:      "Television",
		VendorID:  "V2",
		RentPrice: decimal.NewFromInt(1200),
		BuyPrice:  decimal.NewFromInt(34999),
		Deposit:   decimal.NewFromInt(3000),
		Available: true,
	}

	rent := p.LineItem(KindRent, 6)
	assert.Equal(t, KindRent, rent.Kind)
	assert.True(t, decimal.NewFromInt(1200).Equal(rent.UnitPrice))
	assert.True(t, decimal.NewFromInt(3000).Equal(rent.Deposit))
	assert.Equal(t, 6, rent.DurationMonths)
	assert.Equal(t, 1, rent.Quantity)
	assert.Equal(t, "V2", rent.VendorID)

	buy := p.LineItem(KindBuy, 6)
	assert.True(t, decimal.NewFromInt(34999).Equal(buy.UnitPrice))
	assert.True(t, buy.Deposit.IsZero())
	assert.Zero(t, buy.DurationMonths)

	assert.Equal(t, DefaultDurationMonths, p.LineItem(KindRent, 0).DurationMonths)
}
