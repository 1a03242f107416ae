package checkout

import (
	"testing"
	"time"

	"rentlify/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveItems(t *testing.T) {
	direct := []model.LineItem{{ID: "D1", Kind: model.KindRent, Quantity: 1}}
	cartItems := []model.LineItem{{ID: "C1", Kind: model.KindBuy, Quantity: 2}}

	tests := []struct {
		name           string
		direct         []model.LineItem
		cartItems      []model.LineItem
		expectedID     string
		expectedSource Source
		expectError    bool
	}{
		{name: "Direct items win", direct: direct, cartItems: cartItems, expectedID: "D1", expectedSource: SourceDirect},
		{name: "Cart items when no direct items", cartItems: cartItems, expectedID: "C1", expectedSource: SourceCart},
		{name: "Nothing to check out", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, source, err := ResolveItems(tt.direct, tt.cartItems)

			if tt.expectError {
				assert.ErrorIs(t, err, model.ErrNothingToCheckout)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSource, source)
			assert.Equal(t, tt.expectedID, items[0].ID)
		})
	}
}

func TestEndDate_CalendarMonths(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{
			name:     "Six months from February",
			start:    time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC),
			months:   6,
			expected: time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "Twelve months crosses the year",
			start:    time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
			months:   12,
			expected: time.Date(2027, 10, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Three months across short February",
			start:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			months:   3,
			expected: time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(EndDate(tt.start, tt.months)))
		})
	}
}

func TestBuildOrderRequest(t *testing.T) {
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	items := []model.LineItem{
		{ID: "P1", Kind: model.KindRent, UnitPrice: decimal.NewFromInt(3500), Quantity: 2, DurationMonths: 6},
		{ID: "P2", Kind: model.KindBuy, UnitPrice: decimal.NewFromInt(12000), Quantity: 1},
		{ID: "P3", Kind: model.KindRent, Quantity: 0},
	}
	form := Form{
		Name:          " Asha Rao ",
		Email:         "asha@example.com",
		Phone:         "9876543210",
		Address:       "12 MG Road",
		City:          "Bengaluru",
		State:         "Karnataka",
		Pincode:       "560001",
		PaymentMethod: model.PaymentUPI,
	}

	req, err := BuildOrderRequest(items, form, now)

	require.NoError(t, err)
	require.Len(t, req.Items, 3)

	assert.Equal(t, "P1", req.Items[0].Product)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.True(t, now.Equal(req.Items[0].StartDate))
	assert.True(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC).Equal(req.Items[0].EndDate))

	// no explicit duration falls back to three months
	assert.True(t, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC).Equal(req.Items[1].EndDate))
	assert.True(t, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC).Equal(req.Items[2].EndDate))
	assert.Equal(t, 1, req.Items[2].Quantity)

	assert.Equal(t, model.ShippingAddress{
		Name:          "Asha Rao",
		Email:         "asha@example.com",
		Phone:         "9876543210",
		Address:       "12 MG Road",
		City:          "Bengaluru",
		State:         "Karnataka",
		Pincode:       "560001",
		PaymentMethod: model.PaymentUPI,
	}, req.ShippingAddress)
}

func TestBuildOrderRequest_FormDuration(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	items := []model.LineItem{
		{ID: "P1", Kind: model.KindRent, Quantity: 1, DurationMonths: 6},
		{ID: "P2", Kind: model.KindBuy, Quantity: 1},
	}

	req, err := BuildOrderRequest(items, Form{DurationMonths: 12}, now)

	require.NoError(t, err)
	assert.True(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).Equal(req.Items[0].EndDate))
	assert.True(t, time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC).Equal(req.Items[1].EndDate))
}

func TestBuildOrderRequest_NoItems(t *testing.T) {
	_, err := BuildOrderRequest(nil, Form{}, time.Now())
	assert.ErrorIs(t, err, model.ErrNothingToCheckout)
}

func TestForm_ApplyDefaults(t *testing.T) {
	defaults := model.ContactDefaults{Name: "Asha", Email: "asha@example.com", Phone: "9876543210"}

	form := Form{Name: "Ravi"}.ApplyDefaults(defaults)

	assert.Equal(t, "Ravi", form.Name)
	assert.Equal(t, "asha@example.com", form.Email)
	assert.Equal(t, "9876543210", form.Phone)
}
