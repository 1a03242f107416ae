// Package checkout turns cart contents and a shipping form into an order
// request and submits it.
package checkout

import (
	"strings"
	"time"

	"rentlify/internal/model"
)

// Source tells where the checked-out items came from.
type Source string

const (
	SourceCart   Source = "cart"
	SourceDirect Source = "direct"
)

// Form is the contact, shipping and payment data collected by the wizard.
type Form struct {
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	Phone          string              `json:"phone"`
	Address        string              `json:"address"`
	City           string              `json:"city"`
	State          string              `json:"state"`
	Pincode        string              `json:"pincode"`
	DurationMonths int                 `json:"durationMonths,omitempty"`
	PaymentMethod  model.PaymentMethod `json:"paymentMethod"`
}

// ApplyDefaults fills empty contact fields from the session user.
func (f Form) ApplyDefaults(d model.ContactDefaults) Form {
	if f.Name == "" {
		f.Name = d.Name
	}
	if f.Email == "" {
		f.Email = d.Email
	}
	if f.Phone == "" {
		f.Phone = d.Phone
	}
	return f
}

// ResolveItems prefers explicitly passed items over the cart contents.
func ResolveItems(direct, cartItems []model.LineItem) ([]model.LineItem, Source, error) {
	if len(direct) > 0 {
		return direct, SourceDirect, nil
	}
	if len(cartItems) > 0 {
		return cartItems, SourceCart, nil
	}
	return nil, "", model.ErrNothingToCheckout
}

// BuildOrderRequest maps items and form into the Order API payload. Every
// item starts now and ends after its duration in calendar months. Items
// without a duration take the form's scheduled duration, then the default
// of three months.
func BuildOrderRequest(items []model.LineItem, form Form, now time.Time) (*model.OrderRequest, error) {
	if len(items) == 0 {
		return nil, model.ErrNothingToCheckout
	}

	req := &model.OrderRequest{
		Items: make([]model.OrderItemRequest, 0, len(items)),
		ShippingAddress: model.ShippingAddress{
			Name:          strings.TrimSpace(form.Name),
			Email:         strings.TrimSpace(form.Email),
			Phone:         strings.TrimSpace(form.Phone),
			Address:       strings.TrimSpace(form.Address),
			City:          strings.TrimSpace(form.City),
			State:         strings.TrimSpace(form.State),
			Pincode:       strings.TrimSpace(form.Pincode),
			PaymentMethod: form.PaymentMethod,
		},
	}

	for _, item := range items {
		months := item.DurationMonths
		if months < 1 {
			months = form.DurationMonths
		}
		if months < 1 {
			months = model.DefaultDurationMonths
		}
		req.Items = append(req.Items, model.OrderItemRequest{
			Product:   item.ID,
			StartDate: now,
			EndDate:   EndDate(now, months),
			Quantity:  max(item.Quantity, 1),
		})
	}

	return req, nil
}

// EndDate adds whole calendar months to start.
func EndDate(start time.Time, months int) time.Time {
	return start.AddDate(0, months, 0)
}
