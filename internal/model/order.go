package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the descriptive payment tag sent with an order.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCOD  PaymentMethod = "cod"
)

// Valid reports whether m is one of the supported payment tags.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentCOD:
		return true
	}
	return false
}

// OrderRequest is the body of POST /orders on the Order API.
type OrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress ShippingAddress    `json:"shippingAddress"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	Product   string    `json:"product"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Quantity  int       `json:"quantity"`
}

// ShippingAddress carries contact details and the chosen payment tag.
type ShippingAddress struct {
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	City          string        `json:"city,omitempty"`
	State         string        `json:"state,omitempty"`
	Pincode       string        `json:"pincode,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// Order is the persisted order returned by the Order API.
type Order struct {
	ID              string          `json:"_id"`
	Status          string          `json:"status,omitempty"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Items           []OrderItem     `json:"items,omitempty"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OrderItem represents a line item in a persisted order.
type OrderItem struct {
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
}

// GSTRate is the tax rate the Order API applies when generating invoices.
var GSTRate = decimal.NewFromFloat(0.18)

// Invoice is generated by the Order API, one per vendor in an order.
type Invoice struct {
	ID            string          `json:"_id"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	OrderID       string          `json:"order"`
	VendorID      string          `json:"vendor"`
	Items         []InvoiceItem   `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// InvoiceItem is a billed line on an invoice.
type InvoiceItem struct {
	Product   string          `json:"product"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Amount    decimal.Decimal `json:"amount"`
}

// Confirmation is what the order confirmation view displays.
type Confirmation struct {
	Order    *Order    `json:"order"`
	Invoices []Invoice `json:"invoices"`
}
