package checkout

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vatid/backend/internal/domain/shared"
)

// OrderStatus represents the status of a checkout order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusOnHold     OrderStatus = "on-hold"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusOnHold, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// BillingAddress holds the billing block shown on the admin order page
type BillingAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Lines returns the non-empty address lines in display order
func (a BillingAddress) Lines() []string {
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	cityLine := strings.TrimSpace(strings.Join(nonEmpty(a.Postcode, a.City), " "))
	return nonEmpty(name, a.Company, a.Address1, a.Address2, cityLine, a.State, a.Country)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Order is a checkout transaction. Meta is the order's generic key-value
// store; extensions attach their data there.
type Order struct {
	shared.BaseEntity
	Number        string
	Status        OrderStatus
	Currency      string
	Total         decimal.Decimal
	CustomerEmail string
	Variant       CheckoutVariant
	Billing       BillingAddress
	Meta          map[string]string
}

// NewOrder creates a pending order
func NewOrder(number, customerEmail, currency string, total decimal.Decimal, billing BillingAddress) (*Order, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Order total cannot be negative")
	}
	if currency == "" {
		currency = "EUR"
	}
	return &Order{
		BaseEntity:    shared.NewBaseEntity(),
		Number:        number,
		Status:        OrderStatusPending,
		Currency:      strings.ToUpper(currency),
		Total:         total,
		CustomerEmail: customerEmail,
		Billing:       billing,
		Meta:          make(map[string]string),
	}, nil
}

// GetMeta returns the meta value for key, or "" when absent
func (o *Order) GetMeta(key string) string {
	if o == nil || o.Meta == nil {
		return ""
	}
	return o.Meta[key]
}

// HasMeta reports whether a non-empty value is stored under key
func (o *Order) HasMeta(key string) bool {
	return o.GetMeta(key) != ""
}

// UpdateMetaData sets a meta value on the in-memory order
func (o *Order) UpdateMetaData(key, value string) {
	if o.Meta == nil {
		o.Meta = make(map[string]string)
	}
	o.Meta[key] = value
	o.Touch()
}

// MetaKeys returns the stored meta keys in sorted order
func (o *Order) MetaKeys() []string {
	return slices.Sorted(maps.Keys(o.Meta))
}

// SetStatus moves the order to another valid status
func (o *Order) SetStatus(status OrderStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown order status %q", shared.ErrInvalidInput, status)
	}
	o.Status = status
	o.Touch()
	return nil
}

// FormattedTotal returns the total with currency, e.g. "119.00 EUR"
func (o *Order) FormattedTotal() string {
	return o.Total.StringFixed(2) + " " + o.Currency
}
