package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vatid/backend/internal/domain/checkout"
)

// PlaceOrderRequest carries one checkout submission from either UI
type PlaceOrderRequest struct {
	Variant checkout.CheckoutVariant
	Email   string
	Billing checkout.BillingAddress
	Total   decimal.Decimal
	Form    checkout.FormData
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID               `json:"id"`
	Number        string                  `json:"number"`
	Status        string                  `json:"status"`
	Variant       string                  `json:"variant"`
	Currency      string                  `json:"currency"`
	Total         decimal.Decimal         `json:"total"`
	CustomerEmail string                  `json:"customer_email"`
	Billing       checkout.BillingAddress `json:"billing"`
	Meta          map[string]string       `json:"meta"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(order *checkout.Order) OrderResponse {
	meta := make(map[string]string, len(order.Meta))
	for k, v := range order.Meta {
		meta[k] = v
	}
	return OrderResponse{
		ID:            order.ID,
		Number:        order.Number,
		Status:        string(order.Status),
		Variant:       order.Variant.String(),
		Currency:      order.Currency,
		Total:         order.Total,
		CustomerEmail: order.CustomerEmail,
		Billing:       order.Billing,
		Meta:          meta,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

// EmailFieldResponse is one keyed email meta row
type EmailFieldResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ToEmailFieldResponses flattens email fields in insertion order
func ToEmailFieldResponses(fields checkout.EmailFields) []EmailFieldResponse {
	out := make([]EmailFieldResponse, 0, fields.Len())
	for _, k := range fields.Keys() {
		f, _ := fields.Get(k)
		out = append(out, EmailFieldResponse{Key: k, Label: f.Label, Value: f.Value})
	}
	return out
}

// FieldSectionResponse is one section of the classic checkout form
type FieldSectionResponse struct {
	Section string                `json:"section"`
	Fields  []checkout.KeyedField `json:"fields"`
}

// ToFieldSectionResponses lists each section's fields ordered by priority
func ToFieldSectionResponses(fs checkout.FieldSet) []FieldSectionResponse {
	sections := fs.Sections()
	out := make([]FieldSectionResponse, 0, len(sections))
	for _, name := range sections {
		out = append(out, FieldSectionResponse{Section: name, Fields: fs.Sorted(name)})
	}
	return out
}
