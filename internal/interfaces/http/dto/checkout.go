package dto

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vatid/backend/internal/domain/checkout"
)

// BillingAddressRequest is the billing address of a block checkout submission
type BillingAddressRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Company   string `json:"company" binding:"max=200"`
	Address1  string `json:"address_1" binding:"required,max=200"`
	Address2  string `json:"address_2" binding:"max=200"`
	City      string `json:"city" binding:"required,max=100"`
	State     string `json:"state" binding:"max=100"`
	Postcode  string `json:"postcode" binding:"max=20"`
	Country   string `json:"country" binding:"required,len=2"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"max=40"`
}

// ToDomain converts the request to a domain billing address
func (r BillingAddressRequest) ToDomain() checkout.BillingAddress {
	return checkout.BillingAddress{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Company:   r.Company,
		Address1:  r.Address1,
		Address2:  r.Address2,
		City:      r.City,
		State:     r.State,
		Postcode:  r.Postcode,
		Country:   strings.ToUpper(r.Country),
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

// BlockCheckoutRequest is a store API checkout submission. Extension data is
// nested under "extensions", keyed by namespaced field id.
type BlockCheckoutRequest struct {
	BillingAddress BillingAddressRequest      `json:"billing_address" binding:"required"`
	Email          string                     `json:"email" binding:"omitempty,email"`
	Total          decimal.Decimal            `json:"total"`
	Extensions     map[string]json.RawMessage `json:"extensions"`
}

// FormData returns the submission as checkout form data. Scalar extension
// values are kept as text, numbers exactly as written; nested values and
// nulls are dropped.
func (r BlockCheckoutRequest) FormData() checkout.FormData {
	ext := make(map[string]string, len(r.Extensions))
	for id, raw := range r.Extensions {
		if text, ok := extensionText(raw); ok {
			ext[id] = text
		}
	}
	return checkout.NewFormData(nil, ext)
}

func extensionText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b), true
	}
	return "", false
}

// ClassicCheckoutRequest is a classic form submission
type ClassicCheckoutRequest struct {
	Billing checkout.BillingAddress
	Total   decimal.Decimal
	Form    checkout.FormData
}

// ParseClassicCheckout reads a urlencoded classic checkout form.
// Every submitted key is preserved in Form for the order hooks.
func ParseClassicCheckout(values url.Values) (ClassicCheckoutRequest, []ValidationDetail) {
	get := func(key string) string { return strings.TrimSpace(values.Get(key)) }

	req := ClassicCheckoutRequest{
		Billing: checkout.BillingAddress{
			FirstName: get("billing_first_name"),
			LastName:  get("billing_last_name"),
			Company:   get("billing_company"),
			Address1:  get("billing_address_1"),
			Address2:  get("billing_address_2"),
			City:      get("billing_city"),
			State:     get("billing_state"),
			Postcode:  get("billing_postcode"),
			Country:   strings.ToUpper(get("billing_country")),
			Email:     get("billing_email"),
			Phone:     get("billing_phone"),
		},
		Form: checkout.FormDataFromValues(values),
	}

	var details []ValidationDetail
	for _, key := range []string{"billing_first_name", "billing_last_name", "billing_address_1", "billing_city", "billing_country", "billing_email"} {
		if get(key) == "" {
			details = append(details, ValidationDetail{Field: key, Message: "is required"})
		}
	}

	if raw := get("total"); raw != "" {
		total, err := decimal.NewFromString(raw)
		if err != nil {
			details = append(details, ValidationDetail{Field: "total", Message: "must be a decimal number"})
		} else {
			req.Total = total
		}
	}

	return req, details
}
