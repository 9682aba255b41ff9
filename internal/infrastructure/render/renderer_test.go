package render

import (
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vatid/backend/internal/domain/checkout"
)

func testBilling() checkout.BillingAddress {
	return checkout.BillingAddress{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Company:   "Engines <Ltd>",
		Address1:  "1 Analytical Way",
		City:      "London",
		Postcode:  "N1",
		Country:   "GB",
		Email:     "ada@example.com",
		Phone:     "+44 1",
	}
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, name := range []string{TemplateAdminOrder, TemplateOrderEmail, TemplateCheckoutPage} {
		assert.NotNil(t, r.tmpl.Lookup(name), name)
	}
}

func TestRenderer_AdminOrder(t *testing.T) {
	r := MustNewRenderer()

	html, err := r.AdminOrder(AdminOrderPage{
		Number:    "WC-1001",
		Status:    checkout.OrderStatusProcessing,
		Variant:   checkout.VariantClassic,
		CreatedAt: time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC),
		Total:     decimal.RequireFromString("1234.5"),
		Currency:  "EUR",
		Billing:   testBilling(),
		Fragments: []template.HTML{
			"<p><strong>VAT Number:</strong> DE123456789</p>",
		},
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Order #WC-1001 details")
	assert.Contains(t, html, "Engines &lt;Ltd&gt;")
	assert.Contains(t, html, "<p><strong>VAT Number:</strong> DE123456789</p>")
	assert.Contains(t, html, "1,234.50 EUR")
	assert.Contains(t, html, "March 5, 2024 10:30")

	billing := strings.Index(html, "<h3>Billing</h3>")
	fragment := strings.Index(html, "VAT Number")
	assert.Greater(t, fragment, billing, "hook fragments follow the billing block")
}

func TestRenderer_AdminOrder_NoFragments(t *testing.T) {
	r := MustNewRenderer()

	html, err := r.AdminOrder(AdminOrderPage{Number: "WC-1", Billing: testBilling()})
	require.NoError(t, err)
	assert.NotContains(t, html, "VAT Number")
}

func TestRenderer_OrderEmail(t *testing.T) {
	r := MustNewRenderer()

	mail := OrderEmail{
		Subject:  "Your order",
		Heading:  "Thank you for your order",
		Number:   "WC-7",
		Total:    decimal.NewFromInt(10),
		Currency: "EUR",
		Billing:  testBilling(),
		Fields: []checkout.EmailField{
			{Label: "VAT Number", Value: "<b>FR1</b>"},
		},
	}

	html, err := r.OrderEmail(mail)
	require.NoError(t, err)
	assert.Contains(t, html, "Hi Ada, thanks for your order.")
	assert.Contains(t, html, "<p><strong>VAT Number:</strong> &lt;b&gt;FR1&lt;/b&gt;</p>")
	assert.Contains(t, html, "10.00 EUR")

	mail.SentToAdmin = true
	mail.Fields = nil
	html, err = r.OrderEmail(mail)
	require.NoError(t, err)
	assert.Contains(t, html, "You have received an order from Ada Lovelace.")
	assert.NotContains(t, html, "order-meta")
}

func TestRenderer_CheckoutPage(t *testing.T) {
	r := MustNewRenderer()
	fields := checkout.DefaultFieldSet().Sorted(checkout.SectionBilling)

	t.Run("classic", func(t *testing.T) {
		html, err := r.CheckoutPage(CheckoutPage{Action: "/api/v1/checkout/classic", Fields: fields})
		require.NoError(t, err)

		assert.Contains(t, html, `action="/api/v1/checkout/classic"`)
		assert.Contains(t, html, `name="billing_email"`)
		assert.Contains(t, html, `type="email"`)
		assert.Equal(t, checkout.VariantClassic, checkout.DetectVariant(html))
	})

	t.Run("block", func(t *testing.T) {
		html, err := r.CheckoutPage(CheckoutPage{
			Block:  true,
			Action: "/api/v1/checkout/block",
			BlockFields: []checkout.AdditionalField{
				{ID: "namespace/vatid-free", Label: "VAT Number", Location: checkout.LocationOrder, Type: "text"},
			},
		})
		require.NoError(t, err)

		assert.Contains(t, html, "namespace/vatid-free")
		assert.NotContains(t, html, "<form")
		assert.Equal(t, checkout.VariantBlock, checkout.DetectVariant(html))
	})
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in       string
		currency string
		want     string
	}{
		{"0", "EUR", "0.00 EUR"},
		{"12.345", "EUR", "12.35 EUR"},
		{"1234567.8", "USD", "1,234,567.80 USD"},
		{"-1000", "", "-1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMoney(decimal.RequireFromString(tt.in), tt.currency))
		})
	}
}

func TestInputType(t *testing.T) {
	assert.Equal(t, "email", inputType(checkout.FieldTypeEmail))
	assert.Equal(t, "tel", inputType(checkout.FieldTypeTel))
	assert.Equal(t, "text", inputType(checkout.FieldTypeCountry))
	assert.Equal(t, "text", inputType(checkout.FieldTypeText))
}
