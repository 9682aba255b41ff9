// Package render produces the HTML pages and mails of the storefront from
// embedded html/template files. All values are escaped by the template
// engine; only hook fragments typed as template.HTML pass through verbatim.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vatid/backend/internal/domain/checkout"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names
const (
	TemplateAdminOrder   = "admin_order"
	TemplateOrderEmail   = "order_email"
	TemplateCheckoutPage = "checkout_page"
)

// AdminOrderPage is the data of the admin order edit screen
type AdminOrderPage struct {
	Number    string
	Status    checkout.OrderStatus
	Variant   checkout.CheckoutVariant
	CreatedAt time.Time
	Total     decimal.Decimal
	Currency  string
	Billing   checkout.BillingAddress
	// Fragments are appended after the billing block in order
	Fragments []template.HTML
}

// OrderEmail is the data of an order notification mail
type OrderEmail struct {
	Subject     string
	Heading     string
	SentToAdmin bool
	Number      string
	CreatedAt   time.Time
	Total       decimal.Decimal
	Currency    string
	Billing     checkout.BillingAddress
	Fields      []checkout.EmailField
}

// CheckoutPage is the data of the storefront checkout page
type CheckoutPage struct {
	Block       bool
	Action      string
	Fields      []checkout.KeyedField
	BlockFields []checkout.AdditionalField
}

// Renderer executes the embedded templates
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("render").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustNewRenderer is like NewRenderer but panics on error
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// AdminOrder renders the admin order page
func (r *Renderer) AdminOrder(page AdminOrderPage) (string, error) {
	return r.execute(TemplateAdminOrder, page)
}

// OrderEmail renders an order notification mail body
func (r *Renderer) OrderEmail(mail OrderEmail) (string, error) {
	return r.execute(TemplateOrderEmail, mail)
}

// CheckoutPage renders the checkout page for the classic or block variant
func (r *Renderer) CheckoutPage(page CheckoutPage) (string, error) {
	return r.execute(TemplateCheckoutPage, page)
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatMoney":    formatMoney,
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,
		"inputType":      inputType,
		"toJSON":         toJSON,
	}
}

// formatMoney formats an amount with two decimals and a currency code
// Example: 1234.5, "EUR" -> "1,234.50 EUR"
func formatMoney(d decimal.Decimal, currency string) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	intPart, decPart := fixed[:len(fixed)-3], fixed[len(fixed)-2:]

	var b bytes.Buffer
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	out := sign + b.String() + "." + decPart
	if currency != "" {
		out += " " + currency
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006 15:04")
}

// inputType maps a classic field type onto an HTML input type
func inputType(fieldType string) string {
	switch fieldType {
	case checkout.FieldTypeEmail, checkout.FieldTypeTel:
		return fieldType
	default:
		return "text"
	}
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
