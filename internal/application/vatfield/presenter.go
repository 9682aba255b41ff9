package vatfield

import (
	"context"
	"html/template"

	"github.com/vatid/backend/internal/domain/checkout"
)

// VATNumber returns the stored annotation, or "" when the order has none
func VATNumber(order *checkout.Order) string {
	if order == nil {
		return ""
	}
	return order.GetMeta(MetaKey)
}

func orNone(v string) string {
	if v == "" {
		return "none"
	}
	return v
}

// RenderAfterBillingAddress renders the VAT line for the admin order page.
// Orders without an annotation render nothing.
func (e *Extension) RenderAfterBillingAddress(_ context.Context, order *checkout.Order) template.HTML {
	vat := VATNumber(order)
	e.log.Debugf("Admin order view — VAT: %s", orNone(vat))
	if vat == "" {
		return ""
	}
	return template.HTML("<p><strong>" + template.HTMLEscapeString(Label) + ":</strong> " +
		template.HTMLEscapeString(vat) + "</p>")
}

// FilterEmailMetaFields appends the VAT Number row to the email fields when the
// order carries an annotation. Admin and customer emails get the same row.
func (e *Extension) FilterEmailMetaFields(_ context.Context, fields checkout.EmailFields, _ bool, order *checkout.Order) checkout.EmailFields {
	vat := VATNumber(order)
	e.log.Debugf("Adding VAT to email meta: %s", orNone(vat))
	if vat == "" {
		return fields
	}
	out := fields.Clone()
	out.Set(MetaKey, checkout.EmailField{Label: Label, Value: vat})
	return out
}
