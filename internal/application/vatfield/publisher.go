package vatfield

import (
	"context"

	"github.com/vatid/backend/internal/domain/checkout"
)

// FieldDefinition returns the classic checkout field published by the extension
func FieldDefinition() checkout.FieldDefinition {
	return checkout.FieldDefinition{
		Type:        checkout.FieldTypeText,
		Label:       Label,
		Placeholder: Placeholder,
		Required:    false,
		Class:       []string{checkout.ClassRowWide},
		Priority:    Priority,
	}
}

// AdditionalField returns the descriptor registered with the block checkout
func AdditionalField() checkout.AdditionalField {
	return checkout.AdditionalField{
		ID:       BlockFieldID,
		Label:    Label,
		Location: checkout.LocationAddress,
		Type:     checkout.FieldTypeText,
		Required: false,
		Attributes: map[string]string{
			"placeholder": Placeholder,
		},
	}
}

// FilterCheckoutFields adds the VAT Number field to the billing section.
// The input set is left untouched.
func (e *Extension) FilterCheckoutFields(_ context.Context, fields checkout.FieldSet) checkout.FieldSet {
	e.log.Debugf("Adding VAT field to classic checkout fields.")
	out := fields.Clone()
	out.Set(checkout.SectionBilling, ClassicFieldKey, FieldDefinition())
	return out
}

// RegisterBlockFields registers the VAT Number field with the block checkout.
// A nil registrar means the block checkout is not installed.
func (e *Extension) RegisterBlockFields(_ context.Context, registrar checkout.FieldRegistrar) {
	if registrar == nil {
		e.log.Debugf("woocommerce_register_additional_checkout_field not available. WooCommerce Blocks extension required.")
		return
	}

	e.log.Debugf("Registering VAT field for block checkout.")
	if err := registrar.RegisterAdditionalField(AdditionalField()); err != nil {
		e.log.Debugf("Block checkout field registration failed: %v", err)
	}
}

// OnPageView logs which checkout variant renders the checkout page
func (e *Extension) OnPageView(_ context.Context, view checkout.PageView) {
	if !view.IsCheckout {
		return
	}
	if view.Variant == checkout.VariantBlock {
		e.log.Debugf("Detected BLOCK checkout.")
		return
	}
	e.log.Debugf("Detected CLASSIC checkout.")
}
