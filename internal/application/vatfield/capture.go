package vatfield

import (
	"context"

	"github.com/vatid/backend/internal/domain/checkout"
)

// OnCreateOrder stores the submitted VAT number on the order being created.
// The classic top-level field wins over the block checkout extension value.
// An order that already carries an annotation is left unchanged.
func (e *Extension) OnCreateOrder(_ context.Context, order *checkout.Order, form checkout.FormData) {
	if order == nil {
		return
	}
	if existing := order.GetMeta(MetaKey); existing != "" {
		e.log.Debugf("VAT number already set on order: %s", existing)
		return
	}

	if raw, ok := form.Value(ClassicFieldKey); ok {
		if vat := e.sanitizer.SanitizeText(raw); vat != "" {
			e.log.Debugf("Saving VAT number from classic checkout: %s", vat)
			order.UpdateMetaData(MetaKey, vat)
			return
		}
	}

	if raw, ok := form.Extension(BlockFieldID); ok {
		if vat := e.sanitizer.SanitizeText(raw); vat != "" {
			e.log.Debugf("Saving VAT number from block checkout: %s", vat)
			order.UpdateMetaData(MetaKey, vat)
			return
		}
	}

	e.log.Debugf("No VAT number found in POST data.")
}
