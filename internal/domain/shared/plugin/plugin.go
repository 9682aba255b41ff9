package plugin

import (
	"context"
	"html/template"

	"github.com/vatid/backend/internal/domain/checkout"
)

// Extension is a named checkout extension. It takes part in the checkout
// lifecycle by implementing any of the hook interfaces below.
type Extension interface {
	// Name returns the unique identifier for the extension
	Name() string
}

// CheckoutFieldsFilter receives the classic checkout field collection and
// returns it augmented. Implementations must not remove or reorder entries.
type CheckoutFieldsFilter interface {
	FilterCheckoutFields(ctx context.Context, fields checkout.FieldSet) checkout.FieldSet
}

// BlockFieldRegistrant registers additional fields with the block checkout.
// registrar is nil when the host has no block checkout.
type BlockFieldRegistrant interface {
	RegisterBlockFields(ctx context.Context, registrar checkout.FieldRegistrar)
}

// OrderCreateHook runs while an order is being constructed, before it is
// persisted. It may mutate the order's meta data.
type OrderCreateHook interface {
	OnCreateOrder(ctx context.Context, order *checkout.Order, form checkout.FormData)
}

// AdminOrderRenderer emits a markup fragment shown after the billing
// address on the admin order page.
type AdminOrderRenderer interface {
	RenderAfterBillingAddress(ctx context.Context, order *checkout.Order) template.HTML
}

// EmailMetaFieldsFilter receives the extra fields scheduled for an order
// email and returns them augmented.
type EmailMetaFieldsFilter interface {
	FilterEmailMetaFields(ctx context.Context, fields checkout.EmailFields, sentToAdmin bool, order *checkout.Order) checkout.EmailFields
}

// PageViewObserver is notified on every storefront page render
type PageViewObserver interface {
	OnPageView(ctx context.Context, view checkout.PageView)
}
