// Package checkout is the storefront side of the checkout: it builds the
// forms, places orders and renders order views, calling the extension hooks
// at the points the platform defines.
package checkout

import (
	"context"
	"html/template"

	"github.com/vatid/backend/internal/domain/checkout"
)

// Hooks is the extension dispatch surface used by the services.
// plugin.Manager implements it.
type Hooks interface {
	FilterCheckoutFields(ctx context.Context, fields checkout.FieldSet) checkout.FieldSet
	CreateOrder(ctx context.Context, order *checkout.Order, form checkout.FormData)
	RenderAfterBillingAddress(ctx context.Context, order *checkout.Order) template.HTML
	FilterEmailMetaFields(ctx context.Context, fields checkout.EmailFields, sentToAdmin bool, order *checkout.Order) checkout.EmailFields
	PageView(ctx context.Context, view checkout.PageView)
}
