package router

import (
	"github.com/vatid/backend/internal/interfaces/http/handler"
)

// Handlers groups the HTTP handlers of the storefront
type Handlers struct {
	System     *handler.SystemHandler
	Checkout   *handler.CheckoutHandler
	Orders     *handler.OrderHandler
	Storefront *handler.StorefrontHandler
}

// StorefrontGroups builds the API and page route groups. checkoutPath is the
// path the checkout page is served at.
func StorefrontGroups(h Handlers, checkoutPath string) (api []*DomainGroup, pages []*DomainGroup) {
	if checkoutPath == "" {
		checkoutPath = "/checkout"
	}

	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo)

	co := NewDomainGroup("checkout", "/checkout").
		GET("/fields", h.Checkout.GetFields).
		GET("/block-fields", h.Checkout.GetBlockFields).
		POST("/classic", h.Checkout.PlaceClassic).
		POST("/block", h.Checkout.PlaceBlock)

	orders := NewDomainGroup("orders", "/orders").
		GET("/:id", h.Orders.GetOrder).
		GET("/:id/meta", h.Orders.GetOrderMeta).
		GET("/:id/email-fields", h.Orders.GetEmailFields).
		GET("/:id/email", h.Orders.PreviewEmail)

	storefront := NewDomainGroup("storefront", "").
		GET("/health", h.System.Health).
		GET(checkoutPath, h.Storefront.CheckoutPage)
	storefront.Group("admin", "/admin").
		GET("/orders/:id", h.Storefront.AdminOrderPage)

	return []*DomainGroup{system, co, orders}, []*DomainGroup{storefront}
}

// SetupStorefront registers the storefront routes on r and runs Setup
func SetupStorefront(r *Router, h Handlers, checkoutPath string) []RouteInfo {
	api, pages := StorefrontGroups(h, checkoutPath)

	var routes []RouteInfo
	for _, g := range api {
		r.Register(g)
		routes = append(routes, g.Routes(r.APIPrefix())...)
	}
	for _, g := range pages {
		r.RegisterPage(g)
		routes = append(routes, g.Routes("")...)
	}
	r.Setup()
	return routes
}
