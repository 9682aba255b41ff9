package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/vatid/backend/internal/application/checkout"
)

// StorefrontHandler serves the rendered HTML pages: the checkout page and
// the admin order screen
type StorefrontHandler struct {
	BaseHandler
	pages  *checkoutapp.PageService
	orders *checkoutapp.OrderService
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(pages *checkoutapp.PageService, orders *checkoutapp.OrderService) *StorefrontHandler {
	return &StorefrontHandler{pages: pages, orders: orders}
}

// CheckoutPage godoc
// @Summary      Render the checkout page
// @Tags         storefront
// @Produce      html
// @Success      200 {string} string "Checkout page"
// @Router       /checkout [get]
func (h *StorefrontHandler) CheckoutPage(c *gin.Context) {
	html, _, err := h.pages.CheckoutPage(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.HTML(c, html)
}

// AdminOrderPage godoc
// @Summary      Render the admin order screen
// @Description  Billing address block followed by the extension fragments
// @Tags         storefront
// @Produce      html
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {string} string "Admin order page"
// @Failure      404 {object} dto.Response
// @Router       /admin/orders/{id} [get]
func (h *StorefrontHandler) AdminOrderPage(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	html, err := h.orders.AdminOrderView(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.HTML(c, html)
}
