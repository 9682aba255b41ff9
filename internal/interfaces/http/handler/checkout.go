package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/vatid/backend/internal/application/checkout"
	"github.com/vatid/backend/internal/domain/checkout"
	"github.com/vatid/backend/internal/interfaces/http/dto"
)

// CheckoutHandler handles the checkout field and order submission endpoints
type CheckoutHandler struct {
	BaseHandler
	fields *checkoutapp.FieldService
	orders *checkoutapp.OrderService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(fields *checkoutapp.FieldService, orders *checkoutapp.OrderService) *CheckoutHandler {
	return &CheckoutHandler{
		fields: fields,
		orders: orders,
	}
}

// GetFields godoc
// @Summary      List classic checkout fields
// @Description  Returns the classic checkout form fields per section, ordered by priority
// @Tags         checkout
// @Produce      json
// @Success      200 {object} dto.Response{data=[]checkoutapp.FieldSectionResponse}
// @Router       /checkout/fields [get]
func (h *CheckoutHandler) GetFields(c *gin.Context) {
	fields := h.fields.ClassicFields(c.Request.Context())
	h.Success(c, checkoutapp.ToFieldSectionResponses(fields))
}

// GetBlockFields godoc
// @Summary      List block checkout additional fields
// @Tags         checkout
// @Produce      json
// @Success      200 {object} dto.Response{data=[]checkout.AdditionalField}
// @Failure      404 {object} dto.Response
// @Router       /checkout/block-fields [get]
func (h *CheckoutHandler) GetBlockFields(c *gin.Context) {
	if !h.fields.BlockEnabled() {
		h.NotFound(c, "Block checkout is not available")
		return
	}
	h.Success(c, h.fields.BlockFields())
}

// PlaceClassic godoc
// @Summary      Place an order from the classic checkout form
// @Tags         checkout
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Success      201 {object} dto.Response{data=checkoutapp.OrderResponse}
// @Failure      400 {object} dto.Response
// @Router       /checkout/classic [post]
func (h *CheckoutHandler) PlaceClassic(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		h.HandleError(c, err)
		return
	}

	req, details := dto.ParseClassicCheckout(c.Request.PostForm)
	if len(details) > 0 {
		h.ValidationError(c, details)
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), checkoutapp.PlaceOrderRequest{
		Variant: checkout.VariantClassic,
		Email:   req.Billing.Email,
		Billing: req.Billing,
		Total:   req.Total,
		Form:    req.Form,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, checkoutapp.ToOrderResponse(order))
}

// PlaceBlock godoc
// @Summary      Place an order from the block checkout
// @Description  Extension field values are read from the extensions object, keyed by field id
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body dto.BlockCheckoutRequest true "Checkout submission"
// @Success      201 {object} dto.Response{data=checkoutapp.OrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /checkout/block [post]
func (h *CheckoutHandler) PlaceBlock(c *gin.Context) {
	if !h.fields.BlockEnabled() {
		h.NotFound(c, "Block checkout is not available")
		return
	}

	var req dto.BlockCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), checkoutapp.PlaceOrderRequest{
		Variant: checkout.VariantBlock,
		Email:   req.Email,
		Billing: req.BillingAddress.ToDomain(),
		Total:   req.Total,
		Form:    req.FormData(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, checkoutapp.ToOrderResponse(order))
}
