package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/vatid/backend/internal/application/checkout"
	"github.com/vatid/backend/internal/interfaces/http/dto"
)

// OrderHandler handles the order read endpoints
type OrderHandler struct {
	BaseHandler
	orders *checkoutapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *checkoutapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// GetOrder godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=checkoutapp.OrderResponse}
// @Failure      404 {object} dto.Response
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, checkoutapp.ToOrderResponse(order))
}

// GetOrderMeta godoc
// @Summary      Get an order's meta data
// @Description  Served from the order meta cache when warm
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=map[string]string}
// @Failure      404 {object} dto.Response
// @Router       /orders/{id}/meta [get]
func (h *OrderHandler) GetOrderMeta(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	meta, err := h.orders.OrderMeta(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, meta)
}

// GetEmailFields godoc
// @Summary      List the extra fields of an order email
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        sent_to_admin query bool false "Admin notification"
// @Success      200 {object} dto.Response{data=[]checkoutapp.EmailFieldResponse}
// @Failure      404 {object} dto.Response
// @Router       /orders/{id}/email-fields [get]
func (h *OrderHandler) GetEmailFields(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var q dto.EmailFieldsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid sent_to_admin value")
		return
	}

	fields, err := h.orders.EmailFields(c.Request.Context(), id, q.SentToAdmin)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, checkoutapp.ToEmailFieldResponses(fields))
}

// PreviewEmail godoc
// @Summary      Render an order notification email
// @Tags         orders
// @Produce      html
// @Param        id path string true "Order ID" format(uuid)
// @Param        sent_to_admin query bool false "Admin notification"
// @Success      200 {string} string "HTML mail body"
// @Failure      404 {object} dto.Response
// @Router       /orders/{id}/email [get]
func (h *OrderHandler) PreviewEmail(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var q dto.EmailFieldsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid sent_to_admin value")
		return
	}

	body, err := h.orders.RenderEmail(c.Request.Context(), id, q.SentToAdmin)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.HTML(c, body)
}
