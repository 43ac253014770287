package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	invoicingapp "github.com/shopadmin/backend/internal/application/invoicing"
	orderingapp "github.com/shopadmin/backend/internal/application/ordering"
)

// OrderHandler handles order read and sync endpoints
type OrderHandler struct {
	BaseHandler
	orderService   *orderingapp.OrderService
	invoiceService *invoicingapp.InvoiceService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderingapp.OrderService, invoiceService *invoicingapp.InvoiceService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		invoiceService: invoiceService,
	}
}

// List retrieves a paginated order listing with optional search and status filters.
// GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderingapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID retrieves a single cached order.
// GET /api/v1/orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Sync pulls recent orders from the commerce platform into the local cache.
// POST /api/v1/sync/orders
func (h *OrderHandler) Sync(c *gin.Context) {
	result, err := h.orderService.Sync(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Invoice renders an order as a PDF invoice and streams it as an attachment.
// GET /api/v1/orders/:id/invoice
func (h *OrderHandler) Invoice(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	invoice, err := h.invoiceService.Render(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoice.Filename))
	c.Data(http.StatusOK, "application/pdf", invoice.PDF)
}
