package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	notificationapp "github.com/shopadmin/backend/internal/application/notification"
)

// NotificationHandler handles outbound notification endpoints
type NotificationHandler struct {
	BaseHandler
	notificationService *notificationapp.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *notificationapp.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// SendEmail sends an email through the configured provider.
// POST /api/v1/notifications/email
func (h *NotificationHandler) SendEmail(c *gin.Context) {
	var req notificationapp.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.notificationService.SendEmail(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"sent": true})
}

// SendSMS sends a text message through the configured provider.
// POST /api/v1/notifications/sms
func (h *NotificationHandler) SendSMS(c *gin.Context) {
	var req notificationapp.SendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.notificationService.SendSMS(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"sent": true})
}

// SendOrderConfirmation mails the confirmation for a cached order to its
// customer.
// POST /api/v1/orders/:id/send-confirmation
func (h *NotificationHandler) SendOrderConfirmation(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.notificationService.SendOrderConfirmationEmail(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"sent": true})
}

// SendOrderSMS texts the confirmation for a cached order to its customer.
// POST /api/v1/orders/:id/send-sms
func (h *NotificationHandler) SendOrderSMS(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.notificationService.SendOrderConfirmationSMS(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"sent": true})
}
