package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	procurementapp "github.com/procurement/backend/internal/application/procurement"
)

// OrderHandler handles purchase order lifecycle API endpoints
type OrderHandler struct {
	BaseHandler
	status *procurementapp.OrderStatusService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(status *procurementapp.OrderStatusService) *OrderHandler {
	return &OrderHandler{status: status}
}

// TransitionOrderRequest represents a manual operational status transition
type TransitionOrderRequest struct {
	TargetStatus string `json:"target_status" binding:"required"`
}

// Transition moves an order to a new operational status and re-evaluates the
// rules attached to the change
func (h *OrderHandler) Transition(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req TransitionOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.status.Transition(c.Request.Context(), orderID, procurementapp.TransitionOrderRequest{
		TargetStatus: req.TargetStatus,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// RegisterRoutes registers all order lifecycle routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/orders/:id/status", h.Transition)
}
