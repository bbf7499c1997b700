package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	procurementapp "github.com/procurement/backend/internal/application/procurement"
	"github.com/shopspring/decimal"
)

// PaymentHandler handles payment ledger API endpoints
type PaymentHandler struct {
	BaseHandler
	payments *procurementapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments *procurementapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// RegisterPaymentRequest represents a request to register a payment
type RegisterPaymentRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Kind            string          `json:"kind" binding:"required,oneof=FULL ADVANCE"`
	PaymentSourceID *string         `json:"payment_source_id" binding:"omitempty,uuid"`
	Reference       string          `json:"reference" binding:"max=200"`
}

// ReversePaymentRequest represents a request to reverse a payment
type ReversePaymentRequest struct {
	Reference string `json:"reference" binding:"max=200"`
}

// CreatePaymentSourceRequest represents a request to add a payment source
type CreatePaymentSourceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Kind string `json:"kind" binding:"required,oneof=BANK CASH CARD OTHER"`
}

// Register appends a payment entry to an order's ledger
func (h *PaymentHandler) Register(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := procurementapp.RegisterPaymentRequest{
		OrderID:   orderID,
		Amount:    req.Amount,
		Kind:      req.Kind,
		Reference: req.Reference,
	}
	if req.PaymentSourceID != nil {
		sourceID, err := uuid.Parse(*req.PaymentSourceID)
		if err != nil {
			h.BadRequest(c, "Invalid payment source ID format")
			return
		}
		appReq.PaymentSourceID = &sourceID
	}

	entry, err := h.payments.RegisterPayment(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// Reverse appends the offsetting entry for a registered payment
func (h *PaymentHandler) Reverse(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	var req ReversePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reversal, err := h.payments.ReversePayment(c.Request.Context(), procurementapp.ReversePaymentRequest{
		PaymentID: paymentID,
		Reference: req.Reference,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, reversal)
}

// CreateSource adds a payment source catalog entry
func (h *PaymentHandler) CreateSource(c *gin.Context) {
	var req CreatePaymentSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	source, err := h.payments.CreatePaymentSource(c.Request.Context(), procurementapp.CreatePaymentSourceRequest{
		Name: req.Name,
		Kind: req.Kind,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, source)
}

// RegisterRoutes registers all payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders/:id/payments", h.Register)
	rg.POST("/payments/:id/reversals", h.Reverse)
	rg.POST("/payment-sources", h.CreateSource)
}
