package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	procurementapp "github.com/procurement/backend/internal/application/procurement"
	"github.com/shopspring/decimal"
)

// ReceptionHandler handles goods receipt API endpoints
type ReceptionHandler struct {
	BaseHandler
	receipts *procurementapp.GoodsReceiptService
}

// NewReceptionHandler creates a new ReceptionHandler
func NewReceptionHandler(receipts *procurementapp.GoodsReceiptService) *ReceptionHandler {
	return &ReceptionHandler{receipts: receipts}
}

// ReceptionLineInput represents one received order line
type ReceptionLineInput struct {
	LineID   string          `json:"line_id" binding:"required,uuid"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// RecordReceptionRequest represents a goods receipt against an order
type RecordReceptionRequest struct {
	LocationID string               `json:"location_id" binding:"required,uuid"`
	ProjectID  string               `json:"project_id" binding:"required,uuid"`
	Currency   string               `json:"currency" binding:"omitempty,len=3"`
	Lines      []ReceptionLineInput `json:"lines" binding:"required,min=1,dive"`
}

// ReverseMovementRequest represents a request to void an inventory movement
type ReverseMovementRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// Record applies received quantities to an order and runs the downstream
// reconciliation chain
func (h *ReceptionHandler) Record(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req RecordReceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		h.BadRequest(c, "Invalid project ID format")
		return
	}

	appReq := procurementapp.RecordReceptionRequest{
		OrderID:    orderID,
		LocationID: locationID,
		ProjectID:  projectID,
		Currency:   req.Currency,
		Lines:      make([]procurementapp.ReceptionLineInput, 0, len(req.Lines)),
	}
	for _, line := range req.Lines {
		lineID, err := uuid.Parse(line.LineID)
		if err != nil {
			h.BadRequest(c, "Invalid line ID format")
			return
		}
		appReq.Lines = append(appReq.Lines, procurementapp.ReceptionLineInput{
			LineID:   lineID,
			Quantity: line.Quantity,
		})
	}

	result, err := h.receipts.RecordReception(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ReverseMovement voids a movement and applies the compensating entry
func (h *ReceptionHandler) ReverseMovement(c *gin.Context) {
	movementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid movement ID format")
		return
	}

	var req ReverseMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.receipts.ReverseMovement(c.Request.Context(), movementID, req.Reason); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all goods receipt routes
func (h *ReceptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders/:id/receptions", h.Record)
	rg.POST("/movements/:id/reversals", h.ReverseMovement)
}
