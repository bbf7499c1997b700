package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	requisitionapp "github.com/procurement/backend/internal/application/requisition"
	"github.com/shopspring/decimal"
)

// SourcingHandler handles requisition sourcing option API endpoints
type SourcingHandler struct {
	BaseHandler
	sourcing *requisitionapp.SourcingOptionService
}

// NewSourcingHandler creates a new SourcingHandler
func NewSourcingHandler(sourcing *requisitionapp.SourcingOptionService) *SourcingHandler {
	return &SourcingHandler{sourcing: sourcing}
}

// SourcingOptionInput represents one supplier quote in a replace request
type SourcingOptionInput struct {
	LineID         string          `json:"line_id" binding:"required,uuid"`
	SupplierID     string          `json:"supplier_id" binding:"required,uuid"`
	QuotedQuantity decimal.Decimal `json:"quoted_quantity" binding:"required"`
	QuotedPrice    decimal.Decimal `json:"quoted_price"`
	Selected       bool            `json:"selected"`
}

// ReplaceSourcingOptionsRequest replaces a requisition's full option set
type ReplaceSourcingOptionsRequest struct {
	Options []SourcingOptionInput `json:"options" binding:"dive"`
}

// Replace swaps the sourcing option set of an open requisition
func (h *SourcingHandler) Replace(c *gin.Context) {
	requisitionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid requisition ID format")
		return
	}

	var req ReplaceSourcingOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := requisitionapp.ReplaceSourcingOptionsRequest{
		RequisitionID: requisitionID,
		Options:       make([]requisitionapp.SourcingOptionInput, 0, len(req.Options)),
	}
	for _, option := range req.Options {
		lineID, err := uuid.Parse(option.LineID)
		if err != nil {
			h.BadRequest(c, "Invalid line ID format")
			return
		}
		supplierID, err := uuid.Parse(option.SupplierID)
		if err != nil {
			h.BadRequest(c, "Invalid supplier ID format")
			return
		}
		appReq.Options = append(appReq.Options, requisitionapp.SourcingOptionInput{
			LineID:         lineID,
			SupplierID:     supplierID,
			QuotedQuantity: option.QuotedQuantity,
			QuotedPrice:    option.QuotedPrice,
			Selected:       option.Selected,
		})
	}

	result, err := h.sourcing.ReplaceSourcingOptions(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers all sourcing option routes
func (h *SourcingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/requisitions/:id/sourcing-options", h.Replace)
}
