package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/procurement/backend/internal/application/reconciliation"
)

// BackfillHandler triggers reconciliation backfill passes
type BackfillHandler struct {
	BaseHandler
	backfill *reconciliation.BackfillService
}

// NewBackfillHandler creates a new BackfillHandler
func NewBackfillHandler(backfill *reconciliation.BackfillService) *BackfillHandler {
	return &BackfillHandler{backfill: backfill}
}

// Run executes one full backfill pass and reports its statistics. The pass
// is idempotent, so repeated calls converge on the same end state.
func (h *BackfillHandler) Run(c *gin.Context) {
	stats, err := h.backfill.Run(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// RegisterRoutes registers all backfill routes
func (h *BackfillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/backfill", h.Run)
}
