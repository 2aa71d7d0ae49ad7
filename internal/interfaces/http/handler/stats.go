package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/invoiceapp/backend/internal/application/billing"
)

// StatsHandler serves the dashboard overview for the authenticated account
type StatsHandler struct {
	BaseHandler
	statsService *billingapp.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *billingapp.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Overview returns resource totals and a per-status invoice breakdown
func (h *StatsHandler) Overview(c *gin.Context) {
	ownerID, err := getAuthUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	stats, err := h.statsService.Overview(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// RegisterRoutes registers stats routes
func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.Overview)
}
