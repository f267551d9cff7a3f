package handler

import (
	"errors"
	"net/http"

	"taraas/internal/domain"
	"taraas/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	settlementSvc *service.SettlementService
}

func NewAdminHandler(settlementSvc *service.SettlementService) *AdminHandler {
	return &AdminHandler{settlementSvc: settlementSvc}
}

type calculateCommissionRequest struct {
	BillingMonth     string `json:"billing_month" binding:"required"` // YYYY-MM
	ForceRecalculate bool   `json:"force_recalculate"`
}

// CalculateCommission triggers an on-demand settlement run attributed to the
// admin actor.
func (h *AdminHandler) CalculateCommission(c *gin.Context) {
	var req calculateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	success, failures, err := h.settlementSvc.SettleMonth(req.BillingMonth, req.ForceRecalculate, domain.ActorAdmin)
	if err != nil {
		if errors.Is(err, service.ErrInvalidBillingMonth) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "settlement run failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"billing_month": req.BillingMonth,
		"success_count": success,
		"failure_count": failures,
	})
}
