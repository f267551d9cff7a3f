package handler

import (
	"net/http"
	"strconv"

	"taraas/internal/clock"
	"taraas/internal/domain"
	"taraas/internal/repository"

	"github.com/gin-gonic/gin"
)

type StatementHandler struct {
	statementRepo *repository.StatementRepository
	clk           clock.Clock
}

func NewStatementHandler(statementRepo *repository.StatementRepository, clk clock.Clock) *StatementHandler {
	return &StatementHandler{statementRepo: statementRepo, clk: clk}
}

func (h *StatementHandler) ListByProvider(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	statements, err := h.statementRepo.ListByProvider(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"statements": statements})
}

// Pay marks an UNPAID statement as PAID and records the payment time.
func (h *StatementHandler) Pay(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid statement id"})
		return
	}
	statement, err := h.statementRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "statement not found"})
		return
	}
	if statement.Status != domain.StatementUnpaid {
		c.JSON(http.StatusConflict, gin.H{"error": "statement is not unpaid"})
		return
	}
	now := h.clk.Now()
	statement.Status = domain.StatementPaid
	statement.PaidAt = &now
	if err := h.statementRepo.Update(statement); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, statement)
}
