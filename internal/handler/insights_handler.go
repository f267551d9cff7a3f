package handler

import (
	"net/http"
	"strconv"
	"time"

	"taraas/internal/clock"
	"taraas/internal/middleware"
	"taraas/internal/models"
	"taraas/internal/repository"
	"taraas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// leadDedupeWindow suppresses repeat lead events from the same customer
// through the same contact method.
const leadDedupeWindow = time.Hour

type InsightsHandler struct {
	insightsRepo *repository.InsightsRepository
	txRepo       *repository.TransactionRepository
	customerRepo *repository.CustomerRepository
	clk          clock.Clock
}

func NewInsightsHandler(insightsRepo *repository.InsightsRepository, txRepo *repository.TransactionRepository, customerRepo *repository.CustomerRepository, clk clock.Clock) *InsightsHandler {
	return &InsightsHandler{insightsRepo: insightsRepo, txRepo: txRepo, customerRepo: customerRepo, clk: clk}
}

type recordViewRequest struct {
	SessionID string `json:"session_id"`
}

// RecordView logs a profile visit. Anonymous visitors get a generated session
// so the dashboard's unique-view count stays meaningful.
func (h *InsightsHandler) RecordView(c *gin.Context) {
	providerID, ok := parseProviderParam(c)
	if !ok {
		return
	}
	var req recordViewRequest
	_ = c.ShouldBindJSON(&req)
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}
	view := &models.ProfileView{
		ProviderID: providerID,
		SessionID:  req.SessionID,
		Timestamp:  h.clk.Now(),
	}
	if err := h.insightsRepo.RecordView(view); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "record failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "view recorded"})
}

type recordLeadRequest struct {
	ContactMethod string `json:"contact_method" binding:"required"` // PHONE, WHATSAPP, EMAIL
}

// RecordLead logs a contact attempt, deduplicated per customer, provider and
// method within the dedupe window.
func (h *InsightsHandler) RecordLead(c *gin.Context) {
	providerID, ok := parseProviderParam(c)
	if !ok {
		return
	}
	var req recordLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customerID := middleware.GetCustomerID(c)
	now := h.clk.Now()

	recent, err := h.insightsRepo.HasRecentLead(providerID, customerID, req.ContactMethod, now.Add(-leadDedupeWindow))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "record failed"})
		return
	}
	if recent {
		c.JSON(http.StatusOK, gin.H{"message": "lead already recorded"})
		return
	}

	cust, err := h.customerRepo.GetByID(customerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	lead := &models.LeadEvent{
		ProviderID:    providerID,
		CustomerID:    cust.ID,
		CustomerName:  cust.Name,
		ContactMethod: req.ContactMethod,
		Timestamp:     now,
	}
	if err := h.insightsRepo.RecordLead(lead); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "record failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "lead recorded"})
}

// Dashboard aggregates a provider's monthly metrics: unique profile views,
// lead count and history, completed orders and turnover. Month defaults to
// the current calendar month.
func (h *InsightsHandler) Dashboard(c *gin.Context) {
	providerID, ok := parseProviderParam(c)
	if !ok {
		return
	}
	month := c.DefaultQuery("month", h.clk.Now().Format("2006-01"))
	start, _, err := service.MonthWindow(month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be in YYYY-MM format"})
		return
	}
	end := start.AddDate(0, 1, 0)

	views, err := h.insightsRepo.ViewsInRange(providerID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard failed"})
		return
	}
	sessions := make(map[string]struct{}, len(views))
	for _, v := range views {
		sessions[v.SessionID] = struct{}{}
	}

	leads, err := h.insightsRepo.LeadsInRange(providerID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard failed"})
		return
	}

	txs, err := h.txRepo.FindCompletedInRange(providerID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard failed"})
		return
	}
	var turnover float64
	for _, tx := range txs {
		turnover += tx.Amount
	}

	c.JSON(http.StatusOK, gin.H{
		"month":         month,
		"profile_views": len(sessions),
		"lead_count":    len(leads),
		"leads":         leads,
		"total_orders":  len(txs),
		"turnover":      turnover,
	})
}

func parseProviderParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return 0, false
	}
	return uint(id), true
}
