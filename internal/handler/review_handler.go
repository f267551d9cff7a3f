package handler

import (
	"net/http"
	"strconv"

	"taraas/internal/middleware"
	"taraas/internal/models"
	"taraas/internal/repository"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewRepo   *repository.ReviewRepository
	providerRepo *repository.ProviderRepository
	customerRepo *repository.CustomerRepository
}

func NewReviewHandler(reviewRepo *repository.ReviewRepository, providerRepo *repository.ProviderRepository, customerRepo *repository.CustomerRepository) *ReviewHandler {
	return &ReviewHandler{reviewRepo: reviewRepo, providerRepo: providerRepo, customerRepo: customerRepo}
}

type submitReviewRequest struct {
	ProviderID uint   `json:"provider_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Text       string `json:"text"`
}

func (h *ReviewHandler) Submit(c *gin.Context) {
	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}
	provider, err := h.providerRepo.GetByID(req.ProviderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
		return
	}
	customerID := middleware.GetCustomerID(c)
	cust, err := h.customerRepo.GetByID(customerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	review := &models.Review{
		ProviderID:   provider.ID,
		ProviderName: provider.Name,
		CustomerID:   cust.ID,
		CustomerName: cust.Name,
		Rating:       req.Rating,
		Text:         req.Text,
	}
	if err := h.reviewRepo.Create(review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "review failed"})
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) ListByProvider(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	reviews, err := h.reviewRepo.ListByProvider(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *ReviewHandler) ListMine(c *gin.Context) {
	customerID := middleware.GetCustomerID(c)
	reviews, err := h.reviewRepo.ListByCustomer(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
