package handler

import (
	"net/http"
	"time"

	"taraas/internal/domain"
	"taraas/internal/middleware"
	"taraas/internal/repository"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerRepo *repository.CustomerRepository
	txRepo       *repository.TransactionRepository
}

func NewCustomerHandler(customerRepo *repository.CustomerRepository, txRepo *repository.TransactionRepository) *CustomerHandler {
	return &CustomerHandler{customerRepo: customerRepo, txRepo: txRepo}
}

// Exists reports whether an account is registered under the given email.
func (h *CustomerHandler) Exists(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	exists, err := h.customerRepo.ExistsByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// Me returns the authenticated customer's profile with their buyer tier,
// computed from completed spend over the trailing twelve months.
func (h *CustomerHandler) Me(c *gin.Context) {
	customerID := middleware.GetCustomerID(c)
	cust, err := h.customerRepo.GetByID(customerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	since := time.Now().UTC().AddDate(-1, 0, 0)
	spent, err := h.txRepo.SumCompletedByCustomerSince(customerID, since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tier computation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"customer":    cust,
		"buyer_tier":  domain.TierForSpend(spent),
		"total_spent": spent,
	})
}

type updateProfileRequest struct {
	Name            string `json:"name"`
	City            string `json:"city"`
	ProfilePhotoURL string `json:"profile_photo_url"`
}

func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	customerID := middleware.GetCustomerID(c)
	cust, err := h.customerRepo.GetByID(customerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != "" {
		cust.Name = req.Name
	}
	if req.City != "" {
		cust.City = req.City
	}
	if req.ProfilePhotoURL != "" {
		cust.ProfilePhotoURL = req.ProfilePhotoURL
	}
	if err := h.customerRepo.Update(cust); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, cust)
}
