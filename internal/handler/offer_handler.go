package handler

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"taraas/internal/clock"
	"taraas/internal/domain"
	"taraas/internal/middleware"
	"taraas/internal/models"
	"taraas/internal/repository"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	offerRepo *repository.OfferRepository
	provRepo  *repository.ProviderRepository
	txRepo    *repository.TransactionRepository
	clk       clock.Clock
}

func NewOfferHandler(offerRepo *repository.OfferRepository, provRepo *repository.ProviderRepository, txRepo *repository.TransactionRepository, clk clock.Clock) *OfferHandler {
	return &OfferHandler{offerRepo: offerRepo, provRepo: provRepo, txRepo: txRepo, clk: clk}
}

type offerRequest struct {
	ProviderID  uint    `json:"provider_id" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Type        string  `json:"type" binding:"required"`
	Value       string  `json:"value"`
	Conditions  string  `json:"conditions"`
	MinTier     string  `json:"min_tier"`
	StartDate   *string `json:"start_date"` // RFC3339
	EndDate     *string `json:"end_date"`
	Featured    bool    `json:"featured"`
}

func validOfferType(t string) bool {
	switch t {
	case domain.OfferPercentage, domain.OfferFlat, domain.OfferBuyXGetY, domain.OfferConditional, domain.OfferCustom:
		return true
	}
	return false
}

// Create stores an offer with a snapshot of the provider's listing details,
// so offer pages render without a join back to the provider table.
func (h *OfferHandler) Create(c *gin.Context) {
	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validOfferType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offer type"})
		return
	}
	if req.MinTier == "" {
		req.MinTier = domain.BuyerNotVerified
	}
	if _, ok := domain.BuyerTierRank[req.MinTier]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min tier"})
		return
	}
	provider, err := h.provRepo.GetByID(req.ProviderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
		return
	}
	offer := &models.Offer{
		ProviderID:  provider.ID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Value:       req.Value,
		Conditions:  req.Conditions,
		MinTier:     req.MinTier,
		IsActive:    true,
		Featured:    req.Featured,

		ProviderName:         provider.Name,
		ProviderProfilePhoto: provider.ProfilePhotoURL,
		ServiceCategory:      provider.ServiceCategory,
		Location:             provider.City,
		DeliveryType:         provider.DeliveryType,
	}
	if req.StartDate != nil {
		t, err := parseOfferDate(*req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
			return
		}
		offer.StartDate = &t
	}
	if req.EndDate != nil {
		t, err := parseOfferDate(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
			return
		}
		offer.EndDate = &t
	}
	if err := h.offerRepo.Save(offer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, offer)
}

func (h *OfferHandler) ListByProvider(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	offers, err := h.offerRepo.ListByProvider(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// ListActive returns currently live offers the authenticated customer is
// eligible for, filtered by category and location, featured first.
func (h *OfferHandler) ListActive(c *gin.Context) {
	offers, err := h.offerRepo.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	tier, err := h.buyerTier(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tier computation failed"})
		return
	}
	tierRank := domain.BuyerTierRank[tier]

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	location := strings.ToLower(strings.TrimSpace(c.Query("location")))
	now := h.clk.Now()

	eligible := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		if o.StartDate != nil && now.Before(*o.StartDate) {
			continue
		}
		if o.EndDate != nil && now.After(*o.EndDate) {
			continue
		}
		if domain.BuyerTierRank[o.MinTier] > tierRank {
			continue
		}
		if category != "" && !strings.Contains(strings.ToLower(o.ServiceCategory), category) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(o.Location), location) {
			continue
		}
		eligible = append(eligible, o)
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Featured != eligible[j].Featured {
			return eligible[i].Featured
		}
		return eligible[i].CreatedAt.After(eligible[j].CreatedAt)
	})
	c.JSON(http.StatusOK, gin.H{"offers": eligible, "buyer_tier": tier})
}

func (h *OfferHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offer id"})
		return
	}
	if _, err := h.offerRepo.GetByID(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
		return
	}
	if err := h.offerRepo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "offer deleted"})
}

func (h *OfferHandler) buyerTier(c *gin.Context) (string, error) {
	customerID := middleware.GetCustomerID(c)
	since := h.clk.Now().AddDate(-1, 0, 0)
	spent, err := h.txRepo.SumCompletedByCustomerSince(customerID, since)
	if err != nil {
		return "", err
	}
	return domain.TierForSpend(spent), nil
}

func parseOfferDate(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
