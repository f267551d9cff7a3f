package handler

import (
	"net/http"
	"strconv"

	"taraas/internal/domain"
	"taraas/internal/models"
	"taraas/internal/repository"

	"github.com/gin-gonic/gin"
)

type ProviderHandler struct {
	providerRepo *repository.ProviderRepository
}

func NewProviderHandler(providerRepo *repository.ProviderRepository) *ProviderHandler {
	return &ProviderHandler{providerRepo: providerRepo}
}

type providerRequest struct {
	Name            string   `json:"name" binding:"required"`
	Profession      string   `json:"profession"`
	Experience      string   `json:"experience"`
	ServiceCategory string   `json:"service_category"`
	DeliveryType    string   `json:"delivery_type"`
	Pricing         string   `json:"pricing"`
	Address         string   `json:"address"`
	City            string   `json:"city"`
	Pincode         string   `json:"pincode"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	ProfilePhotoURL string   `json:"profile_photo_url"`
}

func validDeliveryType(t string) bool {
	return t == domain.DeliveryLocal || t == domain.DeliveryRemote || t == domain.DeliveryHybrid
}

func (h *ProviderHandler) Create(c *gin.Context) {
	var req providerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DeliveryType == "" {
		req.DeliveryType = domain.DeliveryLocal
	}
	if !validDeliveryType(req.DeliveryType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid delivery type"})
		return
	}
	p := &models.Provider{
		Name:            req.Name,
		Profession:      req.Profession,
		Experience:      req.Experience,
		ServiceCategory: req.ServiceCategory,
		DeliveryType:    req.DeliveryType,
		Pricing:         req.Pricing,
		Address:         req.Address,
		City:            req.City,
		Pincode:         req.Pincode,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		ProfilePhotoURL: req.ProfilePhotoURL,
	}
	if err := h.providerRepo.Create(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProviderHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	p, err := h.providerRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProviderHandler) List(c *gin.Context) {
	providers, err := h.providerRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

func (h *ProviderHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	p, err := h.providerRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "provider not found"})
		return
	}
	var req providerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DeliveryType != "" && !validDeliveryType(req.DeliveryType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid delivery type"})
		return
	}
	p.Name = req.Name
	p.Profession = req.Profession
	p.Experience = req.Experience
	p.ServiceCategory = req.ServiceCategory
	if req.DeliveryType != "" {
		p.DeliveryType = req.DeliveryType
	}
	p.Pricing = req.Pricing
	p.Address = req.Address
	p.City = req.City
	p.Pincode = req.Pincode
	if req.Latitude != nil {
		p.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		p.Longitude = req.Longitude
	}
	if req.ProfilePhotoURL != "" {
		p.ProfilePhotoURL = req.ProfilePhotoURL
	}
	if err := h.providerRepo.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, p)
}
