package handler

import (
	"net/http"
	"strconv"
	"strings"

	"taraas/internal/domain"
	"taraas/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchSvc *service.SearchService
}

func NewSearchHandler(searchSvc *service.SearchService) *SearchHandler {
	return &SearchHandler{searchSvc: searchSvc}
}

// Search runs the mode-aware weighted ranking over providers. Malformed or
// missing coordinates silently fall back to text matching.
func (h *SearchHandler) Search(c *gin.Context) {
	params := service.SearchParams{
		Service: strings.TrimSpace(c.Query("service")),
		City:    strings.TrimSpace(c.Query("city")),
		Mode:    c.DefaultQuery("mode", domain.ModeNearby),
	}
	if v := c.Query("lat"); v != "" {
		if lat, err := strconv.ParseFloat(v, 64); err == nil {
			params.Lat = &lat
		}
	}
	if v := c.Query("lon"); v != "" {
		if lon, err := strconv.ParseFloat(v, 64); err == nil {
			params.Lon = &lon
		}
	}

	results, err := h.searchSvc.Rank(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
