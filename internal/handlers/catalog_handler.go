package handlers

import (
	"net/http"

	"github.com/giftwheel/giveaway-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// CatalogHandler handles cosmetics catalog HTTP requests
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// Search handles GET /catalog/search?q=
func (h *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing q query parameter"})
		return
	}

	items, err := h.catalogService.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catalog search failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetPrice handles GET /catalog/items/:id/price
func (h *CatalogHandler) GetPrice(c *gin.Context) {
	itemID := c.Param("id")

	estimate, err := h.catalogService.EstimatePrice(c.Request.Context(), itemID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Price estimation failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, estimate)
}
