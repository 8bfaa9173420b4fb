package handlers

import (
	"net/http"
	"strconv"

	"github.com/giftwheel/giveaway-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles purchase-related HTTP requests
type PurchaseHandler struct {
	purchaseService services.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

// RecordPurchaseRequest is the body for POST /purchases
type RecordPurchaseRequest struct {
	Username    string  `json:"username" binding:"required"`
	DisplayName string  `json:"displayName"`
	ItemID      string  `json:"itemId"`
	ItemName    string  `json:"itemName"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
}

// RecordPurchase handles POST /purchases
func (h *PurchaseHandler) RecordPurchase(c *gin.Context) {
	var request RecordPurchaseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := h.purchaseService.RecordPurchase(c.Request.Context(),
		request.Username, request.DisplayName, request.ItemID, request.ItemName, request.Amount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record purchase: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

// GetPurchasesByMember handles GET /purchases/member/:member
func (h *PurchaseHandler) GetPurchasesByMember(c *gin.Context) {
	username := c.Param("member")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	purchases, err := h.purchaseService.GetPurchasesByMember(c.Request.Context(), username, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve purchases: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, purchases)
}
