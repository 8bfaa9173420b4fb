package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/giftwheel/giveaway-backend/internal/services"
	"github.com/giftwheel/giveaway-backend/internal/wheel"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GiveawayHandler handles giveaway-related HTTP requests
type GiveawayHandler struct {
	giveawayService services.GiveawayService
}

// NewGiveawayHandler creates a new GiveawayHandler
func NewGiveawayHandler(giveawayService services.GiveawayService) *GiveawayHandler {
	return &GiveawayHandler{
		giveawayService: giveawayService,
	}
}

// CreateGiveawayRequest is the body for POST /giveaways
type CreateGiveawayRequest struct {
	Title  string `json:"title" binding:"required"`
	ItemID string `json:"itemId"`
}

// CreateGiveaway handles POST /giveaways
func (h *GiveawayHandler) CreateGiveaway(c *gin.Context) {
	var request CreateGiveawayRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createdBy, _ := c.Get("userEmail")
	creator, _ := createdBy.(string)

	giveaway, err := h.giveawayService.CreateGiveaway(c.Request.Context(), request.Title, request.ItemID, creator)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create giveaway: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, giveaway)
}

// GetGiveaways handles GET /giveaways
func (h *GiveawayHandler) GetGiveaways(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	giveaways, err := h.giveawayService.GetGiveaways(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve giveaways: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, giveaways)
}

// GetGiveawayByID handles GET /giveaways/:id
func (h *GiveawayHandler) GetGiveawayByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	giveaway, err := h.giveawayService.GetGiveawayByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Giveaway not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve giveaway: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, giveaway)
}

// SpinGiveawayRequest is the body for POST /giveaways/:id/spin. Winner,
// when set, skips selection and spins onto that member.
type SpinGiveawayRequest struct {
	Winner string `json:"winner"`
}

// SpinGiveaway handles POST /giveaways/:id/spin
func (h *GiveawayHandler) SpinGiveaway(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	// Body is optional; an empty body means a normal random spin.
	var request SpinGiveawayRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	triggeredBy, _ := c.Get("userEmail")
	trigger, _ := triggeredBy.(string)

	giveaway, err := h.giveawayService.SpinGiveaway(c.Request.Context(), id, request.Winner, trigger)
	if err != nil {
		var mismatch *wheel.WinnerMismatchError
		switch {
		case errors.Is(err, services.ErrSpinInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "A spin is already in progress for this giveaway"})
		case errors.Is(err, services.ErrGiveawayNotOpen):
			c.JSON(http.StatusConflict, gin.H{"error": "Giveaway is not open for spinning"})
		case errors.Is(err, wheel.ErrEmptyPool):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No member holds any entries"})
		case errors.As(err, &mismatch):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": mismatch.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to spin giveaway: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Giveaway spin completed", "giveaway": giveaway})
}

// GetGiveawayResult handles GET /giveaways/:id/result. Responds with the
// rendered wheel asset bytes (GIF, or PNG for the static fallback).
func (h *GiveawayHandler) GetGiveawayResult(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	winner, err := h.giveawayService.GetGiveawayResult(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No result for this giveaway yet"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve result: " + err.Error()})
		}
		return
	}

	if len(winner.Asset) == 0 {
		c.JSON(http.StatusOK, winner)
		return
	}
	c.Data(http.StatusOK, winner.AssetContentType, winner.Asset)
}

// GetEntryPool handles GET /giveaways/:id/entries, previewing the pool the
// next spin would draw from.
func (h *GiveawayHandler) GetEntryPool(c *gin.Context) {
	members, err := h.giveawayService.GetEntryPool(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry pool: " + err.Error()})
		return
	}

	total := 0
	for _, m := range members {
		total += m.Entries
	}
	type entryPreview struct {
		Username       string  `json:"username"`
		Label          string  `json:"label"`
		Entries        int     `json:"entries"`
		WinProbability float64 `json:"winProbability"`
	}
	preview := make([]entryPreview, 0, len(members))
	for _, m := range members {
		p := 0.0
		if total > 0 {
			p = float64(m.Entries) / float64(total)
		}
		preview = append(preview, entryPreview{
			Username:       m.Username,
			Label:          m.Label(),
			Entries:        m.Entries,
			WinProbability: p,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"participants": len(preview),
		"totalEntries": total,
		"entries":      preview,
	})
}
