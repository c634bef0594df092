package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spizarnia/backend/internal/service"
)

// ProfileHandler handles user profile requests
type ProfileHandler struct {
	profile *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(profile *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profile: profile,
	}
}

// RegisterRoutes registers the profile routes
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.Get)
		profile.GET("/dietary", h.GetDietary)
		profile.PUT("/allergens", h.SetAllergens)
		profile.PUT("/preferences", h.SetPreferences)
	}
}

// Get returns the user's profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profile.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// GetDietary returns the resolved allergy and diet lists used for
// recipe warnings.
func (h *ProfileHandler) GetDietary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dietary, err := h.profile.GetDietaryProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dietary profile"})
		return
	}

	c.JSON(http.StatusOK, dietary)
}

// SetAllergens replaces the user's allergen list.
func (h *ProfileHandler) SetAllergens(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Allergens []string `json:"allergens" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.profile.SetAllergens(c.Request.Context(), userID, req.Allergens); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update allergens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"allergens": req.Allergens})
}

// SetPreferences replaces the user's dietary preference list.
func (h *ProfileHandler) SetPreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Preferences []string `json:"preferences" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.profile.SetDietaryPreferences(c.Request.Context(), userID, req.Preferences); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": req.Preferences})
}
