package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spizarnia/backend/internal/service"
	"github.com/spizarnia/backend/internal/types"
)

// SubstitutionHandler handles ingredient substitution requests
type SubstitutionHandler struct {
	llm       service.LLMProvider
	usage     service.UsageLimiter
	inventory *service.InventoryService
	profiles  *service.ProfileService
	warnings  *service.WarningGenerator
}

// NewSubstitutionHandler creates a new SubstitutionHandler instance
func NewSubstitutionHandler(llm service.LLMProvider, usage service.UsageLimiter, inventory *service.InventoryService, profiles *service.ProfileService, warnings *service.WarningGenerator) *SubstitutionHandler {
	return &SubstitutionHandler{
		llm:       llm,
		usage:     usage,
		inventory: inventory,
		profiles:  profiles,
		warnings:  warnings,
	}
}

// RegisterRoutes registers the substitution routes
func (h *SubstitutionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/substitutions", h.Suggest)
}

type substitutionRequest struct {
	Ingredient string `json:"ingredient" binding:"required"`
}

type substitutionResponse struct {
	Suggestions []types.SubstitutionSuggestion `json:"suggestions"`
	Matches     []types.IngredientMatchResult  `json:"matches"`
	Warnings    []types.Warning                `json:"warnings"`
	Usage       types.RateLimitStatus          `json:"usage"`
}

// Suggest runs the substitution flow: quota check, LLM suggestion against
// the pantry and dietary profile, matching and warning generation for the
// returned candidates, then the usage increment.
func (h *SubstitutionHandler) Suggest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req substitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient is required"})
		return
	}

	ctx := c.Request.Context()

	status, err := h.usage.CheckRateLimit(ctx, userID, types.FeatureSubstitution)
	if err != nil {
		log.Printf("Rate limit check failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check usage limit"})
		return
	}
	if !status.Allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":     "daily substitution limit exceeded",
			"used":      status.Used,
			"limit":     status.Limit,
			"remaining": status.Remaining,
		})
		return
	}

	inventory, err := h.inventory.ListForMatching(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load inventory"})
		return
	}

	profile, err := h.profiles.GetDietaryProfile(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	available := make([]string, 0, len(inventory))
	for _, item := range inventory {
		if item.IsAvailable {
			available = append(available, item.Name)
		}
	}

	suggestions, err := h.llm.SuggestSubstitutions(ctx, req.Ingredient, available, *profile)
	if err != nil {
		log.Printf("Substitution suggestion failed for user %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "substitution suggestion failed"})
		return
	}

	candidates := make([]types.RecipeIngredient, 0, len(suggestions))
	for _, suggestion := range suggestions {
		candidates = append(candidates, types.RecipeIngredient{Name: suggestion.Name})
	}
	matches := service.MatchIngredients(candidates, inventory)
	warnings := h.warnings.Generate(candidates, *profile)

	used, err := h.usage.IncrementUsage(ctx, userID, types.FeatureSubstitution)
	if err != nil {
		log.Printf("Usage increment failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record usage"})
		return
	}

	remaining := status.Limit - used
	if remaining < 0 {
		remaining = 0
	}

	c.JSON(http.StatusOK, substitutionResponse{
		Suggestions: suggestions,
		Matches:     matches,
		Warnings:    warnings,
		Usage: types.RateLimitStatus{
			Allowed:   used < status.Limit,
			Used:      used,
			Limit:     status.Limit,
			Remaining: remaining,
		},
	})
}
