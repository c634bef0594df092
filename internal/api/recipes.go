package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spizarnia/backend/internal/service"
	"github.com/spizarnia/backend/internal/types"
)

// RecipeHandler handles recipe parsing and analysis requests
type RecipeHandler struct {
	llm       service.LLMProvider
	recipes   *service.RecipeService
	inventory *service.InventoryService
	profiles  *service.ProfileService
	warnings  *service.WarningGenerator
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(llm service.LLMProvider, recipes *service.RecipeService, inventory *service.InventoryService, profiles *service.ProfileService, warnings *service.WarningGenerator) *RecipeHandler {
	return &RecipeHandler{
		llm:       llm,
		recipes:   recipes,
		inventory: inventory,
		profiles:  profiles,
		warnings:  warnings,
	}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.GET("/:id", h.Get)
		recipes.DELETE("/:id", h.Delete)
		recipes.POST("/parse", h.Parse)
		recipes.POST("/analyze", h.Analyze)
	}
}

// List returns the user's saved recipes, optionally filtered by ?q=.
func (h *RecipeHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := c.Query("q")
	var (
		recipes interface{}
		err     error
	)
	if query != "" {
		recipes, err = h.recipes.SearchRecipes(c.Request.Context(), userID, query)
	} else {
		recipes, err = h.recipes.ListRecipes(c.Request.Context(), userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// Get returns a single recipe.
func (h *RecipeHandler) Get(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// Delete removes a recipe owned by the user.
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}

	c.Status(http.StatusNoContent)
}

type parseRecipeRequest struct {
	Text      string `json:"text" binding:"required"`
	SourceURL string `json:"source_url"`
	Save      bool   `json:"save"`
}

// Parse turns pasted recipe text into structured form, analyzes it against
// the pantry and profile, and optionally saves it.
func (h *RecipeHandler) Parse(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req parseRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	ctx := c.Request.Context()

	parsed, err := h.llm.ParseRecipeText(ctx, req.Text)
	if err != nil {
		log.Printf("Recipe parsing failed for user %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "recipe parsing failed"})
		return
	}

	matches, warnings, err := h.analyze(c, userID, parsed.Ingredients)
	if err != nil {
		return
	}

	response := gin.H{
		"recipe":   parsed,
		"matches":  matches,
		"warnings": warnings,
	}

	if req.Save {
		saved, err := h.recipes.SaveParsed(ctx, userID, parsed, req.SourceURL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save recipe"})
			return
		}
		response["saved_id"] = saved.ID
	}

	c.JSON(http.StatusOK, response)
}

type analyzeRecipeRequest struct {
	Ingredients []types.RecipeIngredient `json:"ingredients" binding:"required"`
}

// Analyze matches submitted ingredients against the pantry and generates
// dietary warnings. Pure computation, not metered.
func (h *RecipeHandler) Analyze(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req analyzeRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients are required"})
		return
	}

	matches, warnings, err := h.analyze(c, userID, req.Ingredients)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches":  matches,
		"warnings": warnings,
	})
}

// analyze loads the pantry and profile and runs the matcher and warning
// generator. Error responses are written before returning.
func (h *RecipeHandler) analyze(c *gin.Context, userID uuid.UUID, ingredients []types.RecipeIngredient) ([]types.IngredientMatchResult, []types.Warning, error) {
	ctx := c.Request.Context()

	inventory, err := h.inventory.ListForMatching(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load inventory"})
		return nil, nil, err
	}

	profile, err := h.profiles.GetDietaryProfile(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return nil, nil, err
	}

	matches := service.MatchIngredients(ingredients, inventory)
	warnings := h.warnings.Generate(ingredients, *profile)
	return matches, warnings, nil
}
