package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spizarnia/backend/internal/models"
	"github.com/spizarnia/backend/internal/types"
)

// RecipeService stores and searches parsed recipes.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{
		db: db,
	}
}

// SaveParsed persists a recipe produced by the LLM parser for a user.
func (s *RecipeService) SaveParsed(ctx context.Context, userID uuid.UUID, parsed *types.ParsedRecipe, sourceURL string) (*models.Recipe, error) {
	ingredients := make(models.JSONBStringArray, 0, len(parsed.Ingredients))
	for _, ingredient := range parsed.Ingredients {
		ingredients = append(ingredients, formatIngredient(ingredient))
	}

	recipe := models.Recipe{
		ID:           uuid.New(),
		Name:         parsed.Name,
		Description:  parsed.Description,
		SourceURL:    sourceURL,
		Ingredients:  ingredients,
		Instructions: models.JSONBStringArray(parsed.Instructions),
		Servings:     parsed.Servings,
		Embedding:    GenerateEmbedding(parsed.Name + " " + parsed.Description),
		UserID:       userID,
	}

	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes lists a user's saved recipes.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// DeleteRecipe deletes a recipe owned by the user.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Recipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchRecipes combines keyword search with embedding ordering on
// Postgres; other dialects fall back to keyword search only.
func (s *RecipeService) SearchRecipes(ctx context.Context, userID uuid.UUID, query string) ([]models.Recipe, error) {
	var recipes []models.Recipe

	dbQuery := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if query != "" {
		pattern := "%" + query + "%"
		if s.db.Dialector.Name() == "postgres" {
			dbQuery = dbQuery.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
			vec := GenerateEmbedding(query)
			dbQuery = dbQuery.Order(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		} else {
			dbQuery = dbQuery.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
		}
	}

	if err := dbQuery.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// formatIngredient renders an ingredient for JSONB storage, e.g.
// "kurczak 500 g" or just "sól" when no quantity is known.
func formatIngredient(ingredient types.RecipeIngredient) string {
	if ingredient.Quantity == nil {
		return ingredient.Name
	}
	unit := ""
	if ingredient.Unit != nil {
		unit = " " + *ingredient.Unit
	}
	return fmt.Sprintf("%s %g%s", ingredient.Name, *ingredient.Quantity, unit)
}
