package types

import "github.com/google/uuid"

// MatchStatus describes how well an ingredient is covered by the inventory.
type MatchStatus string

const (
	MatchStatusAvailable MatchStatus = "available"
	MatchStatusPartial   MatchStatus = "partial"
	MatchStatusMissing   MatchStatus = "missing"
)

// RecipeIngredient is a single ingredient of a recipe, either extracted by
// the LLM or submitted by the user. Quantity and unit are optional.
type RecipeIngredient struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
}

// InventoryItemForMatch is the request-scoped view of an inventory item the
// matcher works on. The matcher never mutates it.
type InventoryItemForMatch struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Quantity    *float64  `json:"quantity"`
	Unit        *string   `json:"unit"`
	IsAvailable bool      `json:"is_available"`
}

// MatchedItem is the summary of the inventory item an ingredient matched to.
type MatchedItem struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity *float64  `json:"quantity"`
	Unit     *string   `json:"unit"`
}

// IngredientMatchResult is one matcher verdict per input ingredient.
// Results are returned as an ordered list indexed by input position, so a
// recipe listing the same ingredient twice yields two results.
type IngredientMatchResult struct {
	IngredientName string       `json:"ingredient_name"`
	Status         MatchStatus  `json:"status"`
	MatchedItem    *MatchedItem `json:"matched_item"`
}

// WarningType categorizes dietary warnings.
type WarningType string

const (
	WarningTypeAllergy   WarningType = "allergy"
	WarningTypeDiet      WarningType = "diet"
	WarningTypeEquipment WarningType = "equipment"
)

// Warning flags an ingredient that conflicts with the user's profile.
type Warning struct {
	Type    WarningType `json:"type"`
	Message string      `json:"message"`
}

// DietaryProfile is the validated allergy/diet profile of a user, resolved
// at the storage boundary and consumed as already-correct by the matcher
// and warning generator.
type DietaryProfile struct {
	Allergies []string `json:"allergies"`
	Diets     []string `json:"diets"`
}
