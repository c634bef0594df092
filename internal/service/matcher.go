package service

import (
	"strings"

	"github.com/spizarnia/backend/internal/types"
)

// MatchThreshold is the minimum similarity between an ingredient name and an
// inventory item name for the pair to count as a candidate match.
const MatchThreshold = 0.6

// MatchIngredients resolves each recipe ingredient against the user's
// inventory. The result list is ordered by input position, one entry per
// ingredient, so duplicate ingredient names keep their own results.
//
// Per ingredient: the inventory item with the strictly greatest score at or
// above MatchThreshold wins; ties keep the first-encountered item. A pair
// where one lower-cased name contains the other scores 1.0 outright, so
// "kurczak" finds "Kurczak filet"; otherwise the score is the normalized
// edit-distance similarity. Unavailable items never match. With both
// quantities known, the status is available only when the inventory covers
// the required amount, otherwise partial; with either quantity unknown,
// presence alone qualifies.
func MatchIngredients(ingredients []types.RecipeIngredient, inventory []types.InventoryItemForMatch) []types.IngredientMatchResult {
	results := make([]types.IngredientMatchResult, 0, len(ingredients))

	for _, ingredient := range ingredients {
		results = append(results, matchOne(ingredient, inventory))
	}

	return results
}

// matchScore rates one ingredient/item pair. Containment either way is a
// full match; anything else falls back to edit-distance similarity.
func matchScore(ingredientName, itemName string) float64 {
	a := strings.ToLower(strings.TrimSpace(ingredientName))
	b := strings.ToLower(strings.TrimSpace(itemName))
	if a != "" && b != "" && (strings.Contains(a, b) || strings.Contains(b, a)) {
		return 1.0
	}
	return Similarity(a, b)
}

func matchOne(ingredient types.RecipeIngredient, inventory []types.InventoryItemForMatch) types.IngredientMatchResult {
	var best *types.InventoryItemForMatch
	bestScore := 0.0

	for i := range inventory {
		score := matchScore(ingredient.Name, inventory[i].Name)
		if score >= MatchThreshold && score > bestScore {
			best = &inventory[i]
			bestScore = score
		}
	}

	if best == nil || !best.IsAvailable {
		return types.IngredientMatchResult{
			IngredientName: ingredient.Name,
			Status:         types.MatchStatusMissing,
			MatchedItem:    nil,
		}
	}

	status := types.MatchStatusAvailable
	if ingredient.Quantity != nil && best.Quantity != nil && *best.Quantity < *ingredient.Quantity {
		status = types.MatchStatusPartial
	}

	return types.IngredientMatchResult{
		IngredientName: ingredient.Name,
		Status:         status,
		MatchedItem: &types.MatchedItem{
			ID:       best.ID,
			Name:     best.Name,
			Quantity: best.Quantity,
			Unit:     best.Unit,
		},
	}
}
