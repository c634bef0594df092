package types

// ReceiptItem is a single line item extracted from a scanned receipt by the
// vision model. Price is informational only; the inventory flow keeps name,
// quantity and unit.
type ReceiptItem struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
	Price    *float64 `json:"price"`
}

// SubstitutionSuggestion is one replacement candidate proposed by the LLM.
type SubstitutionSuggestion struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ParsedRecipe is the structured result of parsing pasted recipe text.
type ParsedRecipe struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions []string           `json:"instructions"`
	Servings     string             `json:"servings"`
}
