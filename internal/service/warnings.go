package service

import (
	"fmt"
	"strings"

	"github.com/spizarnia/backend/internal/types"
)

// Default keyword lexicons mapping a lower-cased allergy/diet label to the
// ingredient-name substrings that trigger it. Labels and keywords follow
// the product vocabulary used by the frontend.
var defaultAllergyKeywords = map[string][]string{
	"gluten":     {"mąka", "chleb", "makaron", "pszenic", "pszenn", "bułka", "jęczmień", "żyto", "owies", "kasza manna"},
	"laktoza":    {"mleko", "śmietana", "masło", "ser", "jogurt", "twaróg", "maślanka"},
	"orzechy":    {"orzech", "migdał", "nerkowiec", "pistacj", "arachid"},
	"jaja":       {"jajko", "jajka", "jaja", "majonez"},
	"soja":       {"soja", "sojow", "tofu"},
	"ryby":       {"ryba", "łosoś", "tuńczyk", "dorsz", "makrela", "śledź"},
	"skorupiaki": {"krewetk", "krab", "homar", "małże", "ostryg"},
	"sezam":      {"sezam", "tahini"},
}

var defaultDietKeywords = map[string][]string{
	"wegetariańska": {"mięso", "kurczak", "wołowina", "wieprzowina", "boczek", "szynka", "kiełbasa", "indyk", "ryba", "łosoś", "tuńczyk"},
	"wegańska":      {"mięso", "kurczak", "wołowina", "wieprzowina", "boczek", "szynka", "kiełbasa", "indyk", "ryba", "mleko", "śmietana", "masło", "ser", "jogurt", "jajko", "jajka", "miód", "żelatyna"},
	"bezglutenowa":  {"mąka", "chleb", "makaron", "pszenic", "pszenn", "bułka", "jęczmień", "żyto", "owies"},
	"bez laktozy":   {"mleko", "śmietana", "masło", "ser", "jogurt", "twaróg", "maślanka"},
	"keto":          {"cukier", "mąka", "ziemniak", "ryż", "makaron", "chleb", "miód"},
}

// WarningGenerator flags recipe ingredients that conflict with a user's
// allergy or diet profile. Lexicons are fixed at construction time so tests
// can inject their own keyword tables.
type WarningGenerator struct {
	allergyKeywords map[string][]string
	dietKeywords    map[string][]string
}

// NewWarningGenerator returns a generator backed by the default lexicons.
func NewWarningGenerator() *WarningGenerator {
	return NewWarningGeneratorWithLexicons(defaultAllergyKeywords, defaultDietKeywords)
}

// NewWarningGeneratorWithLexicons returns a generator with custom keyword
// tables. Lexicon keys must be lower-cased.
func NewWarningGeneratorWithLexicons(allergy, diet map[string][]string) *WarningGenerator {
	return &WarningGenerator{
		allergyKeywords: allergy,
		dietKeywords:    diet,
	}
}

// Generate scans every (profile label, ingredient) pair and emits one
// warning per pair whose ingredient name contains any keyword for that
// label. A label without a lexicon entry falls back to itself as the sole
// keyword. Allergy warnings come first, then diet warnings, each in
// profile order crossed with ingredient order. Warnings are not
// deduplicated.
//
// Equipment warnings exist in the taxonomy but are not generated here;
// appliance data is stored but not yet checked against recipes.
func (g *WarningGenerator) Generate(ingredients []types.RecipeIngredient, profile types.DietaryProfile) []types.Warning {
	warnings := []types.Warning{}

	for _, allergy := range profile.Allergies {
		keywords := g.keywordsFor(g.allergyKeywords, allergy)
		for _, ingredient := range ingredients {
			if containsAny(ingredient.Name, keywords) {
				warnings = append(warnings, types.Warning{
					Type:    types.WarningTypeAllergy,
					Message: fmt.Sprintf("Składnik %q może zawierać alergen: %s", ingredient.Name, allergy),
				})
			}
		}
	}

	for _, diet := range profile.Diets {
		keywords := g.keywordsFor(g.dietKeywords, diet)
		for _, ingredient := range ingredients {
			if containsAny(ingredient.Name, keywords) {
				warnings = append(warnings, types.Warning{
					Type:    types.WarningTypeDiet,
					Message: fmt.Sprintf("Składnik %q może nie pasować do diety: %s", ingredient.Name, diet),
				})
			}
		}
	}

	return warnings
}

func (g *WarningGenerator) keywordsFor(lexicon map[string][]string, label string) []string {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if keywords, ok := lexicon[normalized]; ok {
		return keywords
	}
	// Unknown label: the label itself is the sole keyword.
	return []string{normalized}
}

// containsAny reports whether the lower-cased name contains any of the
// keywords. Stops at the first hit, so a pair yields at most one warning.
func containsAny(name string, keywords []string) bool {
	lowered := strings.ToLower(name)
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
