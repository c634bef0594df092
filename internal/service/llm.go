package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/spizarnia/backend/config"
	"github.com/spizarnia/backend/internal/types"
)

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// TextContent is a text part of a multimodal message.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ImageURLContent is an image part of a multimodal message.
type ImageURLContent struct {
	Type     string `json:"type"`
	ImageURL struct {
		URL string `json:"url"`
	} `json:"image_url"`
}

// chatRequest represents a request to the chat completions API
type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
}

// chatResponse represents a chat completions API response
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// LLMService calls the hosted vision/text model. It is a black box to the
// rest of the application: inputs are prompts or image URLs, outputs are
// already-structured extraction results.
type LLMService struct {
	client *resty.Client
	apiKey string
	model  string
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg *config.Config) (*LLMService, error) {
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY must be set")
	}

	client := resty.New().
		SetBaseURL(cfg.LLMAPIURL).
		SetTimeout(60 * time.Second).
		SetHeader("Authorization", "Bearer "+cfg.LLMAPIKey).
		SetHeader("Content-Type", "application/json")

	return &LLMService{
		client: client,
		apiKey: cfg.LLMAPIKey,
		model:  cfg.LLMModel,
	}, nil
}

const receiptScanPrompt = `Jesteś asystentem do odczytywania paragonów. Na obrazie znajduje się paragon ze sklepu spożywczego.
Zwróć WYŁĄCZNIE tablicę JSON produktów w formacie:
[{"name": "...", "quantity": 1.0, "unit": "szt", "price": 4.99}]
Pomiń rabaty, kaucje i sumy. Nazwy produktów po polsku, bez skrótów sklepowych.`

// ScanReceipt sends a receipt image to the vision model and returns the
// extracted line items.
func (s *LLMService) ScanReceipt(ctx context.Context, imageURL string) ([]types.ReceiptItem, error) {
	image := ImageURLContent{Type: "image_url"}
	image.ImageURL.URL = imageURL

	content := []any{
		TextContent{Type: "text", Text: receiptScanPrompt},
		image,
	}

	raw, err := s.complete(ctx, []Message{{Role: "user", Content: content}})
	if err != nil {
		return nil, fmt.Errorf("receipt scan failed: %w", err)
	}

	var items []types.ReceiptItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to parse receipt items: %w", err)
	}
	return items, nil
}

const substitutionPromptTemplate = `Użytkownik potrzebuje zamiennika dla składnika %q.
Dostępne produkty w spiżarni: %s.
Profil: alergie [%s], diety [%s].
Zwróć WYŁĄCZNIE tablicę JSON maksymalnie 5 propozycji w formacie:
[{"name": "...", "reason": "..."}]
Preferuj produkty z dostępnej listy i nie proponuj niczego naruszającego profil.`

// SuggestSubstitutions asks the model for replacement candidates for one
// ingredient, given the pantry contents and the dietary profile.
func (s *LLMService) SuggestSubstitutions(ctx context.Context, ingredient string, available []string, profile types.DietaryProfile) ([]types.SubstitutionSuggestion, error) {
	prompt := fmt.Sprintf(substitutionPromptTemplate,
		ingredient,
		strings.Join(available, ", "),
		strings.Join(profile.Allergies, ", "),
		strings.Join(profile.Diets, ", "),
	)

	raw, err := s.complete(ctx, []Message{{Role: "user", Content: prompt}})
	if err != nil {
		return nil, fmt.Errorf("substitution suggestion failed: %w", err)
	}

	var suggestions []types.SubstitutionSuggestion
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse substitution suggestions: %w", err)
	}
	return suggestions, nil
}

const recipeParsePrompt = `Przetwórz poniższy tekst przepisu na JSON:
{"name": "...", "description": "...", "ingredients": [{"name": "...", "quantity": 1.0, "unit": "g"}], "instructions": ["..."], "servings": "4"}
Ilości i jednostki zostaw puste (null), jeśli nie są podane. Zwróć WYŁĄCZNIE JSON.

Tekst przepisu:
%s`

// ParseRecipeText turns pasted recipe text into a structured recipe.
func (s *LLMService) ParseRecipeText(ctx context.Context, text string) (*types.ParsedRecipe, error) {
	raw, err := s.complete(ctx, []Message{{Role: "user", Content: fmt.Sprintf(recipeParsePrompt, text)}})
	if err != nil {
		return nil, fmt.Errorf("recipe parsing failed: %w", err)
	}

	var recipe types.ParsedRecipe
	if err := json.Unmarshal([]byte(raw), &recipe); err != nil {
		return nil, fmt.Errorf("failed to parse recipe JSON: %w", err)
	}
	return &recipe, nil
}

// complete performs one chat completion round trip and returns the model's
// message content with any markdown code fences stripped.
func (s *LLMService) complete(ctx context.Context, messages []Message) (string, error) {
	request := chatRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0.2,
	}

	var response chatResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		Post("")
	if err != nil {
		return "", fmt.Errorf("LLM request failed: %w", err)
	}
	if resp.IsError() {
		log.Printf("LLM API error: status=%d body=%s", resp.StatusCode(), resp.String())
		return "", fmt.Errorf("LLM API returned status %d", resp.StatusCode())
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("LLM response contained no choices")
	}

	return stripCodeFences(response.Choices[0].Message.Content), nil
}

// stripCodeFences removes a ```json ... ``` wrapper the model sometimes adds.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
