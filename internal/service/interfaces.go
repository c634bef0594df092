package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/spizarnia/backend/internal/types"
)

// LLMProvider is the black-box vision/text model behind the AI features.
// Handlers depend on this interface so tests can substitute a fake.
type LLMProvider interface {
	ScanReceipt(ctx context.Context, imageURL string) ([]types.ReceiptItem, error)
	SuggestSubstitutions(ctx context.Context, ingredient string, available []string, profile types.DietaryProfile) ([]types.SubstitutionSuggestion, error)
	ParseRecipeText(ctx context.Context, text string) (*types.ParsedRecipe, error)
}

var _ LLMProvider = (*LLMService)(nil)

// UsageLimiter is the daily quota surface consumed by the AI handlers.
type UsageLimiter interface {
	CheckRateLimit(ctx context.Context, userID uuid.UUID, feature types.AIFeature) (*types.RateLimitStatus, error)
	IncrementUsage(ctx context.Context, userID uuid.UUID, feature types.AIFeature) (int, error)
	GetUsageSnapshot(ctx context.Context, userID uuid.UUID) (*types.UsageSnapshot, error)
}

var _ UsageLimiter = (*UsageService)(nil)

// ReceiptImageStore uploads receipt images before the vision call and
// hands out temporary view URLs for stored scans.
type ReceiptImageStore interface {
	UploadReceiptImage(ctx context.Context, userID uuid.UUID, dataURL string) (string, error)
	PresignReceiptImage(ctx context.Context, key string) (string, error)
}

var _ ReceiptImageStore = (*ImageService)(nil)
