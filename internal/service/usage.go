package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spizarnia/backend/config"
	"github.com/spizarnia/backend/internal/models"
	"github.com/spizarnia/backend/internal/types"
)

// ErrRateLimitExceeded is returned by handlers when a metered AI feature is
// invoked past its daily cap. The usage service itself only reports counts;
// the sentinel lets callers map quota denial to a distinct response.
var ErrRateLimitExceeded = errors.New("daily usage limit exceeded")

// ErrUnknownFeature is returned for a feature name outside the metered set.
var ErrUnknownFeature = errors.New("unknown AI feature")

// usageDateFormat is the UTC day bucket key.
const usageDateFormat = "2006-01-02"

// UsageService tracks per-user, per-day counters for the metered AI
// features. Counts live in the ai_usage table, one row per (user, day),
// enforced by a composite unique index.
type UsageService struct {
	db     *gorm.DB
	limits config.RateLimitConfig
}

// NewUsageService creates a new UsageService instance
func NewUsageService(db *gorm.DB, limits config.RateLimitConfig) *UsageService {
	return &UsageService{
		db:     db,
		limits: limits,
	}
}

// CheckRateLimit reads today's counter for the feature and compares it to
// the configured daily limit. It never blocks and never increments; a
// missing row counts as zero usage. Storage errors propagate unchanged.
func (s *UsageService) CheckRateLimit(ctx context.Context, userID uuid.UUID, feature types.AIFeature) (*types.RateLimitStatus, error) {
	limit, err := s.limitFor(feature)
	if err != nil {
		return nil, err
	}

	usage, err := s.todaysUsage(ctx, userID)
	if err != nil {
		return nil, err
	}

	used := featureCount(usage, feature)
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	return &types.RateLimitStatus{
		Allowed:   used < limit,
		Used:      used,
		Limit:     limit,
		Remaining: remaining,
	}, nil
}

// IncrementUsage adds one to today's counter for the feature and returns the
// new count. The write is a single atomic upsert: when no row exists for
// (user, today) it inserts one with the feature initialized to 1, and on a
// unique-index conflict the database increments the existing row instead.
// Two first-requests-of-the-day racing each other therefore end at 2, with
// neither increment lost.
func (s *UsageService) IncrementUsage(ctx context.Context, userID uuid.UUID, feature types.AIFeature) (int, error) {
	column, err := s.columnFor(feature)
	if err != nil {
		return 0, err
	}

	today := time.Now().UTC().Format(usageDateFormat)

	usage := models.AIUsage{
		ID:        uuid.New(),
		UserID:    userID,
		UsageDate: today,
	}
	switch feature {
	case types.FeatureReceiptScan:
		usage.ReceiptScanCount = 1
	case types.FeatureSubstitution:
		usage.SubstitutionCount = 1
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "usage_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column:       gorm.Expr(column + " + 1"),
			"updated_at": time.Now().UTC(),
		}),
	}).Create(&usage).Error
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s usage: %w", feature, err)
	}

	// Read back the row: on the conflict path the in-memory struct does not
	// carry the updated count.
	var current models.AIUsage
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND usage_date = ?", userID, today).
		First(&current).Error; err != nil {
		return 0, fmt.Errorf("failed to read back %s usage: %w", feature, err)
	}

	return featureCount(&current, feature), nil
}

// GetUsageSnapshot returns today's used/limit/remaining for both features.
func (s *UsageService) GetUsageSnapshot(ctx context.Context, userID uuid.UUID) (*types.UsageSnapshot, error) {
	usage, err := s.todaysUsage(ctx, userID)
	if err != nil {
		return nil, err
	}

	scans := featureCount(usage, types.FeatureReceiptScan)
	subs := featureCount(usage, types.FeatureSubstitution)

	return &types.UsageSnapshot{
		Date:          time.Now().UTC().Format(usageDateFormat),
		ReceiptScans:  featureUsage(scans, s.limits.ReceiptScansPerDay),
		Substitutions: featureUsage(subs, s.limits.SubstitutionsPerDay),
	}, nil
}

// todaysUsage fetches today's row, returning nil (not an error) when the
// user has no usage yet today.
func (s *UsageService) todaysUsage(ctx context.Context, userID uuid.UUID) (*models.AIUsage, error) {
	today := time.Now().UTC().Format(usageDateFormat)

	var usage models.AIUsage
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND usage_date = ?", userID, today).
		First(&usage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read usage: %w", err)
	}
	return &usage, nil
}

func (s *UsageService) limitFor(feature types.AIFeature) (int, error) {
	switch feature {
	case types.FeatureReceiptScan:
		return s.limits.ReceiptScansPerDay, nil
	case types.FeatureSubstitution:
		return s.limits.SubstitutionsPerDay, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFeature, feature)
	}
}

func (s *UsageService) columnFor(feature types.AIFeature) (string, error) {
	switch feature {
	case types.FeatureReceiptScan:
		return "receipt_scan_count", nil
	case types.FeatureSubstitution:
		return "substitution_count", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFeature, feature)
	}
}

func featureCount(usage *models.AIUsage, feature types.AIFeature) int {
	if usage == nil {
		return 0
	}
	if feature == types.FeatureReceiptScan {
		return usage.ReceiptScanCount
	}
	return usage.SubstitutionCount
}

func featureUsage(used, limit int) types.FeatureUsage {
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return types.FeatureUsage{
		Used:      used,
		Limit:     limit,
		Remaining: remaining,
	}
}
