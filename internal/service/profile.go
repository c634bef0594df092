package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spizarnia/backend/internal/models"
	"github.com/spizarnia/backend/internal/types"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetDietaryProfile resolves the user's allergens and dietary preferences
// into the validated, string-typed profile consumed by the warning
// generator. Custom preference entries use their custom name.
func (s *ProfileService) GetDietaryProfile(ctx context.Context, userID uuid.UUID) (*types.DietaryProfile, error) {
	var allergens []models.Allergen
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&allergens).Error; err != nil {
		return nil, fmt.Errorf("failed to load allergens: %w", err)
	}

	var prefs []models.DietaryPreference
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&prefs).Error; err != nil {
		return nil, fmt.Errorf("failed to load dietary preferences: %w", err)
	}

	profile := &types.DietaryProfile{
		Allergies: make([]string, 0, len(allergens)),
		Diets:     make([]string, 0, len(prefs)),
	}
	for _, a := range allergens {
		if name := strings.TrimSpace(a.AllergenName); name != "" {
			profile.Allergies = append(profile.Allergies, name)
		}
	}
	for _, p := range prefs {
		name := p.PreferenceType
		if name == "custom" {
			name = p.CustomName
		}
		if name = strings.TrimSpace(name); name != "" {
			profile.Diets = append(profile.Diets, name)
		}
	}

	return profile, nil
}

// SetAllergens replaces the user's allergen list.
func (s *ProfileService) SetAllergens(ctx context.Context, userID uuid.UUID, names []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Allergen{}).Error; err != nil {
			return err
		}
		for _, name := range names {
			allergen := models.Allergen{
				ID:            uuid.New(),
				UserID:        userID,
				AllergenName:  name,
				SeverityLevel: 3,
			}
			if err := tx.Create(&allergen).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SetDietaryPreferences replaces the user's dietary preference list.
func (s *ProfileService) SetDietaryPreferences(ctx context.Context, userID uuid.UUID, preferences []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.DietaryPreference{}).Error; err != nil {
			return err
		}
		for _, preference := range preferences {
			pref := models.DietaryPreference{
				ID:             uuid.New(),
				UserID:         userID,
				PreferenceType: preference,
			}
			if err := tx.Create(&pref).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
