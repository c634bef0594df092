package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spizarnia/backend/internal/models"
	"github.com/spizarnia/backend/internal/types"
)

var ErrItemNotFound = errors.New("inventory item not found")

// InventoryService handles pantry item operations
type InventoryService struct {
	db *gorm.DB
}

// NewInventoryService creates a new InventoryService instance
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{
		db: db,
	}
}

// CreateItem adds an item to the user's pantry.
func (s *InventoryService) CreateItem(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// CreateItems bulk-adds items, used by the receipt scan confirmation flow.
func (s *InventoryService) CreateItems(ctx context.Context, items []models.InventoryItem) ([]models.InventoryItem, error) {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	if len(items) == 0 {
		return items, nil
	}
	if err := s.db.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem retrieves one item owned by the user.
func (s *InventoryService) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ListItems lists all pantry items for a user.
func (s *InventoryService) ListItems(ctx context.Context, userID uuid.UUID) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem updates an item owned by the user.
func (s *InventoryService) UpdateItem(ctx context.Context, userID uuid.UUID, item *models.InventoryItem) (*models.InventoryItem, error) {
	existing, err := s.GetItem(ctx, userID, item.ID)
	if err != nil {
		return nil, err
	}
	item.UserID = existing.UserID
	item.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item owned by the user.
func (s *InventoryService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.InventoryItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// ListForMatching returns the matcher's view of the user's pantry, in
// insertion order so the matcher's first-encountered tie-break is stable
// across requests.
func (s *InventoryService) ListForMatching(ctx context.Context, userID uuid.UUID) ([]types.InventoryItemForMatch, error) {
	items, err := s.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	matchItems := make([]types.InventoryItemForMatch, 0, len(items))
	for _, item := range items {
		matchItems = append(matchItems, types.InventoryItemForMatch{
			ID:          item.ID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			IsAvailable: item.IsAvailable,
		})
	}
	return matchItems, nil
}
