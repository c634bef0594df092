package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spizarnia/backend/internal/models"
)

func TestInventoryCRUD(t *testing.T) {
	db := setupAccountDB(t)
	svc := NewInventoryService(db)
	userID := createTestUser(t, db)
	ctx := context.Background()

	quantity := 500.0
	unit := "g"
	created, err := svc.CreateItem(ctx, &models.InventoryItem{
		UserID:      userID,
		Name:        "mąka pszenna",
		Quantity:    &quantity,
		Unit:        &unit,
		IsAvailable: true,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	fetched, err := svc.GetItem(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "mąka pszenna", fetched.Name)

	fetched.Name = "mąka żytnia"
	updated, err := svc.UpdateItem(ctx, userID, fetched)
	require.NoError(t, err)
	assert.Equal(t, "mąka żytnia", updated.Name)

	require.NoError(t, svc.DeleteItem(ctx, userID, created.ID))
	_, err = svc.GetItem(ctx, userID, created.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestInventoryScopedToOwner(t *testing.T) {
	db := setupAccountDB(t)
	svc := NewInventoryService(db)
	owner := createTestUser(t, db)
	other := createTestUser(t, db)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, &models.InventoryItem{
		UserID:      owner,
		Name:        "cukier",
		IsAvailable: true,
	})
	require.NoError(t, err)

	_, err = svc.GetItem(ctx, other, created.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	err = svc.DeleteItem(ctx, other, created.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	items, err := svc.ListItems(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateItemsBulk(t *testing.T) {
	db := setupAccountDB(t)
	svc := NewInventoryService(db)
	userID := createTestUser(t, db)
	ctx := context.Background()

	created, err := svc.CreateItems(ctx, []models.InventoryItem{
		{UserID: userID, Name: "mleko", IsAvailable: true},
		{UserID: userID, Name: "chleb", IsAvailable: true},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, item := range created {
		assert.NotEqual(t, uuid.Nil, item.ID)
	}

	items, err := svc.ListItems(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCreateItemsEmptySlice(t *testing.T) {
	db := setupAccountDB(t)
	svc := NewInventoryService(db)

	created, err := svc.CreateItems(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestListForMatchingPreservesInsertionOrder(t *testing.T) {
	db := setupAccountDB(t)
	svc := NewInventoryService(db)
	userID := createTestUser(t, db)
	ctx := context.Background()

	for _, name := range []string{"mleko 2%", "mleko kozie", "masło"} {
		_, err := svc.CreateItem(ctx, &models.InventoryItem{
			UserID:      userID,
			Name:        name,
			IsAvailable: true,
		})
		require.NoError(t, err)
	}

	matchView, err := svc.ListForMatching(ctx, userID)
	require.NoError(t, err)
	require.Len(t, matchView, 3)
	assert.Equal(t, "mleko 2%", matchView[0].Name)
	assert.Equal(t, "mleko kozie", matchView[1].Name)
	assert.Equal(t, "masło", matchView[2].Name)
}
