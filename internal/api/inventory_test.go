package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/spizarnia/backend/internal/models"
	"github.com/spizarnia/backend/internal/service"
)

func newInventoryRouter(db *gorm.DB, userID uuid.UUID) *gin.Engine {
	handler := NewInventoryHandler(service.NewInventoryService(db))
	return newTestRouter(userID, handler.RegisterRoutes)
}

func TestInventoryCreateAndList(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	router := newInventoryRouter(db, userID)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/inventory", gin.H{
		"name":     "mąka pszenna",
		"quantity": 1000,
		"unit":     "g",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/api/v1/inventory", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Items []models.InventoryItem `json:"items"`
	}
	decodeBody(t, recorder, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "mąka pszenna", body.Items[0].Name)
	assert.True(t, body.Items[0].IsAvailable)
	require.NotNil(t, body.Items[0].Quantity)
	assert.InDelta(t, 1000, *body.Items[0].Quantity, 0.001)
}

func TestInventoryCreateRequiresName(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	router := newInventoryRouter(db, userID)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/inventory", gin.H{
		"quantity": 500,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestInventoryBulkCreate(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	router := newInventoryRouter(db, userID)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/inventory/bulk", gin.H{
		"items": []gin.H{
			{"name": "mleko"},
			{"name": "chleb", "is_staple": true},
		},
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var body struct {
		Items []models.InventoryItem `json:"items"`
	}
	decodeBody(t, recorder, &body)
	require.Len(t, body.Items, 2)
	assert.True(t, body.Items[1].IsStaple)
}

func TestInventoryUpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	router := newInventoryRouter(db, userID)

	itemID := uuid.New()
	require.NoError(t, db.Create(&models.InventoryItem{
		ID:          itemID,
		UserID:      userID,
		Name:        "cukier",
		IsAvailable: true,
	}).Error)

	available := false
	recorder := doJSON(t, router, http.MethodPut, "/api/v1/inventory/"+itemID.String(), gin.H{
		"name":         "cukier trzcinowy",
		"is_available": available,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated models.InventoryItem
	require.NoError(t, db.First(&updated, "id = ?", itemID).Error)
	assert.Equal(t, "cukier trzcinowy", updated.Name)
	assert.False(t, updated.IsAvailable)

	recorder = doJSON(t, router, http.MethodDelete, "/api/v1/inventory/"+itemID.String(), nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = doJSON(t, router, http.MethodDelete, "/api/v1/inventory/"+itemID.String(), nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestInventoryUpdateUnknownItem(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	router := newInventoryRouter(db, userID)

	recorder := doJSON(t, router, http.MethodPut, "/api/v1/inventory/"+uuid.NewString(), gin.H{
		"name": "sól",
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
