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
	"github.com/spizarnia/backend/internal/types"
)

func newProfileRouter(db *gorm.DB, userID uuid.UUID) *gin.Engine {
	handler := NewProfileHandler(service.NewProfileService(db))
	return newTestRouter(userID, handler.RegisterRoutes)
}

func TestProfileGet(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	require.NoError(t, db.Create(&models.UserProfile{
		ID:       uuid.New(),
		UserID:   userID,
		Username: "anna_k",
		Email:    "anna@example.com",
	}).Error)

	router := newProfileRouter(db, userID)

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/profile", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "anna_k")
}

func TestProfileGetNotFound(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	router := newProfileRouter(db, userID)

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/profile", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestProfileSetAllergensAndReadDietary(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	router := newProfileRouter(db, userID)

	recorder := doJSON(t, router, http.MethodPut, "/api/v1/profile/allergens", gin.H{
		"allergens": []string{"gluten", "orzechy"},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodPut, "/api/v1/profile/preferences", gin.H{
		"preferences": []string{"wegańska"},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/api/v1/profile/dietary", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var dietary types.DietaryProfile
	decodeBody(t, recorder, &dietary)
	assert.Equal(t, []string{"gluten", "orzechy"}, dietary.Allergies)
	assert.Equal(t, []string{"wegańska"}, dietary.Diets)
}

func TestProfileSetAllergensRequiresBody(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	router := newProfileRouter(db, userID)

	recorder := doJSON(t, router, http.MethodPut, "/api/v1/profile/allergens", gin.H{})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
