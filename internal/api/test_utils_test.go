package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/spizarnia/backend/config"
	"github.com/spizarnia/backend/internal/models"
	"github.com/spizarnia/backend/internal/service"
	"github.com/spizarnia/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.DietaryPreference{},
		&models.Allergen{},
		&models.InventoryItem{},
		&models.AIUsage{},
	))

	t.Cleanup(func() {
		for _, table := range []string{"ai_usage", "inventory_items", "allergens", "dietary_preferences", "user_profiles", "users"} {
			require.NoError(t, db.Exec("DELETE FROM "+table).Error)
		}
	})

	return db
}

func testLimits() config.RateLimitConfig {
	return config.RateLimitConfig{
		ReceiptScansPerDay:  5,
		SubstitutionsPerDay: 10,
	}
}

// fakeLLM substitutes the vision/text model in handler tests.
type fakeLLM struct {
	scanCalls    int
	scanItems    []types.ReceiptItem
	scanErr      error
	suggestCalls int
	suggestions  []types.SubstitutionSuggestion
	suggestErr   error
	parsed       *types.ParsedRecipe
	parseErr     error
}

func (f *fakeLLM) ScanReceipt(ctx context.Context, imageURL string) ([]types.ReceiptItem, error) {
	f.scanCalls++
	return f.scanItems, f.scanErr
}

func (f *fakeLLM) SuggestSubstitutions(ctx context.Context, ingredient string, available []string, profile types.DietaryProfile) ([]types.SubstitutionSuggestion, error) {
	f.suggestCalls++
	return f.suggestions, f.suggestErr
}

func (f *fakeLLM) ParseRecipeText(ctx context.Context, text string) (*types.ParsedRecipe, error) {
	return f.parsed, f.parseErr
}

var _ service.LLMProvider = (*fakeLLM)(nil)

// fakeImageStore records uploads instead of touching S3.
type fakeImageStore struct {
	uploads    int
	url        string
	presigned  string
	err        error
	presignErr error
}

func (f *fakeImageStore) UploadReceiptImage(ctx context.Context, userID uuid.UUID, dataURL string) (string, error) {
	f.uploads++
	return f.url, f.err
}

func (f *fakeImageStore) PresignReceiptImage(ctx context.Context, key string) (string, error) {
	return f.presigned, f.presignErr
}

var _ service.ReceiptImageStore = (*fakeImageStore)(nil)

// newTestRouter registers the handler's routes behind a stub auth layer
// that injects the given user ID.
func newTestRouter(userID uuid.UUID, register func(*gin.RouterGroup)) *gin.Engine {
	router := gin.New()
	group := router.Group("/api/v1")
	group.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	register(group)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), out))
}

func createTestUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	require.NoError(t, db.Create(&models.User{
		ID:           userID,
		Name:         "Anna",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
	}).Error)
	return userID
}

func addInventoryItem(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, available bool) {
	t.Helper()

	require.NoError(t, db.Create(&models.InventoryItem{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		IsAvailable: available,
	}).Error)
}
