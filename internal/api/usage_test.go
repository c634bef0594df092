package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spizarnia/backend/internal/models"
	"github.com/spizarnia/backend/internal/service"
	"github.com/spizarnia/backend/internal/types"
)

func TestUsageSnapshot(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)

	require.NoError(t, db.Create(&models.AIUsage{
		ID:                uuid.New(),
		UserID:            userID,
		UsageDate:         time.Now().UTC().Format("2006-01-02"),
		ReceiptScanCount:  2,
		SubstitutionCount: 10,
	}).Error)

	handler := NewUsageHandler(service.NewUsageService(db, testLimits()))
	router := newTestRouter(userID, handler.RegisterRoutes)

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/usage", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var snapshot types.UsageSnapshot
	decodeBody(t, recorder, &snapshot)

	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), snapshot.Date)
	assert.Equal(t, 2, snapshot.ReceiptScans.Used)
	assert.Equal(t, 3, snapshot.ReceiptScans.Remaining)
	assert.Equal(t, 10, snapshot.Substitutions.Used)
	assert.Equal(t, 0, snapshot.Substitutions.Remaining)
}

func TestUsageSnapshotNoUsageYet(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)

	handler := NewUsageHandler(service.NewUsageService(db, testLimits()))
	router := newTestRouter(userID, handler.RegisterRoutes)

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/usage", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var snapshot types.UsageSnapshot
	decodeBody(t, recorder, &snapshot)
	assert.Equal(t, 0, snapshot.ReceiptScans.Used)
	assert.Equal(t, 5, snapshot.ReceiptScans.Remaining)
}
