package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spizarnia/backend/config"
	"github.com/spizarnia/backend/internal/models"
	"github.com/spizarnia/backend/internal/service"
	"github.com/spizarnia/backend/internal/testdb"
	"github.com/spizarnia/backend/internal/types"
)

// Exercises the ON CONFLICT upsert against real Postgres: many concurrent
// increments for the same user and day must collapse into a single row
// with an exact count.
func TestIncrementUsageConcurrentPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	db := testdb.SetupTestDB(t)
	usage := service.NewUsageService(db.DB, config.RateLimitConfig{
		ReceiptScansPerDay:  100,
		SubstitutionsPerDay: 100,
	})

	userID := uuid.New()
	require.NoError(t, db.DB.Create(&models.User{
		ID:           userID,
		Name:         "Test",
		Email:        "test@example.com",
		PasswordHash: "x",
	}).Error)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := usage.IncrementUsage(context.Background(), userID, types.FeatureReceiptScan); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("increment failed: %v", err)
	}

	var rows []models.AIUsage
	require.NoError(t, db.DB.Where("user_id = ?", userID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, workers, rows[0].ReceiptScanCount)
	assert.Equal(t, 0, rows[0].SubstitutionCount)
}
