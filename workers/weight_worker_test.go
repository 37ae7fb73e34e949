package workers

import (
	"context"
	"testing"
	"time"

	"livestock-app/models"
	"livestock-app/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateWeight(t *testing.T) {
	since := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 100.0, EstimateWeight(100, 0.5, since, since.Add(23*time.Hour)))
	assert.Equal(t, 105.0, EstimateWeight(100, 0.5, since, since.AddDate(0, 0, 10)))
	assert.Equal(t, 100.33, EstimateWeight(100, 0.333, since, since.AddDate(0, 0, 1)))
	assert.Equal(t, 100.0, EstimateWeight(100, 0.5, since, since.AddDate(0, 0, -3)))
}

func TestRunOnceUpdatesGrowingLivestock(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC)
	imported := now.AddDate(0, 0, -10)

	cow := models.Species{Name: "Cow", GrowthRate: 0.8}
	goat := models.Species{Name: "Goat"}
	require.NoError(t, db.Create(&cow).Error)
	require.NoError(t, db.Create(&goat).Error)

	healthy := models.Livestock{InspectionCode: "C-1", SpeciesID: cow.ID, Status: models.LivestockHealthy, WeightOrigin: 100, WeightEstimate: 100, ImportedAt: &imported}
	kid := models.Livestock{InspectionCode: "G-1", SpeciesID: goat.ID, Status: models.LivestockSick, WeightOrigin: 20, WeightEstimate: 20, ImportedAt: &imported}
	sold := models.Livestock{InspectionCode: "C-2", SpeciesID: cow.ID, Status: models.LivestockExported, WeightOrigin: 100, WeightEstimate: 100, ImportedAt: &imported}
	for _, l := range []*models.Livestock{&healthy, &kid, &sold} {
		require.NoError(t, db.Create(l).Error)
	}

	w := NewWeightUpdateWorker(db, "@daily", 0.25, nil)
	w.now = func() time.Time { return now }
	w.batchSize = 1

	updated, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	reload := func(l models.Livestock) models.Livestock {
		var fresh models.Livestock
		require.NoError(t, db.First(&fresh, l.ID).Error)
		return fresh
	}
	assert.Equal(t, 108.0, reload(healthy).WeightEstimate)
	assert.Equal(t, 22.5, reload(kid).WeightEstimate)
	assert.Equal(t, 100.0, reload(sold).WeightEstimate)
	require.NotNil(t, reload(healthy).WeightUpdatedAt)

	// nothing changes on a second run at the same instant
	updated, err = w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	w := NewWeightUpdateWorker(testutil.NewDB(t), "every now and then", 0.5, nil)
	require.Error(t, w.Start())
}
