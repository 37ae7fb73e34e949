package services

import (
	"testing"

	"livestock-app/dto"
	"livestock-app/farm/master/supplier"
	"livestock-app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchImportRegistersLivestock(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	barn := f.barn("North barn")
	sup := supplier.Supplier{Code: "SUP-1", Name: "Green Valley"}
	require.NoError(t, f.db.Create(&sup).Error)
	svc := NewBatchImportService(f.db)

	batch, err := svc.Create(f.ctx, dto.BatchImportRequest{
		Name:              "March intake",
		BarnID:            barn.ID,
		SupplierID:        &sup.ID,
		EstimatedQuantity: 2,
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.BatchImportPending, batch.Status)

	tagged, err := svc.AddLivestock(f.ctx, batch.ID, dto.ImportLivestockRequest{InspectionCode: "C-1", SpeciesID: cow.ID, Weight: 180}, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.LivestockHealthy, tagged.Livestock.Status)
	assert.Equal(t, "Green Valley", tagged.Livestock.Origin)
	require.NotNil(t, tagged.Livestock.BarnID)
	assert.Equal(t, barn.ID, *tagged.Livestock.BarnID)

	untagged, err := svc.AddLivestock(f.ctx, batch.ID, dto.ImportLivestockRequest{SpeciesID: cow.ID, Weight: 150}, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.LivestockUnidentified, untagged.Livestock.Status)

	_, err = svc.AddLivestock(f.ctx, batch.ID, dto.ImportLivestockRequest{InspectionCode: "C-1", SpeciesID: cow.ID}, testActor)
	requireFiberError(t, err, fiber.StatusConflict, MsgInspectionCodeExists)

	current, err := svc.Get(f.ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BatchImportImporting, current.Status)
	assert.Equal(t, 2, current.ImportedQuantity)
	require.NotNil(t, current.StartedAt)

	done, err := svc.ChangeStatus(f.ctx, batch.ID, models.BatchImportCompleted, testActor)
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)

	_, err = svc.AddLivestock(f.ctx, batch.ID, dto.ImportLivestockRequest{SpeciesID: cow.ID}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgBatchImportLocked)
}

func TestBatchImportValidatesReferences(t *testing.T) {
	f := newFixture(t)
	barn := f.barn("North barn")
	svc := NewBatchImportService(f.db)

	_, err := svc.Create(f.ctx, dto.BatchImportRequest{Name: "Lost", BarnID: 99}, testActor)
	requireFiberError(t, err, fiber.StatusNotFound, MsgBarnNotFound)

	missing := uint(99)
	_, err = svc.Create(f.ctx, dto.BatchImportRequest{Name: "Lost", BarnID: barn.ID, SupplierID: &missing}, testActor)
	requireFiberError(t, err, fiber.StatusNotFound, MsgSupplierNotFound)

	batch, err := svc.Create(f.ctx, dto.BatchImportRequest{Name: "Plain", BarnID: barn.ID}, testActor)
	require.NoError(t, err)
	_, err = svc.ChangeStatus(f.ctx, batch.ID, models.BatchImportCompleted, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, "")
	_, err = svc.ChangeStatus(f.ctx, batch.ID, models.BatchImportCancelled, testActor)
	require.NoError(t, err)
}
