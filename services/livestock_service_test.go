package services

import (
	"testing"
	"time"

	"livestock-app/dto"
	"livestock-app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLivestockListExcludesRecordsWithoutInspectionCode(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	f.livestock("C-001", cow.ID, models.LivestockHealthy, 300)
	f.livestock("", cow.ID, models.LivestockUnidentified, 250)

	page, err := NewLivestockService(f.db).List(f.ctx, dto.LivestockFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "C-001", page.Items[0].InspectionCode)
	require.NotNil(t, page.Items[0].Species)
	assert.Equal(t, "Cow", page.Items[0].Species.Name)
}

func TestLivestockListFiltersByWeightRange(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	goat := f.species("Goat")
	f.livestock("C-001", cow.ID, models.LivestockHealthy, 180)
	f.livestock("C-002", cow.ID, models.LivestockHealthy, 250)
	f.livestock("C-003", cow.ID, models.LivestockSick, 320)
	f.livestock("G-001", goat.ID, models.LivestockHealthy, 40)

	min, max := 200.0, 300.0
	page, err := NewLivestockService(f.db).List(f.ctx, dto.LivestockFilter{MinWeight: &min, MaxWeight: &max})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "C-002", page.Items[0].InspectionCode)

	page, err = NewLivestockService(f.db).List(f.ctx, dto.LivestockFilter{
		SpeciesIDs: []uint{cow.ID},
		Statuses:   []models.LivestockStatus{models.LivestockHealthy},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
}

func TestLivestockListPaging(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	for _, code := range []string{"C-1", "C-2", "C-3"} {
		f.livestock(code, cow.ID, models.LivestockHealthy, 100)
	}

	page, err := NewLivestockService(f.db).List(f.ctx, dto.LivestockFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "C-1", page.Items[0].InspectionCode)
}

func TestLivestockCreate(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	svc := NewLivestockService(f.db)

	tagged, err := svc.Create(f.ctx, dto.LivestockRequest{InspectionCode: "C-1", SpeciesID: cow.ID, WeightOrigin: 210}, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.LivestockHealthy, tagged.Status)
	assert.Equal(t, 210.0, tagged.WeightEstimate)

	untagged, err := svc.Create(f.ctx, dto.LivestockRequest{SpeciesID: cow.ID}, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.LivestockUnidentified, untagged.Status)

	_, err = svc.Create(f.ctx, dto.LivestockRequest{InspectionCode: "C-1", SpeciesID: cow.ID}, testActor)
	requireFiberError(t, err, fiber.StatusConflict, MsgInspectionCodeExists)

	_, err = svc.Create(f.ctx, dto.LivestockRequest{SpeciesID: cow.ID, Status: models.LivestockSick}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgInspectionCodeMissing)

	_, err = svc.Create(f.ctx, dto.LivestockRequest{InspectionCode: "C-9", SpeciesID: 999}, testActor)
	requireFiberError(t, err, fiber.StatusNotFound, MsgSpeciesMissing)
}

func TestLivestockTaggingUnidentifiedMakesItHealthy(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	svc := NewLivestockService(f.db)

	l, err := svc.Create(f.ctx, dto.LivestockRequest{SpeciesID: cow.ID}, testActor)
	require.NoError(t, err)

	updated, err := svc.Update(f.ctx, l.ID, dto.LivestockRequest{InspectionCode: "C-7", SpeciesID: cow.ID}, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.LivestockHealthy, updated.Status)
	assert.Equal(t, "C-7", updated.InspectionCode)
}

func TestLivestockChangeStatus(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	svc := NewLivestockService(f.db)
	l := f.livestock("C-1", cow.ID, models.LivestockHealthy, 200)

	sick, err := svc.ChangeStatus(f.ctx, l.ID, models.LivestockSick, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.LivestockSick, sick.Status)

	dead, err := svc.ChangeStatus(f.ctx, l.ID, models.LivestockDead, testActor)
	require.NoError(t, err)
	require.NotNil(t, dead.DeadAt)

	_, err = svc.ChangeStatus(f.ctx, l.ID, models.LivestockHealthy, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgLivestockNotOnFarm)

	waiting := f.livestock("C-2", cow.ID, models.LivestockWaitingExport, 200)
	_, err = svc.ChangeStatus(f.ctx, waiting.ID, models.LivestockSick, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, "")

	histories, err := NewHistoryService(f.db).List(f.ctx, "C-1", models.HistoryTypeLivestock)
	require.NoError(t, err)
	require.Len(t, histories, 2)
	assert.Equal(t, "HEALTHY -> SICK", histories[0].Detail)
}

func TestLivestockSummaryCountsOnFarm(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	f.livestock("C-1", cow.ID, models.LivestockHealthy, 100)
	f.livestock("C-2", cow.ID, models.LivestockSick, 100)
	f.livestock("C-3", cow.ID, models.LivestockExported, 100)

	summary, err := NewLivestockService(f.db).Summary(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Total)
	assert.Equal(t, int64(2), summary.OnFarm)
}

func TestLivestockDeleteBlockedWhenReferenced(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	svc := NewLivestockService(f.db)
	l := f.livestock("C-1", cow.ID, models.LivestockHealthy, 100)

	medicine := models.Medicine{Name: "FMD vaccine", Type: models.MedicineTypeVaccine}
	require.NoError(t, f.db.Create(&medicine).Error)
	batch := models.VaccinationBatch{Name: "Spring", MedicineID: medicine.ID, Status: models.VaccinationPlanned, ScheduledAt: time.Now()}
	require.NoError(t, f.db.Create(&batch).Error)
	require.NoError(t, f.db.Create(&models.LivestockVaccination{VaccinationBatchID: batch.ID, LivestockID: l.ID}).Error)
	err := svc.Delete(f.ctx, l.ID, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgLivestockInUse)

	free := f.livestock("C-2", cow.ID, models.LivestockHealthy, 100)
	require.NoError(t, svc.Delete(f.ctx, free.ID, testActor))
}
