package services

import (
	"testing"
	"time"

	"livestock-app/dto"
	"livestock-app/models"
	"livestock-app/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCowTender(t *testing.T, f *fixture, cowID uint, quantity int) *models.ProcurementPackage {
	t.Helper()
	pkg, err := NewProcurementService(f.db).Create(f.ctx, dto.ProcurementRequest{
		Name:            "Cattle tender",
		Owner:           "District 5 market",
		ExpiredDuration: 10,
		Details: []dto.ProcurementDetailRequest{{
			SpeciesID:             cowID,
			RequiredQuantity:      quantity,
			RequiredWeightMin:     200,
			RequiredWeightMax:     300,
			RequiredAgeMin:        12,
			RequiredAgeMax:        36,
			RequiredInsuranceDays: 30,
		}},
	}, testActor)
	require.NoError(t, err)
	return pkg
}

func withDOB(t *testing.T, f *fixture, l models.Livestock, months int) models.Livestock {
	t.Helper()
	require.NoError(t, f.db.Model(&l).Update("date_of_birth", monthsAgo(months)).Error)
	return f.reload(l)
}

func TestProcurementExportLifecycle(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	goat := f.species("Goat")
	procurements := NewProcurementService(f.db)
	exports := NewBatchExportService(f.db)

	pkg := createCowTender(t, f, cow.ID, 1)
	assert.Equal(t, models.ProcurementBidding, pkg.Status)

	awarded, err := procurements.Accept(f.ctx, pkg.ID, dto.AcceptProcurementRequest{}, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.ProcurementAwarded, awarded.Status)
	require.NotNil(t, awarded.SuccessDate)
	require.NotNil(t, awarded.ExpirationDate)
	assert.WithinDuration(t, awarded.SuccessDate.AddDate(0, 0, 10), *awarded.ExpirationDate, time.Second)

	batches, err := exports.List(f.ctx, pkg.ID)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	batch := batches[0]
	assert.Equal(t, 1, batch.Total)
	assert.Equal(t, 1, batch.Remaining)
	assert.Equal(t, "District 5 market", batch.CustomerName)

	g := withDOB(t, f, f.livestock("G-1", goat.ID, models.LivestockHealthy, 250), 20)
	_, err = exports.AddExportDetail(f.ctx, batch.ID, dto.ExportDetailRequest{LivestockID: g.ID}, testActor)
	requireFiberError(t, err, fiber.StatusNotFound, MsgSpeciesNotRequired)

	heavy := withDOB(t, f, f.livestock("C-2", cow.ID, models.LivestockHealthy, 500), 20)
	_, err = exports.AddExportDetail(f.ctx, batch.ID, dto.ExportDetailRequest{LivestockID: heavy.ID}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgWeightNotMatched)

	young := withDOB(t, f, f.livestock("C-3", cow.ID, models.LivestockHealthy, 250), 6)
	_, err = exports.AddExportDetail(f.ctx, batch.ID, dto.ExportDetailRequest{LivestockID: young.ID}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgAgeNotMatched)

	c1 := withDOB(t, f, f.livestock("C-1", cow.ID, models.LivestockHealthy, 250), 20)
	detail, err := exports.AddExportDetail(f.ctx, batch.ID, dto.ExportDetailRequest{
		LivestockID: c1.ID,
		PriceUnit:   decimal.NewFromInt(15000000),
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.ExportDetailPendingHandover, detail.Status)
	assert.Equal(t, models.LivestockWaitingExport, f.reload(c1).Status)

	view, err := procurements.Get(f.ctx, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProcurementHandingOver, view.Status)
	require.NotNil(t, view.HandoverStartedAt)
	assert.Equal(t, int64(1), view.TotalSelected)

	_, err = exports.AddExportDetail(f.ctx, batch.ID, dto.ExportDetailRequest{LivestockID: young.ID}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgBatchExportFull)

	handed, err := exports.ConfirmHandover(f.ctx, batch.ID, dto.HandoverRequest{}, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.BatchExportCompleted, handed.Status)
	assert.Equal(t, int64(1), handed.HandedOver)
	require.Len(t, handed.Details, 1)
	d := handed.Details[0]
	require.NotNil(t, d.HandoverDate)
	require.NotNil(t, d.ExpiredInsuranceDate)
	assert.WithinDuration(t, d.HandoverDate.AddDate(0, 0, 30), *d.ExpiredInsuranceDate, time.Second)
	assert.True(t, decimal.NewFromInt(15000000).Equal(d.PriceUnit))

	exported := f.reload(c1)
	assert.Equal(t, models.LivestockExported, exported.Status)
	require.NotNil(t, exported.ExportedAt)

	view, err = procurements.Get(f.ctx, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProcurementCompleted, view.Status)
	require.NotNil(t, view.CompletionDate)
	assert.Equal(t, int64(1), view.TotalHandedOver)

	histories, err := NewHistoryService(f.db).List(f.ctx, pkg.Code, models.HistoryTypeProcurement)
	require.NoError(t, err)
	require.Len(t, histories, 4)
	assert.Equal(t, string(models.ProcurementBidding), histories[0].Status)
	assert.Equal(t, string(models.ProcurementCompleted), histories[3].Status)
}

func TestRemoveExportDetailReleasesLivestock(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	exports := NewBatchExportService(f.db)

	pkg := createCowTender(t, f, cow.ID, 2)
	_, err := NewProcurementService(f.db).Accept(f.ctx, pkg.ID, dto.AcceptProcurementRequest{CustomerName: "Buyer"}, testActor)
	require.NoError(t, err)
	batches, err := exports.List(f.ctx, pkg.ID)
	require.NoError(t, err)

	c1 := withDOB(t, f, f.livestock("C-1", cow.ID, models.LivestockHealthy, 250), 20)
	detail, err := exports.AddExportDetail(f.ctx, batches[0].ID, dto.ExportDetailRequest{LivestockID: c1.ID}, testActor)
	require.NoError(t, err)

	// a reserved animal cannot be put on an order
	order, err := NewOrderService(f.db).Create(f.ctx, dto.OrderRequest{
		CustomerName: "Other buyer",
		Requirements: []dto.OrderRequirementRequest{{SpeciesID: cow.ID, Quantity: 1}},
	}, testActor)
	require.NoError(t, err)
	_, err = NewOrderService(f.db).AddDetail(f.ctx, order.ID, dto.ExportDetailRequest{LivestockID: c1.ID}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgLivestockNotEligible)

	require.NoError(t, exports.RemoveExportDetail(f.ctx, detail.ID, testActor))
	assert.Equal(t, models.LivestockHealthy, f.reload(c1).Status)

	view, err := exports.Get(f.ctx, batches[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Remaining)
	assert.Empty(t, view.Details)
}

func TestProcurementInvalidTransitions(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	procurements := NewProcurementService(f.db)

	pkg := createCowTender(t, f, cow.ID, 1)
	_, err := procurements.Complete(f.ctx, pkg.ID, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest,
		workflow.InvalidTransitionMessage(string(models.ProcurementBidding), string(models.ProcurementCompleted)))

	rejected, err := procurements.Reject(f.ctx, pkg.ID, testActor)
	require.NoError(t, err)
	require.NotNil(t, rejected.RejectedAt)

	_, err = procurements.Accept(f.ctx, pkg.ID, dto.AcceptProcurementRequest{}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, "")
}

func TestProcurementCancelClosesPendingBatches(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	procurements := NewProcurementService(f.db)

	pkg := createCowTender(t, f, cow.ID, 3)
	_, err := procurements.Accept(f.ctx, pkg.ID, dto.AcceptProcurementRequest{}, testActor)
	require.NoError(t, err)

	cancelled, err := procurements.Cancel(f.ctx, pkg.ID, testActor)
	require.NoError(t, err)
	require.NotNil(t, cancelled.CancelledAt)

	batches, err := NewBatchExportService(f.db).List(f.ctx, pkg.ID)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, models.BatchExportCancelled, batches[0].Status)
}

func TestProcurementEditableOnlyWhileBidding(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	procurements := NewProcurementService(f.db)

	pkg := createCowTender(t, f, cow.ID, 1)
	_, err := procurements.Create(f.ctx, dto.ProcurementRequest{
		Name: "Broken",
		Details: []dto.ProcurementDetailRequest{
			{SpeciesID: cow.ID, RequiredQuantity: 1, RequiredWeightMin: 300, RequiredWeightMax: 200},
		},
	}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgWeightRange)

	_, err = procurements.Accept(f.ctx, pkg.ID, dto.AcceptProcurementRequest{}, testActor)
	require.NoError(t, err)

	_, err = procurements.Update(f.ctx, pkg.ID, dto.ProcurementRequest{
		Name:    "Renamed",
		Details: []dto.ProcurementDetailRequest{{SpeciesID: cow.ID, RequiredQuantity: 1}},
	}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgProcurementNotEditable)
}

func TestProcurementExportExcel(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	procurements := NewProcurementService(f.db)
	exports := NewBatchExportService(f.db)

	pkg := createCowTender(t, f, cow.ID, 2)
	_, err := procurements.Accept(f.ctx, pkg.ID, dto.AcceptProcurementRequest{}, testActor)
	require.NoError(t, err)
	batches, err := exports.List(f.ctx, pkg.ID)
	require.NoError(t, err)
	require.Len(t, batches, 1)

	c1 := withDOB(t, f, f.livestock("C-1", cow.ID, models.LivestockHealthy, 250), 20)
	_, err = exports.AddExportDetail(f.ctx, batches[0].ID, dto.ExportDetailRequest{LivestockID: c1.ID}, testActor)
	require.NoError(t, err)

	file, err := procurements.ExportExcel(f.ctx, pkg.ID)
	require.NoError(t, err)
	defer file.Close()

	code, err := file.GetCellValue(procurementSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, pkg.Code, code)

	rows, err := file.GetRows(procurementSheet)
	require.NoError(t, err)
	require.Len(t, rows, 11)
	assert.Equal(t, "STT", rows[9][0])
	assert.Equal(t, "C-1", rows[10][1])
	assert.Equal(t, "Cow", rows[10][2])
	assert.Equal(t, string(models.ExportDetailPendingHandover), rows[10][7])

	reqRows, err := file.GetRows(requirementsSheet)
	require.NoError(t, err)
	require.Len(t, reqRows, 2)
	assert.Equal(t, "Cow", reqRows[1][0])
	assert.Equal(t, "2", reqRows[1][1])
	assert.Equal(t, "1", reqRows[1][7])
}

func TestProcurementExportExcelMissingPackage(t *testing.T) {
	f := newFixture(t)
	_, err := NewProcurementService(f.db).ExportExcel(f.ctx, 404)
	requireFiberError(t, err, fiber.StatusNotFound, MsgProcurementNotFound)
}

func TestLivestockHeldByOneSaleAtATime(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	exports := NewBatchExportService(f.db)
	orders := NewOrderService(f.db)

	pkg := createCowTender(t, f, cow.ID, 2)
	_, err := NewProcurementService(f.db).Accept(f.ctx, pkg.ID, dto.AcceptProcurementRequest{}, testActor)
	require.NoError(t, err)
	batches, err := exports.List(f.ctx, pkg.ID)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	order := createCowOrder(t, f, cow.ID, 2, 0)

	// status drifted back to HEALTHY while the export row is still pending
	c1 := withDOB(t, f, f.livestock("C-1", cow.ID, models.LivestockHealthy, 250), 20)
	_, err = exports.AddExportDetail(f.ctx, batches[0].ID, dto.ExportDetailRequest{LivestockID: c1.ID}, testActor)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&c1).Update("status", models.LivestockHealthy).Error)

	_, err = orders.AddDetail(f.ctx, order.ID, dto.ExportDetailRequest{LivestockID: c1.ID}, testActor)
	requireFiberError(t, err, fiber.StatusConflict, MsgLivestockBusy)
	_, err = NewLivestockService(f.db).ChangeStatus(f.ctx, c1.ID, models.LivestockSick, testActor)
	requireFiberError(t, err, fiber.StatusConflict, MsgLivestockBusy)

	// and the other way round
	c2 := withDOB(t, f, f.livestock("C-2", cow.ID, models.LivestockHealthy, 250), 20)
	_, err = orders.AddDetail(f.ctx, order.ID, dto.ExportDetailRequest{LivestockID: c2.ID}, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.LivestockWaitingExport, f.reload(c2).Status)

	_, err = exports.AddExportDetail(f.ctx, batches[0].ID, dto.ExportDetailRequest{LivestockID: c2.ID}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgLivestockNotEligible)

	require.NoError(t, f.db.Model(&c2).Update("status", models.LivestockHealthy).Error)
	_, err = exports.AddExportDetail(f.ctx, batches[0].ID, dto.ExportDetailRequest{LivestockID: c2.ID}, testActor)
	requireFiberError(t, err, fiber.StatusConflict, MsgLivestockBusy)
}
