package services

import (
	"context"
	"testing"
	"time"

	"livestock-app/dto"
	"livestock-app/models"
	"livestock-app/notification"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	messages []notification.Message
}

func (n *recordingNotifier) Notify(_ context.Context, msg notification.Message) error {
	n.messages = append(n.messages, msg)
	return nil
}

func TestInsuranceReplacementLifecycle(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	disease := f.disease("Pneumonia")
	notifier := &recordingNotifier{}
	svc := NewInsuranceService(f.db, notifier)

	sold := f.livestock("C-1", cow.ID, models.LivestockHealthy, 250)
	order := sellByOrder(t, f, cow.ID, sold, 30)

	claim, err := svc.Create(f.ctx, dto.InsuranceRequestCreate{
		LivestockID:       sold.ID,
		DiseaseID:         disease.ID,
		Description:       "coughing after delivery",
		IsLivestockReturn: true,
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.InsurancePending, claim.Status)
	require.NotNil(t, claim.OrderID)
	assert.Equal(t, order.ID, *claim.OrderID)
	assert.Nil(t, claim.ProcurementPackageID)

	_, err = svc.Create(f.ctx, dto.InsuranceRequestCreate{LivestockID: sold.ID, DiseaseID: disease.ID}, testActor)
	requireFiberError(t, err, fiber.StatusConflict, MsgInsuranceOpen)

	_, err = svc.ChangeStatus(f.ctx, claim.ID, dto.InsuranceStatusRequest{Status: models.InsuranceApproved}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, "")

	processing, err := svc.ChangeStatus(f.ctx, claim.ID, dto.InsuranceStatusRequest{Status: models.InsuranceProcessing}, testActor)
	require.NoError(t, err)
	require.NotNil(t, processing.ProcessingAt)

	approved, err := svc.ChangeStatus(f.ctx, claim.ID, dto.InsuranceStatusRequest{Status: models.InsuranceApproved}, testActor)
	require.NoError(t, err)
	require.NotNil(t, approved.ApprovedAt)
	assert.Equal(t, models.LivestockSick, f.reload(sold).Status)

	_, err = svc.ChangeStatus(f.ctx, claim.ID, dto.InsuranceStatusRequest{Status: models.InsuranceCompleted}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgReplacementRequired)

	goat := f.species("Goat")
	wrong := f.livestock("G-1", goat.ID, models.LivestockHealthy, 40)
	_, err = svc.ChangeStatus(f.ctx, claim.ID, dto.InsuranceStatusRequest{Status: models.InsuranceCompleted, NewLivestockID: &wrong.ID}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgReplacementSpecies)

	replacement := f.livestock("C-2", cow.ID, models.LivestockHealthy, 255)
	completed, err := svc.ChangeStatus(f.ctx, claim.ID, dto.InsuranceStatusRequest{Status: models.InsuranceCompleted, NewLivestockID: &replacement.ID}, testActor)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	require.NotNil(t, completed.NewLivestockID)
	assert.Equal(t, replacement.ID, *completed.NewLivestockID)
	assert.Equal(t, models.LivestockExported, f.reload(replacement).Status)

	details := []models.OrderDetail{}
	require.NoError(t, f.db.Where("order_id = ?", order.ID).Order("id").Find(&details).Error)
	require.Len(t, details, 2)
	assert.Equal(t, models.ExportDetailReplaced, details[0].Status)
	assert.Equal(t, models.ExportDetailHandedOver, details[1].Status)
	assert.Equal(t, replacement.ID, details[1].LivestockID)
	assert.True(t, details[0].PriceUnit.Equal(details[1].PriceUnit))
	require.NotNil(t, details[1].ExpiredInsuranceDate)
	assert.WithinDuration(t, *details[0].ExpiredInsuranceDate, *details[1].ExpiredInsuranceDate, time.Second)

	// created, processing, approved, completed
	assert.Len(t, notifier.messages, 4)
}

func TestInsuranceRejectRequiresReason(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	disease := f.disease("Pneumonia")
	svc := NewInsuranceService(f.db, nil)

	sold := f.livestock("C-1", cow.ID, models.LivestockHealthy, 250)
	sellByOrder(t, f, cow.ID, sold, 30)

	claim, err := svc.Create(f.ctx, dto.InsuranceRequestCreate{LivestockID: sold.ID, DiseaseID: disease.ID}, testActor)
	require.NoError(t, err)

	_, err = svc.ChangeStatus(f.ctx, claim.ID, dto.InsuranceStatusRequest{Status: models.InsuranceRejected}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgRejectReasonRequired)

	rejected, err := svc.ChangeStatus(f.ctx, claim.ID, dto.InsuranceStatusRequest{Status: models.InsuranceRejected, RejectReason: "not covered"}, testActor)
	require.NoError(t, err)
	require.NotNil(t, rejected.RejectedAt)
	assert.Equal(t, "not covered", rejected.RejectReason)

	// a closed claim no longer blocks a new one
	_, err = svc.Create(f.ctx, dto.InsuranceRequestCreate{LivestockID: sold.ID, DiseaseID: disease.ID}, testActor)
	require.NoError(t, err)
}

func TestInsuranceCreateChecksEligibility(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	disease := f.disease("Pneumonia")
	svc := NewInsuranceService(f.db, nil)

	onFarm := f.livestock("C-1", cow.ID, models.LivestockHealthy, 250)
	_, err := svc.Create(f.ctx, dto.InsuranceRequestCreate{LivestockID: onFarm.ID, DiseaseID: disease.ID}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgLivestockNotExported)

	sold := f.livestock("C-2", cow.ID, models.LivestockHealthy, 250)
	order := sellByOrder(t, f, cow.ID, sold, 30)
	past := time.Now().AddDate(0, 0, -1)
	require.NoError(t, f.db.Model(&models.OrderDetail{}).Where("order_id = ?", order.ID).
		Update("expired_insurance_date", past).Error)

	_, err = svc.Create(f.ctx, dto.InsuranceRequestCreate{LivestockID: sold.ID, DiseaseID: disease.ID}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgInsuranceExpired)

	_, err = svc.Create(f.ctx, dto.InsuranceRequestCreate{LivestockID: 999, DiseaseID: disease.ID}, testActor)
	requireFiberError(t, err, fiber.StatusNotFound, MsgLivestockNotFound)
}

func TestInsuranceCancelAfterReturnKeepsLivestockSold(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	disease := f.disease("Pneumonia")
	svc := NewInsuranceService(f.db, nil)
	livestock := NewLivestockService(f.db)

	sold := f.livestock("C-1", cow.ID, models.LivestockHealthy, 250)
	sellByOrder(t, f, cow.ID, sold, 30)

	claim, err := svc.Create(f.ctx, dto.InsuranceRequestCreate{LivestockID: sold.ID, DiseaseID: disease.ID, IsLivestockReturn: true}, testActor)
	require.NoError(t, err)
	for _, status := range []models.InsuranceStatus{models.InsuranceProcessing, models.InsuranceApproved} {
		_, err := svc.ChangeStatus(f.ctx, claim.ID, dto.InsuranceStatusRequest{Status: status}, testActor)
		require.NoError(t, err)
	}
	assert.Equal(t, models.LivestockSick, f.reload(sold).Status)

	// the open claim holds the returned animal
	_, err = livestock.ChangeStatus(f.ctx, sold.ID, models.LivestockHealthy, testActor)
	requireFiberError(t, err, fiber.StatusConflict, MsgLivestockBusy)

	cancelled, err := svc.ChangeStatus(f.ctx, claim.ID, dto.InsuranceStatusRequest{Status: models.InsuranceCancelled}, testActor)
	require.NoError(t, err)
	require.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, models.LivestockExported, f.reload(sold).Status)

	_, err = livestock.ChangeStatus(f.ctx, sold.ID, models.LivestockHealthy, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgLivestockNotOnFarm)

	order := createCowOrder(t, f, cow.ID, 1, 30)
	_, err = NewOrderService(f.db).AddDetail(f.ctx, order.ID, dto.ExportDetailRequest{LivestockID: sold.ID}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgLivestockNotEligible)

	var handedOver int64
	require.NoError(t, f.db.Model(&models.OrderDetail{}).
		Where("livestock_id = ? AND status = ?", sold.ID, models.ExportDetailHandedOver).
		Count(&handedOver).Error)
	assert.EqualValues(t, 1, handedOver)
}

func TestInsuranceCancelWithoutReturnLeavesLivestock(t *testing.T) {
	f := newFixture(t)
	cow := f.species("Cow")
	disease := f.disease("Pneumonia")
	svc := NewInsuranceService(f.db, nil)

	sold := f.livestock("C-1", cow.ID, models.LivestockHealthy, 250)
	sellByOrder(t, f, cow.ID, sold, 30)

	claim, err := svc.Create(f.ctx, dto.InsuranceRequestCreate{LivestockID: sold.ID, DiseaseID: disease.ID}, testActor)
	require.NoError(t, err)
	for _, status := range []models.InsuranceStatus{models.InsuranceProcessing, models.InsuranceApproved, models.InsuranceCancelled} {
		_, err := svc.ChangeStatus(f.ctx, claim.ID, dto.InsuranceStatusRequest{Status: status}, testActor)
		require.NoError(t, err)
	}
	assert.Equal(t, models.LivestockExported, f.reload(sold).Status)
}
