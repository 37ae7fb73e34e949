package workflow

import (
	"testing"

	"livestock-app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsuranceTransitions(t *testing.T) {
	assert.True(t, Insurance.CanTransition(models.InsurancePending, models.InsuranceProcessing))
	assert.True(t, Insurance.CanTransition(models.InsuranceApproved, models.InsuranceCompleted))
	assert.False(t, Insurance.CanTransition(models.InsurancePending, models.InsuranceCompleted))
	assert.False(t, Insurance.CanTransition(models.InsuranceCompleted, models.InsuranceCancelled))
	assert.False(t, Insurance.CanTransition(models.InsuranceRejected, models.InsuranceProcessing))
}

func TestTransitionError(t *testing.T) {
	err := Procurement.Transition(models.ProcurementCompleted, models.ProcurementBidding)
	require.Error(t, err)

	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Equal(t, "Không thể chuyển trạng thái từ COMPLETED sang BIDDING", err.Error())

	assert.NoError(t, Procurement.Transition(models.ProcurementBidding, models.ProcurementAwarded))
}

func TestTargetsIsACopy(t *testing.T) {
	targets := Order.Targets(models.OrderNew)
	require.Len(t, targets, 2)
	targets[0] = models.OrderCompleted
	assert.False(t, Order.CanTransition(models.OrderNew, models.OrderCompleted))
}

func TestTerminalStatusesHaveNoTargets(t *testing.T) {
	assert.Empty(t, BatchExport.Targets(models.BatchExportCompleted))
	assert.Empty(t, Vaccination.Targets(models.VaccinationCancelled))
	assert.Empty(t, BatchImport.Targets(models.BatchImportCompleted))
}
