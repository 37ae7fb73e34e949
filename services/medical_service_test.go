package services

import (
	"testing"

	"livestock-app/dto"
	"livestock-app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicineNameIsCaseSensitive(t *testing.T) {
	f := newFixture(t)
	svc := NewMedicalService(f.db)

	_, err := svc.CreateMedicine(f.ctx, dto.MedicineRequest{Name: "Ivermectin", Type: models.MedicineTypeTreatment}, testActor)
	require.NoError(t, err)

	_, err = svc.CreateMedicine(f.ctx, dto.MedicineRequest{Name: "Ivermectin", Type: models.MedicineTypeTreatment}, testActor)
	requireFiberError(t, err, fiber.StatusConflict, MsgMedicineExists)

	other, err := svc.CreateMedicine(f.ctx, dto.MedicineRequest{Name: "ivermectin", Type: models.MedicineTypeOther}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "ivermectin", other.Name)
}

func TestMedicineDeleteBlockedWhenLinkedToDisease(t *testing.T) {
	f := newFixture(t)
	svc := NewMedicalService(f.db)

	medicine, err := svc.CreateMedicine(f.ctx, dto.MedicineRequest{Name: "FMD vaccine", Type: models.MedicineTypeVaccine}, testActor)
	require.NoError(t, err)
	disease, err := svc.CreateDisease(f.ctx, dto.DiseaseRequest{Name: "Foot and mouth"}, testActor)
	require.NoError(t, err)

	_, err = svc.AddMedicineToDisease(f.ctx, disease.ID, dto.DiseaseMedicineRequest{MedicineID: medicine.ID}, testActor)
	require.NoError(t, err)
	_, err = svc.AddMedicineToDisease(f.ctx, disease.ID, dto.DiseaseMedicineRequest{MedicineID: medicine.ID}, testActor)
	requireFiberError(t, err, fiber.StatusConflict, MsgMedicineLinked)

	err = svc.DeleteMedicine(f.ctx, medicine.ID, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgMedicineInUse)

	loaded, err := svc.GetDisease(f.ctx, disease.ID)
	require.NoError(t, err)
	require.Len(t, loaded.DiseaseMedicines, 1)
	assert.Equal(t, "FMD vaccine", loaded.DiseaseMedicines[0].Medicine.Name)

	require.NoError(t, svc.RemoveMedicineFromDisease(f.ctx, disease.ID, medicine.ID))
	err = svc.RemoveMedicineFromDisease(f.ctx, disease.ID, medicine.ID)
	requireFiberError(t, err, fiber.StatusNotFound, MsgMedicineNotLink)

	require.NoError(t, svc.DeleteMedicine(f.ctx, medicine.ID, testActor))
}

func TestDiseaseNameIgnoresCase(t *testing.T) {
	f := newFixture(t)
	svc := NewMedicalService(f.db)

	_, err := svc.CreateDisease(f.ctx, dto.DiseaseRequest{Name: "Anthrax"}, testActor)
	require.NoError(t, err)
	_, err = svc.CreateDisease(f.ctx, dto.DiseaseRequest{Name: "ANTHRAX"}, testActor)
	requireFiberError(t, err, fiber.StatusConflict, MsgDiseaseExists)
}
