package controllers

import (
	"strings"

	"livestock-app/controllers/helpers"
	"livestock-app/dto"
	"livestock-app/models"
	"livestock-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MedicalController struct {
	DB      *gorm.DB
	Service *services.MedicalService
}

func NewMedicalController(DB *gorm.DB) *MedicalController {
	return &MedicalController{DB: DB, Service: services.NewMedicalService(DB)}
}

func (c *MedicalController) GetAllMedicines(ctx *fiber.Ctx) error {
	medicineType := models.MedicineType(strings.ToUpper(ctx.Query("type")))
	medicines, err := c.Service.ListMedicines(ctx.UserContext(), ctx.Query("keyword"), medicineType)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Medicines retrieved successfully", medicines)
}

func (c *MedicalController) GetMedicineByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	medicine, err := c.Service.GetMedicine(ctx.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Medicine found", medicine)
}

func (c *MedicalController) CreateMedicine(ctx *fiber.Ctx) error {
	var req dto.MedicineRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	medicine, err := c.Service.CreateMedicine(ctx.UserContext(), req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Medicine created successfully", medicine)
}

func (c *MedicalController) UpdateMedicine(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.MedicineRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	medicine, err := c.Service.UpdateMedicine(ctx.UserContext(), id, req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Medicine updated successfully", medicine)
}

func (c *MedicalController) DeleteMedicine(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if err := c.Service.DeleteMedicine(ctx.UserContext(), id, helpers.UserID(ctx)); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Medicine deleted successfully", nil)
}

func (c *MedicalController) GetAllDiseases(ctx *fiber.Ctx) error {
	diseases, err := c.Service.ListDiseases(ctx.UserContext(), ctx.Query("keyword"))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Diseases retrieved successfully", diseases)
}

func (c *MedicalController) GetDiseaseByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	disease, err := c.Service.GetDisease(ctx.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Disease found", disease)
}

func (c *MedicalController) CreateDisease(ctx *fiber.Ctx) error {
	var req dto.DiseaseRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	disease, err := c.Service.CreateDisease(ctx.UserContext(), req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Disease created successfully", disease)
}

func (c *MedicalController) UpdateDisease(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.DiseaseRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	disease, err := c.Service.UpdateDisease(ctx.UserContext(), id, req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Disease updated successfully", disease)
}

func (c *MedicalController) DeleteDisease(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if err := c.Service.DeleteDisease(ctx.UserContext(), id, helpers.UserID(ctx)); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Disease deleted successfully", nil)
}

func (c *MedicalController) AddMedicine(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.DiseaseMedicineRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	link, err := c.Service.AddMedicineToDisease(ctx.UserContext(), id, req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Medicine linked successfully", link)
}

func (c *MedicalController) RemoveMedicine(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	medicineID, err := helpers.ParamID(ctx, "medicineId")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if err := c.Service.RemoveMedicineFromDisease(ctx.UserContext(), id, medicineID); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Medicine unlinked successfully", nil)
}
