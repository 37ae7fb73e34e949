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

type VaccinationController struct {
	DB      *gorm.DB
	Service *services.VaccinationService
}

func NewVaccinationController(DB *gorm.DB) *VaccinationController {
	return &VaccinationController{DB: DB, Service: services.NewVaccinationService(DB)}
}

func (c *VaccinationController) GetAllBatches(ctx *fiber.Ctx) error {
	status := models.VaccinationStatus(strings.ToUpper(ctx.Query("status")))
	batches, err := c.Service.List(ctx.UserContext(), status)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Vaccination batches retrieved successfully", batches)
}

func (c *VaccinationController) GetBatchByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	batch, err := c.Service.Get(ctx.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Vaccination batch found", batch)
}

func (c *VaccinationController) CreateBatch(ctx *fiber.Ctx) error {
	var req dto.VaccinationBatchRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	batch, err := c.Service.Create(ctx.UserContext(), req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Vaccination batch created successfully", batch)
}

func (c *VaccinationController) AddLivestock(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.LivestockIDsRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	added, err := c.Service.AddLivestock(ctx.UserContext(), id, req.LivestockIDs, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Livestock added to vaccination batch", added)
}

func (c *VaccinationController) RemoveLivestock(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	livestockID, err := helpers.ParamID(ctx, "livestockId")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if err := c.Service.RemoveLivestock(ctx.UserContext(), id, livestockID); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Livestock removed from vaccination batch", nil)
}

func (c *VaccinationController) ChangeStatus(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.VaccinationStatusRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	batch, err := c.Service.ChangeStatus(ctx.UserContext(), id, req.Status, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Vaccination batch status updated successfully", batch)
}
