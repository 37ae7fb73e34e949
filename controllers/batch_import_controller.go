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

type BatchImportController struct {
	DB      *gorm.DB
	Service *services.BatchImportService
}

func NewBatchImportController(DB *gorm.DB) *BatchImportController {
	return &BatchImportController{DB: DB, Service: services.NewBatchImportService(DB)}
}

func (c *BatchImportController) GetAllBatches(ctx *fiber.Ctx) error {
	status := models.BatchImportStatus(strings.ToUpper(ctx.Query("status")))
	batches, err := c.Service.List(ctx.UserContext(), status)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Batch imports retrieved successfully", batches)
}

func (c *BatchImportController) GetBatchByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	batch, err := c.Service.Get(ctx.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Batch import found", batch)
}

func (c *BatchImportController) CreateBatch(ctx *fiber.Ctx) error {
	var req dto.BatchImportRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	batch, err := c.Service.Create(ctx.UserContext(), req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Batch import created successfully", batch)
}

func (c *BatchImportController) AddLivestock(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.ImportLivestockRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	detail, err := c.Service.AddLivestock(ctx.UserContext(), id, req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Livestock imported successfully", detail)
}

func (c *BatchImportController) ChangeStatus(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.BatchImportStatusRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	batch, err := c.Service.ChangeStatus(ctx.UserContext(), id, req.Status, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Batch import status updated successfully", batch)
}
