package controllers

import (
	"strconv"
	"strings"
	"time"

	"livestock-app/controllers/helpers"
	"livestock-app/dto"
	"livestock-app/models"
	"livestock-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LivestockController struct {
	DB      *gorm.DB
	Service *services.LivestockService
}

func NewLivestockController(DB *gorm.DB) *LivestockController {
	return &LivestockController{DB: DB, Service: services.NewLivestockService(DB)}
}

func livestockFilter(ctx *fiber.Ctx) dto.LivestockFilter {
	filter := dto.LivestockFilter{
		Keyword:    strings.TrimSpace(ctx.Query("keyword")),
		SpeciesIDs: helpers.QueryIDs(ctx, "species_ids"),
		Page:       ctx.QueryInt("page", 0),
		PageSize:   ctx.QueryInt("page_size", 0),
	}
	for _, s := range strings.Split(ctx.Query("statuses"), ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			filter.Statuses = append(filter.Statuses, models.LivestockStatus(s))
		}
	}
	if barnID := ctx.QueryInt("barn_id", 0); barnID > 0 {
		id := uint(barnID)
		filter.BarnID = &id
	}
	if v, err := strconv.ParseFloat(ctx.Query("min_weight"), 64); err == nil {
		filter.MinWeight = &v
	}
	if v, err := strconv.ParseFloat(ctx.Query("max_weight"), 64); err == nil {
		filter.MaxWeight = &v
	}
	return filter
}

func (c *LivestockController) GetAllLivestock(ctx *fiber.Ctx) error {
	page, err := c.Service.List(ctx.UserContext(), livestockFilter(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Livestock retrieved successfully", page)
}

func (c *LivestockController) GetSummary(ctx *fiber.Ctx) error {
	summary, err := c.Service.Summary(ctx.UserContext())
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Summary retrieved successfully", summary)
}

func (c *LivestockController) GetLivestockByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	livestock, err := c.Service.Get(ctx.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Livestock found", livestock)
}

func (c *LivestockController) CreateLivestock(ctx *fiber.Ctx) error {
	var req dto.LivestockRequest
	if err := ctx.BodyParser(&req); err != nil {
		return helpers.BadRequest(ctx, err.Error())
	}
	if err := dto.Validate(req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}

	livestock, err := c.Service.Create(ctx.UserContext(), req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Livestock created successfully", livestock)
}

func (c *LivestockController) UpdateLivestock(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.LivestockRequest
	if err := ctx.BodyParser(&req); err != nil {
		return helpers.BadRequest(ctx, err.Error())
	}
	if err := dto.Validate(req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}

	livestock, err := c.Service.Update(ctx.UserContext(), id, req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Livestock updated successfully", livestock)
}

func (c *LivestockController) ChangeStatus(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.LivestockStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return helpers.BadRequest(ctx, err.Error())
	}
	if err := dto.Validate(req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}

	livestock, err := c.Service.ChangeStatus(ctx.UserContext(), id, req.Status, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Livestock status updated successfully", livestock)
}

func (c *LivestockController) DeleteLivestock(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if err := c.Service.Delete(ctx.UserContext(), id, helpers.UserID(ctx)); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Livestock deleted successfully", nil)
}

func (c *LivestockController) ExportExcel(ctx *fiber.Ctx) error {
	f, err := c.Service.ExportExcel(ctx.UserContext(), livestockFilter(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	filename := "livestock_" + time.Now().Format("20060102_150405") + ".xlsx"
	return helpers.SendExcel(ctx, f, filename)
}

func (c *LivestockController) ImportExcel(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return helpers.BadRequest(ctx, "File is required")
	}

	// Validate file extension
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") {
		return helpers.BadRequest(ctx, "Only Excel files (.xlsx) are allowed")
	}

	content, err := file.Open()
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	defer content.Close()

	result, err := c.Service.ImportExcel(ctx.UserContext(), content, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Livestock imported", result)
}
