package controllers

import (
	"strings"

	"livestock-app/controllers/helpers"
	"livestock-app/dto"
	"livestock-app/models"
	"livestock-app/notification"
	"livestock-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InsuranceController struct {
	DB      *gorm.DB
	Service *services.InsuranceService
}

func NewInsuranceController(DB *gorm.DB, notifier notification.Notifier) *InsuranceController {
	return &InsuranceController{DB: DB, Service: services.NewInsuranceService(DB, notifier)}
}

func (c *InsuranceController) GetAllRequests(ctx *fiber.Ctx) error {
	status := models.InsuranceStatus(strings.ToUpper(ctx.Query("status")))
	claims, err := c.Service.List(ctx.UserContext(), status)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Insurance requests retrieved successfully", claims)
}

func (c *InsuranceController) GetRequestByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	claim, err := c.Service.Get(ctx.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Insurance request found", claim)
}

func (c *InsuranceController) CreateRequest(ctx *fiber.Ctx) error {
	var req dto.InsuranceRequestCreate
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	claim, err := c.Service.Create(ctx.UserContext(), req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Insurance request created successfully", claim)
}

func (c *InsuranceController) ChangeStatus(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.InsuranceStatusRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	claim, err := c.Service.ChangeStatus(ctx.UserContext(), id, req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Insurance request status updated successfully", claim)
}
