package controllers

import (
	"context"
	"fmt"
	"strings"

	"livestock-app/controllers/helpers"
	"livestock-app/dto"
	"livestock-app/models"
	"livestock-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProcurementController struct {
	DB      *gorm.DB
	Service *services.ProcurementService
	Exports *services.BatchExportService
}

func NewProcurementController(DB *gorm.DB) *ProcurementController {
	return &ProcurementController{
		DB:      DB,
		Service: services.NewProcurementService(DB),
		Exports: services.NewBatchExportService(DB),
	}
}

func (c *ProcurementController) GetAllPackages(ctx *fiber.Ctx) error {
	status := models.ProcurementStatus(strings.ToUpper(ctx.Query("status")))
	packages, err := c.Service.List(ctx.UserContext(), status, ctx.Query("keyword"))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Procurement packages retrieved successfully", packages)
}

func (c *ProcurementController) GetPackageByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	pkg, err := c.Service.Get(ctx.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Procurement package found", pkg)
}

func (c *ProcurementController) CreatePackage(ctx *fiber.Ctx) error {
	var req dto.ProcurementRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	pkg, err := c.Service.Create(ctx.UserContext(), req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Procurement package created successfully", pkg)
}

func (c *ProcurementController) UpdatePackage(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.ProcurementRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	pkg, err := c.Service.Update(ctx.UserContext(), id, req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Procurement package updated successfully", pkg)
}

func (c *ProcurementController) DeletePackage(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if err := c.Service.Delete(ctx.UserContext(), id, helpers.UserID(ctx)); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Procurement package deleted successfully", nil)
}

func (c *ProcurementController) Accept(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.AcceptProcurementRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	pkg, err := c.Service.Accept(ctx.UserContext(), id, req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Procurement package accepted", pkg)
}

func (c *ProcurementController) Reject(ctx *fiber.Ctx) error {
	return c.simpleTransition(ctx, c.Service.Reject, "Procurement package rejected")
}

func (c *ProcurementController) Cancel(ctx *fiber.Ctx) error {
	return c.simpleTransition(ctx, c.Service.Cancel, "Procurement package cancelled")
}

func (c *ProcurementController) Complete(ctx *fiber.Ctx) error {
	return c.simpleTransition(ctx, c.Service.Complete, "Procurement package completed")
}

func (c *ProcurementController) simpleTransition(ctx *fiber.Ctx,
	fn func(context.Context, uint, int) (*models.ProcurementPackage, error), message string) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	pkg, err := fn(ctx.UserContext(), id, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, message, pkg)
}

func (c *ProcurementController) ExportExcel(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	f, err := c.Service.ExportExcel(ctx.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.SendExcel(ctx, f, fmt.Sprintf("procurement_%d.xlsx", id))
}

func (c *ProcurementController) GetBatchExports(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	batches, err := c.Exports.List(ctx.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Batch exports retrieved successfully", batches)
}

func (c *ProcurementController) GetBatchExportByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	batch, err := c.Exports.Get(ctx.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Batch export found", batch)
}

func (c *ProcurementController) AddExportDetail(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.ExportDetailRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	detail, err := c.Exports.AddExportDetail(ctx.UserContext(), id, req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Livestock added to batch export", detail)
}

func (c *ProcurementController) RemoveExportDetail(ctx *fiber.Ctx) error {
	detailID, err := helpers.ParamID(ctx, "detailId")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if err := c.Exports.RemoveExportDetail(ctx.UserContext(), detailID, helpers.UserID(ctx)); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Livestock removed from batch export", nil)
}

func (c *ProcurementController) ConfirmHandover(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.HandoverRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	batch, err := c.Exports.ConfirmHandover(ctx.UserContext(), id, req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Handover confirmed", batch)
}

func (c *ProcurementController) CancelBatchExport(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	batch, err := c.Exports.Cancel(ctx.UserContext(), id, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Batch export cancelled", batch)
}
