package controllers

import (
	"livestock-app/controllers/helpers"
	"livestock-app/dto"
	"livestock-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BarnController struct {
	DB      *gorm.DB
	Barns   *services.BarnService
	Species *services.SpecieService
}

func NewBarnController(DB *gorm.DB) *BarnController {
	return &BarnController{
		DB:      DB,
		Barns:   services.NewBarnService(DB),
		Species: services.NewSpecieService(DB),
	}
}

func (c *BarnController) GetAllBarns(ctx *fiber.Ctx) error {
	barns, err := c.Barns.List(ctx.UserContext(), ctx.Query("keyword"))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Barns retrieved successfully", barns)
}

func (c *BarnController) GetBarnByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	barn, err := c.Barns.Get(ctx.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Barn found", barn)
}

func (c *BarnController) CreateBarn(ctx *fiber.Ctx) error {
	var req dto.BarnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return helpers.BadRequest(ctx, err.Error())
	}
	if err := dto.Validate(req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}

	barn, err := c.Barns.Create(ctx.UserContext(), req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Barn created successfully", barn)
}

func (c *BarnController) UpdateBarn(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.BarnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return helpers.BadRequest(ctx, err.Error())
	}
	if err := dto.Validate(req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}

	barn, err := c.Barns.Update(ctx.UserContext(), id, req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Barn updated successfully", barn)
}

func (c *BarnController) DeleteBarn(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if err := c.Barns.Delete(ctx.UserContext(), id, helpers.UserID(ctx)); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Barn deleted successfully", nil)
}

func (c *BarnController) GetAllSpecies(ctx *fiber.Ctx) error {
	species, err := c.Species.List(ctx.UserContext(), ctx.Query("keyword"))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Species retrieved successfully", species)
}

func (c *BarnController) GetSpeciesByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	species, err := c.Species.Get(ctx.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Species found", species)
}

func (c *BarnController) CreateSpecies(ctx *fiber.Ctx) error {
	var req dto.SpeciesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return helpers.BadRequest(ctx, err.Error())
	}
	if err := dto.Validate(req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}

	species, err := c.Species.Create(ctx.UserContext(), req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Species created successfully", species)
}

func (c *BarnController) UpdateSpecies(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.SpeciesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return helpers.BadRequest(ctx, err.Error())
	}
	if err := dto.Validate(req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}

	species, err := c.Species.Update(ctx.UserContext(), id, req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Species updated successfully", species)
}

func (c *BarnController) DeleteSpecies(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if err := c.Species.Delete(ctx.UserContext(), id, helpers.UserID(ctx)); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Species deleted successfully", nil)
}
