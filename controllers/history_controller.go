package controllers

import (
	"livestock-app/controllers/helpers"
	"livestock-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HistoryController struct {
	DB      *gorm.DB
	Service *services.HistoryService
}

func NewHistoryController(DB *gorm.DB) *HistoryController {
	return &HistoryController{DB: DB, Service: services.NewHistoryService(DB)}
}

// GetHistory ?ref_no=...&type=procurement
func (c *HistoryController) GetHistory(ctx *fiber.Ctx) error {
	histories, err := c.Service.List(ctx.UserContext(), ctx.Query("ref_no"), ctx.Query("type"))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "History retrieved successfully", histories)
}
