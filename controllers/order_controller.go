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

type OrderController struct {
	DB      *gorm.DB
	Service *services.OrderService
}

func NewOrderController(DB *gorm.DB) *OrderController {
	return &OrderController{DB: DB, Service: services.NewOrderService(DB)}
}

func (c *OrderController) GetAllOrders(ctx *fiber.Ctx) error {
	status := models.OrderStatus(strings.ToUpper(ctx.Query("status")))
	orders, err := c.Service.List(ctx.UserContext(), status, ctx.Query("keyword"))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Orders retrieved successfully", orders)
}

func (c *OrderController) GetOrderByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	order, err := c.Service.Get(ctx.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Order found", order)
}

func (c *OrderController) CreateOrder(ctx *fiber.Ctx) error {
	var req dto.OrderRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	order, err := c.Service.Create(ctx.UserContext(), req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Order created successfully", order)
}

func (c *OrderController) UpdateOrder(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.OrderRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	order, err := c.Service.Update(ctx.UserContext(), id, req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Order updated successfully", order)
}

func (c *OrderController) DeleteOrder(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if err := c.Service.Delete(ctx.UserContext(), id, helpers.UserID(ctx)); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Order deleted successfully", nil)
}

func (c *OrderController) AddDetail(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.ExportDetailRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	detail, err := c.Service.AddDetail(ctx.UserContext(), id, req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Livestock added to order", detail)
}

func (c *OrderController) RemoveDetail(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	detailID, err := helpers.ParamID(ctx, "detailId")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if err := c.Service.RemoveDetail(ctx.UserContext(), id, detailID, helpers.UserID(ctx)); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Livestock removed from order", nil)
}

func (c *OrderController) ChangeStatus(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.OrderStatusRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	order, err := c.Service.ChangeStatus(ctx.UserContext(), id, req.Status, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Order status updated successfully", order)
}
