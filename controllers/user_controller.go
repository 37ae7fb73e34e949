package controllers

import (
	"livestock-app/controllers/helpers"
	"livestock-app/dto"
	"livestock-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB    *gorm.DB
	Users *services.UserService
	Roles *services.RoleService
}

func NewUserController(DB *gorm.DB) *UserController {
	return &UserController{DB: DB, Users: services.NewUserService(DB), Roles: services.NewRoleService(DB)}
}

func (c *UserController) GetAllUsers(ctx *fiber.Ctx) error {
	users, err := c.Users.List(ctx.UserContext())
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Users retrieved successfully", users)
}

func (c *UserController) GetUserByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	user, err := c.Users.Get(ctx.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "User found", user)
}

func (c *UserController) CreateUser(ctx *fiber.Ctx) error {
	var req dto.UserRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	user, err := c.Users.Create(ctx.UserContext(), req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "User created successfully", user)
}

func (c *UserController) UpdateUser(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.UserRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	user, err := c.Users.Update(ctx.UserContext(), id, req, helpers.UserID(ctx))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "User updated successfully", user)
}

func (c *UserController) DeleteUser(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if int(id) == helpers.UserID(ctx) {
		return helpers.BadRequest(ctx, "Không thể xóa tài khoản đang đăng nhập")
	}
	if err := c.Users.Delete(ctx.UserContext(), id, helpers.UserID(ctx)); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "User deleted successfully", nil)
}

func (c *UserController) GetAllRoles(ctx *fiber.Ctx) error {
	roles, err := c.Roles.List(ctx.UserContext())
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Roles retrieved successfully", roles)
}

func (c *UserController) GetRoleByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	role, err := c.Roles.Get(ctx.UserContext(), id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Role found", role)
}

func (c *UserController) CreateRole(ctx *fiber.Ctx) error {
	var req dto.RoleRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	role, err := c.Roles.Create(ctx.UserContext(), req)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Role created successfully", role)
}

func (c *UserController) UpdateRole(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.RoleRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	role, err := c.Roles.Update(ctx.UserContext(), id, req)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Role updated successfully", role)
}

func (c *UserController) DeleteRole(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if err := c.Roles.Delete(ctx.UserContext(), id); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Role deleted successfully", nil)
}

func (c *UserController) UpdateRolePermissions(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	var req dto.RolePermissionsRequest
	if err := bind(ctx, &req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	role, err := c.Roles.ReplacePermissions(ctx.UserContext(), id, req)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Role permissions updated successfully", role)
}

func (c *UserController) GetAllPermissions(ctx *fiber.Ctx) error {
	permissions, err := c.Roles.ListPermissions(ctx.UserContext())
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Permissions retrieved successfully", permissions)
}
