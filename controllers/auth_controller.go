package controllers

import (
	"livestock-app/config"
	"livestock-app/controllers/helpers"
	"livestock-app/dto"
	"livestock-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	DB      *gorm.DB
	Service *services.AuthService
}

func NewAuthController(DB *gorm.DB) *AuthController {
	return &AuthController{DB: DB, Service: services.NewAuthService(DB)}
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input dto.LoginRequest
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadRequest(ctx, "Invalid request")
	}
	if err := dto.Validate(input); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}

	result, err := c.Service.Login(ctx.UserContext(), input.Email, input.Password, ctx.IP(), ctx.Get(fiber.HeaderUserAgent))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}

	ctx.Cookie(config.GetTokenCookie(result.Token))
	return helpers.Success(ctx, fiber.StatusOK, "Login successful", result)
}

func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	sessionID, ok := ctx.Locals("sessionID").(string)
	if !ok || sessionID == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "invalid session",
		})
	}

	if err := c.Service.Logout(ctx.UserContext(), sessionID); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}

	// Hapus token dari cookie
	ctx.Cookie(config.GetTokenCookie(""))
	return helpers.Success(ctx, fiber.StatusOK, "Logout successful", nil)
}

// Me mengembalikan profil user yang sedang login beserta permission dari token
func (c *AuthController) Me(ctx *fiber.Ctx) error {
	user, err := c.Service.Users.Get(ctx.UserContext(), uint(helpers.UserID(ctx)))
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Profile retrieved successfully", fiber.Map{
		"user":        user,
		"permissions": ctx.Locals("permissions"),
	})
}
