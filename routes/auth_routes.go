package routes

import (
	"livestock-app/controllers"
	"livestock-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(api fiber.Router, db *gorm.DB, auth *middleware.AuthMiddlewareStruct) {
	authController := controllers.NewAuthController(db)

	group := api.Group("/auth")
	group.Post("/login", authController.Login)
	group.Get("/logout", auth.Authenticate, authController.Logout)
	group.Get("/me", auth.Authenticate, authController.Me)
}
