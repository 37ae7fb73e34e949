package routes

import (
	"livestock-app/controllers"
	"livestock-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(api fiber.Router, db *gorm.DB, auth *middleware.AuthMiddlewareStruct) {
	userController := controllers.NewUserController(db)

	users := api.Group("/users", auth.Authenticate)
	users.Get("/", auth.CheckPermission("user.view"), userController.GetAllUsers)
	users.Get("/:id", auth.CheckPermission("user.view"), userController.GetUserByID)
	users.Post("/", auth.CheckPermission("user.manage"), userController.CreateUser)
	users.Put("/:id", auth.CheckPermission("user.manage"), userController.UpdateUser)
	users.Delete("/:id", auth.CheckPermission("user.manage"), userController.DeleteUser)

	roles := api.Group("/roles", auth.Authenticate)
	roles.Get("/", auth.CheckPermission("role.view"), userController.GetAllRoles)
	roles.Get("/permissions", auth.CheckPermission("role.view"), userController.GetAllPermissions)
	roles.Get("/:id", auth.CheckPermission("role.view"), userController.GetRoleByID)
	roles.Post("/", auth.CheckPermission("role.manage"), userController.CreateRole)
	roles.Put("/:id", auth.CheckPermission("role.manage"), userController.UpdateRole)
	roles.Put("/:id/permissions", auth.CheckPermission("role.manage"), userController.UpdateRolePermissions)
	roles.Delete("/:id", auth.CheckPermission("role.manage"), userController.DeleteRole)
}
