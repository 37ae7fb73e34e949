package supplier

import (
	"livestock-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSupplierRoutes(api fiber.Router, db *gorm.DB, auth *middleware.AuthMiddlewareStruct) {
	handler := NewSupplierHandler(db)
	group := api.Group("/suppliers", auth.Authenticate)

	group.Get("/", auth.CheckPermission("supplier.view"), handler.GetAllSuppliers)
	group.Get("/:id", auth.CheckPermission("supplier.view"), handler.GetSupplierByID)
	group.Post("/", auth.CheckPermission("supplier.manage"), handler.CreateSupplier)
	group.Put("/:id", auth.CheckPermission("supplier.manage"), handler.UpdateSupplier)
	group.Delete("/:id", auth.CheckPermission("supplier.manage"), handler.DeleteSupplier)
}
