package routes

import (
	"livestock-app/controllers"
	"livestock-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupLivestockRoutes(api fiber.Router, db *gorm.DB, auth *middleware.AuthMiddlewareStruct) {
	livestockController := controllers.NewLivestockController(db)

	group := api.Group("/livestock", auth.Authenticate)
	group.Get("/", auth.CheckPermission("livestock.view"), livestockController.GetAllLivestock)
	group.Get("/summary", auth.CheckPermission("livestock.view"), livestockController.GetSummary)
	group.Get("/export", auth.CheckPermission("livestock.view"), livestockController.ExportExcel)
	group.Post("/import", auth.CheckPermission("livestock.manage"), livestockController.ImportExcel)
	group.Get("/:id", auth.CheckPermission("livestock.view"), livestockController.GetLivestockByID)
	group.Post("/", auth.CheckPermission("livestock.manage"), livestockController.CreateLivestock)
	group.Put("/:id", auth.CheckPermission("livestock.manage"), livestockController.UpdateLivestock)
	group.Put("/:id/change-status", auth.CheckPermission("livestock.manage"), livestockController.ChangeStatus)
	group.Delete("/:id", auth.CheckPermission("livestock.manage"), livestockController.DeleteLivestock)
}
