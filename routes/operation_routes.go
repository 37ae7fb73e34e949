package routes

import (
	"livestock-app/controllers"
	"livestock-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupOperationRoutes covers work done inside the farm: imports and vaccinations.
func SetupOperationRoutes(api fiber.Router, db *gorm.DB, auth *middleware.AuthMiddlewareStruct) {
	importController := controllers.NewBatchImportController(db)
	vaccinationController := controllers.NewVaccinationController(db)
	historyController := controllers.NewHistoryController(db)

	imports := api.Group("/batch-imports", auth.Authenticate)
	imports.Get("/", auth.CheckPermission("import.view"), importController.GetAllBatches)
	imports.Get("/:id", auth.CheckPermission("import.view"), importController.GetBatchByID)
	imports.Post("/", auth.CheckPermission("import.manage"), importController.CreateBatch)
	imports.Post("/:id/livestock", auth.CheckPermission("import.manage"), importController.AddLivestock)
	imports.Put("/:id/change-status", auth.CheckPermission("import.manage"), importController.ChangeStatus)

	vaccinations := api.Group("/vaccinations", auth.Authenticate)
	vaccinations.Get("/", auth.CheckPermission("vaccination.view"), vaccinationController.GetAllBatches)
	vaccinations.Get("/:id", auth.CheckPermission("vaccination.view"), vaccinationController.GetBatchByID)
	vaccinations.Post("/", auth.CheckPermission("vaccination.manage"), vaccinationController.CreateBatch)
	vaccinations.Post("/:id/livestock", auth.CheckPermission("vaccination.manage"), vaccinationController.AddLivestock)
	vaccinations.Delete("/:id/livestock/:livestockId", auth.CheckPermission("vaccination.manage"), vaccinationController.RemoveLivestock)
	vaccinations.Put("/:id/change-status", auth.CheckPermission("vaccination.manage"), vaccinationController.ChangeStatus)

	api.Get("/histories", auth.Authenticate, auth.CheckPermission("history.view"), historyController.GetHistory)
}
