package routes

import (
	"livestock-app/controllers"
	"livestock-app/middleware"
	"livestock-app/notification"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupSalesRoutes covers livestock leaving the farm: tenders, orders and insurance.
func SetupSalesRoutes(api fiber.Router, db *gorm.DB, auth *middleware.AuthMiddlewareStruct, notifier notification.Notifier) {
	procurementController := controllers.NewProcurementController(db)
	orderController := controllers.NewOrderController(db)
	insuranceController := controllers.NewInsuranceController(db, notifier)

	packages := api.Group("/procurements", auth.Authenticate)
	packages.Get("/", auth.CheckPermission("procurement.view"), procurementController.GetAllPackages)
	packages.Get("/:id", auth.CheckPermission("procurement.view"), procurementController.GetPackageByID)
	packages.Get("/:id/export", auth.CheckPermission("procurement.view"), procurementController.ExportExcel)
	packages.Get("/:id/batch-exports", auth.CheckPermission("export.view"), procurementController.GetBatchExports)
	packages.Post("/", auth.CheckPermission("procurement.manage"), procurementController.CreatePackage)
	packages.Put("/:id", auth.CheckPermission("procurement.manage"), procurementController.UpdatePackage)
	packages.Delete("/:id", auth.CheckPermission("procurement.manage"), procurementController.DeletePackage)
	packages.Post("/:id/accept", auth.CheckPermission("procurement.manage"), procurementController.Accept)
	packages.Post("/:id/reject", auth.CheckPermission("procurement.manage"), procurementController.Reject)
	packages.Post("/:id/cancel", auth.CheckPermission("procurement.manage"), procurementController.Cancel)
	packages.Post("/:id/complete", auth.CheckPermission("procurement.manage"), procurementController.Complete)

	exports := api.Group("/batch-exports", auth.Authenticate)
	exports.Get("/:id", auth.CheckPermission("export.view"), procurementController.GetBatchExportByID)
	exports.Post("/:id/details", auth.CheckPermission("export.manage"), procurementController.AddExportDetail)
	exports.Delete("/details/:detailId", auth.CheckPermission("export.manage"), procurementController.RemoveExportDetail)
	exports.Post("/:id/handover", auth.CheckPermission("export.manage"), procurementController.ConfirmHandover)
	exports.Post("/:id/cancel", auth.CheckPermission("export.manage"), procurementController.CancelBatchExport)

	orders := api.Group("/orders", auth.Authenticate)
	orders.Get("/", auth.CheckPermission("order.view"), orderController.GetAllOrders)
	orders.Get("/:id", auth.CheckPermission("order.view"), orderController.GetOrderByID)
	orders.Post("/", auth.CheckPermission("order.manage"), orderController.CreateOrder)
	orders.Put("/:id", auth.CheckPermission("order.manage"), orderController.UpdateOrder)
	orders.Delete("/:id", auth.CheckPermission("order.manage"), orderController.DeleteOrder)
	orders.Post("/:id/details", auth.CheckPermission("order.manage"), orderController.AddDetail)
	orders.Delete("/:id/details/:detailId", auth.CheckPermission("order.manage"), orderController.RemoveDetail)
	orders.Put("/:id/change-status", auth.CheckPermission("order.manage"), orderController.ChangeStatus)

	insurance := api.Group("/insurance-requests", auth.Authenticate)
	insurance.Get("/", auth.CheckPermission("insurance.view"), insuranceController.GetAllRequests)
	insurance.Get("/:id", auth.CheckPermission("insurance.view"), insuranceController.GetRequestByID)
	insurance.Post("/", auth.CheckPermission("insurance.manage"), insuranceController.CreateRequest)
	insurance.Put("/:id/change-status", auth.CheckPermission("insurance.manage"), insuranceController.ChangeStatus)
}
