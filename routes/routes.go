package routes

import (
	"livestock-app/config"
	"livestock-app/farm/master/supplier"
	"livestock-app/middleware"
	"livestock-app/notification"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes mendaftarkan semua route di bawah MAIN_ROUTES
func SetupRoutes(app *fiber.App, db *gorm.DB, notifier notification.Notifier) {
	auth := middleware.NewAuthMiddleware(db)
	api := app.Group(config.MAIN_ROUTES)

	SetupAuthRoutes(api, db, auth)
	SetupMasterRoutes(api, db, auth)
	SetupLivestockRoutes(api, db, auth)
	SetupOperationRoutes(api, db, auth)
	SetupSalesRoutes(api, db, auth, notifier)
	SetupUserRoutes(api, db, auth)
	supplier.SetupSupplierRoutes(api, db, auth)
}
