package routes

import (
	"livestock-app/controllers"
	"livestock-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupMasterRoutes(api fiber.Router, db *gorm.DB, auth *middleware.AuthMiddlewareStruct) {
	barnController := controllers.NewBarnController(db)
	medicalController := controllers.NewMedicalController(db)

	barns := api.Group("/barns", auth.Authenticate)
	barns.Get("/", auth.CheckPermission("barn.view"), barnController.GetAllBarns)
	barns.Get("/:id", auth.CheckPermission("barn.view"), barnController.GetBarnByID)
	barns.Post("/", auth.CheckPermission("barn.manage"), barnController.CreateBarn)
	barns.Put("/:id", auth.CheckPermission("barn.manage"), barnController.UpdateBarn)
	barns.Delete("/:id", auth.CheckPermission("barn.manage"), barnController.DeleteBarn)

	species := api.Group("/species", auth.Authenticate)
	species.Get("/", auth.CheckPermission("species.view"), barnController.GetAllSpecies)
	species.Get("/:id", auth.CheckPermission("species.view"), barnController.GetSpeciesByID)
	species.Post("/", auth.CheckPermission("species.manage"), barnController.CreateSpecies)
	species.Put("/:id", auth.CheckPermission("species.manage"), barnController.UpdateSpecies)
	species.Delete("/:id", auth.CheckPermission("species.manage"), barnController.DeleteSpecies)

	medicines := api.Group("/medicines", auth.Authenticate)
	medicines.Get("/", auth.CheckPermission("medical.view"), medicalController.GetAllMedicines)
	medicines.Get("/:id", auth.CheckPermission("medical.view"), medicalController.GetMedicineByID)
	medicines.Post("/", auth.CheckPermission("medical.manage"), medicalController.CreateMedicine)
	medicines.Put("/:id", auth.CheckPermission("medical.manage"), medicalController.UpdateMedicine)
	medicines.Delete("/:id", auth.CheckPermission("medical.manage"), medicalController.DeleteMedicine)

	diseases := api.Group("/diseases", auth.Authenticate)
	diseases.Get("/", auth.CheckPermission("medical.view"), medicalController.GetAllDiseases)
	diseases.Get("/:id", auth.CheckPermission("medical.view"), medicalController.GetDiseaseByID)
	diseases.Post("/", auth.CheckPermission("medical.manage"), medicalController.CreateDisease)
	diseases.Put("/:id", auth.CheckPermission("medical.manage"), medicalController.UpdateDisease)
	diseases.Delete("/:id", auth.CheckPermission("medical.manage"), medicalController.DeleteDisease)
	diseases.Post("/:id/medicines", auth.CheckPermission("medical.manage"), medicalController.AddMedicine)
	diseases.Delete("/:id/medicines/:medicineId", auth.CheckPermission("medical.manage"), medicalController.RemoveMedicine)
}
