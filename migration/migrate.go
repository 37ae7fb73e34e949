package migration

import (
	"livestock-app/farm/master/supplier"
	"livestock-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.UserSession{},
		&models.Barn{},
		&models.Species{},
		&supplier.Supplier{},
		&models.Livestock{},
		&models.Medicine{},
		&models.Disease{},
		&models.DiseaseMedicine{},
		&models.VaccinationBatch{},
		&models.LivestockVaccination{},
		&models.BatchImport{},
		&models.BatchImportDetail{},
		&models.ProcurementPackage{},
		&models.ProcurementDetail{},
		&models.BatchExport{},
		&models.BatchExportDetail{},
		&models.Order{},
		&models.OrderRequirement{},
		&models.OrderDetail{},
		&models.InsuranceRequest{},
		&models.TransactionHistory{},
	)
}
