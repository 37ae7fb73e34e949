package supplier

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SeedSupplier(db *gorm.DB) {
	suppliers := []Supplier{
		{Code: "INTERNAL", Name: "Trang trại nội bộ", Address: "Sinh sản tại trang trại"},
	}

	for _, s := range suppliers {
		var existing Supplier
		err := db.Where("code = ?", s.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&s).Error; err != nil {
				zap.L().Warn("seed supplier failed", zap.String("code", s.Code), zap.Error(err))
			}
		}
	}
}
