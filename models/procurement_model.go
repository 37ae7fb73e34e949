package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProcurementPackage struct {
	gorm.Model
	Code        string `json:"code" gorm:"size:30;uniqueIndex"`
	Name        string `json:"name" gorm:"size:255;not null"`
	Owner       string `json:"owner" gorm:"size:255"`
	Description string `json:"description" gorm:"size:1000"`
	// Days between winning the bid and the handover deadline.
	ExpiredDuration   int                 `json:"expired_duration"`
	Status            ProcurementStatus   `json:"status" gorm:"size:20;not null;index"`
	SuccessDate       *time.Time          `json:"success_date"`
	ExpirationDate    *time.Time          `json:"expiration_date"`
	HandoverStartedAt *time.Time          `json:"handover_started_at"`
	CompletionDate    *time.Time          `json:"completion_date"`
	CancelledAt       *time.Time          `json:"cancelled_at"`
	RejectedAt        *time.Time          `json:"rejected_at"`
	Details           []ProcurementDetail `json:"details" gorm:"foreignKey:ProcurementPackageID;constraint:OnDelete:CASCADE"`
	BatchExports      []BatchExport       `json:"batch_exports" gorm:"foreignKey:ProcurementPackageID"`
	CreatedBy         int                 `json:"created_by"`
	UpdatedBy         int                 `json:"updated_by"`
	DeletedBy         int                 `json:"deleted_by"`
}

type ProcurementDetail struct {
	ID                    uint     `json:"id" gorm:"primaryKey"`
	ProcurementPackageID  uint     `json:"procurement_package_id" gorm:"not null;index"`
	SpeciesID             uint     `json:"species_id" gorm:"not null;index"`
	Species               *Species `json:"species,omitempty" gorm:"foreignKey:SpeciesID"`
	RequiredQuantity      int      `json:"required_quantity"`
	RequiredWeightMin     float64  `json:"required_weight_min"`
	RequiredWeightMax     float64  `json:"required_weight_max"`
	RequiredAgeMin        int      `json:"required_age_min"`
	RequiredAgeMax        int      `json:"required_age_max"`
	RequiredInsuranceDays int      `json:"required_insurance_days"`
	Description           string   `json:"description" gorm:"size:500"`
}

type BatchExport struct {
	gorm.Model
	ProcurementPackageID uint                `json:"procurement_package_id" gorm:"not null;index"`
	CustomerName         string              `json:"customer_name" gorm:"size:255"`
	CustomerPhone        string              `json:"customer_phone" gorm:"size:20"`
	CustomerAddress      string              `json:"customer_address" gorm:"size:255"`
	Total                int                 `json:"total"`
	Remaining            int                 `json:"remaining"`
	Status               BatchExportStatus   `json:"status" gorm:"size:20;not null;index"`
	CompletedAt          *time.Time          `json:"completed_at"`
	CancelledAt          *time.Time          `json:"cancelled_at"`
	Details              []BatchExportDetail `json:"details" gorm:"foreignKey:BatchExportID;constraint:OnDelete:CASCADE"`
	CreatedBy            int                 `json:"created_by"`
	UpdatedBy            int                 `json:"updated_by"`
	DeletedBy            int                 `json:"deleted_by"`
}

type BatchExportDetail struct {
	gorm.Model
	BatchExportID        uint               `json:"batch_export_id" gorm:"not null;index"`
	LivestockID          uint               `json:"livestock_id" gorm:"not null;index"`
	Livestock            *Livestock         `json:"livestock,omitempty" gorm:"foreignKey:LivestockID"`
	PriceUnit            decimal.Decimal    `json:"price_unit" gorm:"type:decimal(20,4);default:0"`
	WeightExport         float64            `json:"weight_export"`
	ExportDate           *time.Time         `json:"export_date"`
	HandoverDate         *time.Time         `json:"handover_date"`
	ExpiredInsuranceDate *time.Time         `json:"expired_insurance_date"`
	Status               ExportDetailStatus `json:"status" gorm:"size:20;not null;index"`
	CreatedBy            int                `json:"created_by"`
	UpdatedBy            int                `json:"updated_by"`
	DeletedBy            int                `json:"deleted_by"`
}
