package models

import (
	"time"

	"gorm.io/gorm"
)

type BatchImport struct {
	gorm.Model
	Name                   string              `json:"name" gorm:"size:100;not null"`
	BarnID                 uint                `json:"barn_id" gorm:"not null;index"`
	Barn                   *Barn               `json:"barn,omitempty" gorm:"foreignKey:BarnID"`
	SupplierID             *uint               `json:"supplier_id" gorm:"index"`
	EstimatedQuantity      int                 `json:"estimated_quantity"`
	ImportedQuantity       int                 `json:"imported_quantity"`
	Status                 BatchImportStatus   `json:"status" gorm:"size:20;not null;index"`
	ExpectedCompletionDate *time.Time          `json:"expected_completion_date"`
	StartedAt              *time.Time          `json:"started_at"`
	CompletedAt            *time.Time          `json:"completed_at"`
	CancelledAt            *time.Time          `json:"cancelled_at"`
	Description            string              `json:"description" gorm:"size:500"`
	Details                []BatchImportDetail `json:"details" gorm:"foreignKey:BatchImportID;constraint:OnDelete:CASCADE"`
	CreatedBy              int                 `json:"created_by"`
	UpdatedBy              int                 `json:"updated_by"`
	DeletedBy              int                 `json:"deleted_by"`
}

type BatchImportDetail struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	BatchImportID uint       `json:"batch_import_id" gorm:"not null;index"`
	LivestockID   uint       `json:"livestock_id" gorm:"not null;index"`
	Livestock     *Livestock `json:"livestock,omitempty" gorm:"foreignKey:LivestockID"`
	ImportedDate  time.Time  `json:"imported_date"`
	CreatedAt     time.Time  `json:"created_at"`
	CreatedBy     int        `json:"created_by"`
}
