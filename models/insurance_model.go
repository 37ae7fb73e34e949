package models

import (
	"time"

	"gorm.io/gorm"
)

type InsuranceRequest struct {
	gorm.Model
	Code                 string          `json:"code" gorm:"size:30;uniqueIndex"`
	LivestockID          uint            `json:"livestock_id" gorm:"not null;index"`
	Livestock            *Livestock      `json:"livestock,omitempty" gorm:"foreignKey:LivestockID"`
	DiseaseID            uint            `json:"disease_id" gorm:"not null;index"`
	Disease              *Disease        `json:"disease,omitempty" gorm:"foreignKey:DiseaseID"`
	NewLivestockID       *uint           `json:"new_livestock_id" gorm:"index"`
	NewLivestock         *Livestock      `json:"new_livestock,omitempty" gorm:"foreignKey:NewLivestockID"`
	OrderID              *uint           `json:"order_id" gorm:"index"`
	ProcurementPackageID *uint           `json:"procurement_package_id" gorm:"index"`
	Description          string          `json:"description" gorm:"size:1000"`
	RejectReason         string          `json:"reject_reason" gorm:"size:500"`
	IsLivestockReturn    bool            `json:"is_livestock_return"`
	Status               InsuranceStatus `json:"status" gorm:"size:20;not null;index"`
	ProcessingAt         *time.Time      `json:"processing_at"`
	ApprovedAt           *time.Time      `json:"approved_at"`
	RejectedAt           *time.Time      `json:"rejected_at"`
	CompletedAt          *time.Time      `json:"completed_at"`
	CancelledAt          *time.Time      `json:"cancelled_at"`
	CreatedBy            int             `json:"created_by"`
	UpdatedBy            int             `json:"updated_by"`
	DeletedBy            int             `json:"deleted_by"`
}
