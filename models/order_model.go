package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Code          string             `json:"code" gorm:"size:30;uniqueIndex"`
	CustomerName  string             `json:"customer_name" gorm:"size:255;not null"`
	Phone         string             `json:"phone" gorm:"size:20"`
	Email         string             `json:"email" gorm:"size:100"`
	Address       string             `json:"address" gorm:"size:255"`
	InsuranceDays int                `json:"insurance_days"`
	Status        OrderStatus        `json:"status" gorm:"size:20;not null;index"`
	PreparedAt    *time.Time         `json:"prepared_at"`
	DeliveredAt   *time.Time         `json:"delivered_at"`
	CompletedAt   *time.Time         `json:"completed_at"`
	CancelledAt   *time.Time         `json:"cancelled_at"`
	Requirements  []OrderRequirement `json:"requirements" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Details       []OrderDetail      `json:"details" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedBy     int                `json:"created_by"`
	UpdatedBy     int                `json:"updated_by"`
	DeletedBy     int                `json:"deleted_by"`
}

type OrderRequirement struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	OrderID     uint     `json:"order_id" gorm:"not null;index"`
	SpeciesID   uint     `json:"species_id" gorm:"not null;index"`
	Species     *Species `json:"species,omitempty" gorm:"foreignKey:SpeciesID"`
	Quantity    int      `json:"quantity"`
	WeightFrom  float64  `json:"weight_from"`
	WeightTo    float64  `json:"weight_to"`
	Description string   `json:"description" gorm:"size:500"`
}

type OrderDetail struct {
	gorm.Model
	OrderID              uint               `json:"order_id" gorm:"not null;index"`
	OrderRequirementID   uint               `json:"order_requirement_id" gorm:"not null;index"`
	LivestockID          uint               `json:"livestock_id" gorm:"not null;index"`
	Livestock            *Livestock         `json:"livestock,omitempty" gorm:"foreignKey:LivestockID"`
	PriceUnit            decimal.Decimal    `json:"price_unit" gorm:"type:decimal(20,4);default:0"`
	WeightExport         float64            `json:"weight_export"`
	ExportDate           *time.Time         `json:"export_date"`
	ExpiredInsuranceDate *time.Time         `json:"expired_insurance_date"`
	Status               ExportDetailStatus `json:"status" gorm:"size:20;not null;index"`
	CreatedBy            int                `json:"created_by"`
	UpdatedBy            int                `json:"updated_by"`
	DeletedBy            int                `json:"deleted_by"`
}
