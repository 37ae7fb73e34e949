package dto

import (
	"time"

	"livestock-app/models"

	"github.com/shopspring/decimal"
)

type VaccinationBatchRequest struct {
	Name        string    `json:"name" validate:"required,max=100"`
	MedicineID  uint      `json:"medicine_id" validate:"required"`
	DiseaseID   *uint     `json:"disease_id"`
	Description string    `json:"description" validate:"max=500"`
	Conductor   string    `json:"conductor" validate:"max=100"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

type LivestockIDsRequest struct {
	LivestockIDs []uint `json:"livestock_ids" validate:"required,min=1"`
}

type VaccinationStatusRequest struct {
	Status models.VaccinationStatus `json:"status" validate:"required,oneof=IN_PROGRESS COMPLETED CANCELLED"`
}

type BatchImportRequest struct {
	Name                   string     `json:"name" validate:"required,max=100"`
	BarnID                 uint       `json:"barn_id" validate:"required"`
	SupplierID             *uint      `json:"supplier_id"`
	EstimatedQuantity      int        `json:"estimated_quantity" validate:"gte=0"`
	ExpectedCompletionDate *time.Time `json:"expected_completion_date"`
	Description            string     `json:"description" validate:"max=500"`
}

type ImportLivestockRequest struct {
	InspectionCode string     `json:"inspection_code" validate:"max=50"`
	SpeciesID      uint       `json:"species_id" validate:"required"`
	Gender         string     `json:"gender" validate:"omitempty,oneof=MALE FEMALE"`
	Color          string     `json:"color" validate:"max=50"`
	Weight         float64    `json:"weight" validate:"gte=0"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	ImportedDate   *time.Time `json:"imported_date"`
}

type BatchImportStatusRequest struct {
	Status models.BatchImportStatus `json:"status" validate:"required,oneof=IMPORTING COMPLETED CANCELLED"`
}

type ProcurementDetailRequest struct {
	SpeciesID             uint    `json:"species_id" validate:"required"`
	RequiredQuantity      int     `json:"required_quantity" validate:"gt=0"`
	RequiredWeightMin     float64 `json:"required_weight_min" validate:"gte=0"`
	RequiredWeightMax     float64 `json:"required_weight_max" validate:"gte=0"`
	RequiredAgeMin        int     `json:"required_age_min" validate:"gte=0"`
	RequiredAgeMax        int     `json:"required_age_max" validate:"gte=0"`
	RequiredInsuranceDays int     `json:"required_insurance_days" validate:"gte=0"`
	Description           string  `json:"description" validate:"max=500"`
}

type ProcurementRequest struct {
	Name            string                     `json:"name" validate:"required,max=255"`
	Owner           string                     `json:"owner" validate:"max=255"`
	Description     string                     `json:"description" validate:"max=1000"`
	ExpiredDuration int                        `json:"expired_duration" validate:"gte=0"`
	Details         []ProcurementDetailRequest `json:"details" validate:"required,min=1,dive"`
}

type AcceptProcurementRequest struct {
	CustomerName    string `json:"customer_name" validate:"max=255"`
	CustomerPhone   string `json:"customer_phone" validate:"phone"`
	CustomerAddress string `json:"customer_address" validate:"max=255"`
}

type ExportDetailRequest struct {
	LivestockID  uint            `json:"livestock_id" validate:"required"`
	PriceUnit    decimal.Decimal `json:"price_unit"`
	WeightExport float64         `json:"weight_export" validate:"gte=0"`
}

type HandoverRequest struct {
	DetailIDs    []uint     `json:"detail_ids"`
	HandoverDate *time.Time `json:"handover_date"`
}

type OrderRequirementRequest struct {
	SpeciesID   uint    `json:"species_id" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	WeightFrom  float64 `json:"weight_from" validate:"gte=0"`
	WeightTo    float64 `json:"weight_to" validate:"gte=0"`
	Description string  `json:"description" validate:"max=500"`
}

type OrderRequest struct {
	CustomerName  string                    `json:"customer_name" validate:"required,max=255"`
	Phone         string                    `json:"phone" validate:"phone"`
	Email         string                    `json:"email" validate:"omitempty,email"`
	Address       string                    `json:"address" validate:"max=255"`
	InsuranceDays int                       `json:"insurance_days" validate:"gte=0"`
	Requirements  []OrderRequirementRequest `json:"requirements" validate:"required,min=1,dive"`
}

type OrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,oneof=PREPARING DELIVERING COMPLETED CANCELLED"`
}

type InsuranceRequestCreate struct {
	LivestockID       uint   `json:"livestock_id" validate:"required"`
	DiseaseID         uint   `json:"disease_id" validate:"required"`
	Description       string `json:"description" validate:"max=1000"`
	IsLivestockReturn bool   `json:"is_livestock_return"`
}

type InsuranceStatusRequest struct {
	Status         models.InsuranceStatus `json:"status" validate:"required,oneof=PROCESSING APPROVED REJECTED COMPLETED CANCELLED"`
	RejectReason   string                 `json:"reject_reason" validate:"max=500"`
	NewLivestockID *uint                  `json:"new_livestock_id"`
}
