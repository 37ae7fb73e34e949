package dto

import (
	"time"

	"livestock-app/models"
)

type BarnRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Address string `json:"address" validate:"max=255"`
	Image   string `json:"image" validate:"max=255"`
}

type SpeciesRequest struct {
	Name               string  `json:"name" validate:"required,min=2,max=100"`
	Description        string  `json:"description" validate:"max=500"`
	GrowthRate         float64 `json:"growth_rate" validate:"gte=0"`
	DressingPercentage float64 `json:"dressing_percentage" validate:"gte=0,lte=100"`
}

type LivestockRequest struct {
	InspectionCode string                 `json:"inspection_code" validate:"max=50"`
	SpeciesID      uint                   `json:"species_id" validate:"required"`
	BarnID         *uint                  `json:"barn_id"`
	Status         models.LivestockStatus `json:"status" validate:"omitempty,oneof=HEALTHY SICK UNIDENTIFIED"`
	Gender         string                 `json:"gender" validate:"omitempty,oneof=MALE FEMALE"`
	Color          string                 `json:"color" validate:"max=50"`
	Origin         string                 `json:"origin" validate:"max=100"`
	WeightOrigin   float64                `json:"weight_origin" validate:"gte=0"`
	WeightEstimate float64                `json:"weight_estimate" validate:"gte=0"`
	DateOfBirth    *time.Time             `json:"date_of_birth"`
}

type LivestockStatusRequest struct {
	Status models.LivestockStatus `json:"status" validate:"required,oneof=HEALTHY SICK DEAD"`
}

type LivestockFilter struct {
	Keyword    string                   `query:"keyword"`
	SpeciesIDs []uint                   `query:"species_ids"`
	Statuses   []models.LivestockStatus `query:"statuses"`
	BarnID     *uint                    `query:"barn_id"`
	MinWeight  *float64                 `query:"min_weight"`
	MaxWeight  *float64                 `query:"max_weight"`
	Page       int                      `query:"page"`
	PageSize   int                      `query:"page_size"`
}

type MedicineRequest struct {
	Name        string              `json:"name" validate:"required,min=2,max=100"`
	Type        models.MedicineType `json:"type" validate:"required,oneof=VACCINE TREATMENT OTHER"`
	Description string              `json:"description" validate:"max=500"`
}

type DiseaseRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Symptom     string `json:"symptom" validate:"max=500"`
	Description string `json:"description" validate:"max=1000"`
}

type DiseaseMedicineRequest struct {
	MedicineID  uint   `json:"medicine_id" validate:"required"`
	Description string `json:"description" validate:"max=255"`
}

type SupplierRequest struct {
	Code    string `json:"code" validate:"required,max=30"`
	Name    string `json:"name" validate:"required,max=255"`
	Phone   string `json:"phone" validate:"phone"`
	Address string `json:"address" validate:"max=255"`
}
