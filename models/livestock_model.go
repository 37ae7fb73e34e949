package models

import (
	"time"

	"gorm.io/gorm"
)

type Livestock struct {
	gorm.Model
	InspectionCode  string          `json:"inspection_code" gorm:"size:50;index"`
	SpeciesID       uint            `json:"species_id" gorm:"not null;index"`
	Species         *Species        `json:"species,omitempty" gorm:"foreignKey:SpeciesID"`
	BarnID          *uint           `json:"barn_id" gorm:"index"`
	Barn            *Barn           `json:"barn,omitempty" gorm:"foreignKey:BarnID"`
	Status          LivestockStatus `json:"status" gorm:"size:30;not null;index"`
	Gender          string          `json:"gender" gorm:"size:10"`
	Color           string          `json:"color" gorm:"size:50"`
	Origin          string          `json:"origin" gorm:"size:100"`
	WeightOrigin    float64         `json:"weight_origin"`
	WeightEstimate  float64         `json:"weight_estimate"`
	WeightExport    float64         `json:"weight_export"`
	WeightUpdatedAt *time.Time      `json:"weight_updated_at"`
	DateOfBirth     *time.Time      `json:"date_of_birth"`
	ImportedAt      *time.Time      `json:"imported_at"`
	ExportedAt      *time.Time      `json:"exported_at"`
	DeadAt          *time.Time      `json:"dead_at"`
	CreatedBy       int             `json:"created_by"`
	UpdatedBy       int             `json:"updated_by"`
	DeletedBy       int             `json:"deleted_by"`
}

func (Livestock) TableName() string {
	return "livestocks"
}

// OnFarm reports whether the animal is still physically kept in a barn.
func (l Livestock) OnFarm() bool {
	switch l.Status {
	case LivestockExported, LivestockDead:
		return false
	}
	return true
}
