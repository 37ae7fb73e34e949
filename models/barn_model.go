package models

import "gorm.io/gorm"

type Barn struct {
	gorm.Model
	Name      string `json:"name" gorm:"size:100;not null;index"`
	Address   string `json:"address" gorm:"size:255"`
	Image     string `json:"image" gorm:"size:255"`
	CreatedBy int    `json:"created_by"`
	UpdatedBy int    `json:"updated_by"`
	DeletedBy int    `json:"deleted_by"`
}

type Species struct {
	gorm.Model
	Name        string `json:"name" gorm:"size:100;not null;index"`
	Description string `json:"description" gorm:"size:500"`
	// Growth in kg per day used by the weight update worker, zero means the configured default.
	GrowthRate         float64 `json:"growth_rate"`
	DressingPercentage float64 `json:"dressing_percentage"`
	CreatedBy          int     `json:"created_by"`
	UpdatedBy          int     `json:"updated_by"`
	DeletedBy          int     `json:"deleted_by"`
}

func (Species) TableName() string {
	return "species"
}
