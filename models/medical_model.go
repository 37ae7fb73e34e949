package models

import (
	"time"

	"gorm.io/gorm"
)

type Medicine struct {
	gorm.Model
	Name        string       `json:"name" gorm:"size:100;not null;index"`
	Type        MedicineType `json:"type" gorm:"size:20;not null"`
	Description string       `json:"description" gorm:"size:500"`
	CreatedBy   int          `json:"created_by"`
	UpdatedBy   int          `json:"updated_by"`
	DeletedBy   int          `json:"deleted_by"`
}

type Disease struct {
	gorm.Model
	Name             string            `json:"name" gorm:"size:100;not null;index"`
	Symptom          string            `json:"symptom" gorm:"size:500"`
	Description      string            `json:"description" gorm:"size:1000"`
	DiseaseMedicines []DiseaseMedicine `json:"medicines" gorm:"foreignKey:DiseaseID;constraint:OnDelete:CASCADE"`
	CreatedBy        int               `json:"created_by"`
	UpdatedBy        int               `json:"updated_by"`
	DeletedBy        int               `json:"deleted_by"`
}

type DiseaseMedicine struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	DiseaseID   uint      `json:"disease_id" gorm:"not null;index"`
	MedicineID  uint      `json:"medicine_id" gorm:"not null;index"`
	Medicine    *Medicine `json:"medicine,omitempty" gorm:"foreignKey:MedicineID"`
	Description string    `json:"description" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   int       `json:"created_by"`
}

type VaccinationBatch struct {
	gorm.Model
	Name        string                 `json:"name" gorm:"size:100;not null"`
	MedicineID  uint                   `json:"medicine_id" gorm:"not null;index"`
	Medicine    *Medicine              `json:"medicine,omitempty" gorm:"foreignKey:MedicineID"`
	DiseaseID   *uint                  `json:"disease_id"`
	Disease     *Disease               `json:"disease,omitempty" gorm:"foreignKey:DiseaseID"`
	Description string                 `json:"description" gorm:"size:500"`
	Conductor   string                 `json:"conductor" gorm:"size:100"`
	Status      VaccinationStatus      `json:"status" gorm:"size:20;not null;index"`
	ScheduledAt time.Time              `json:"scheduled_at"`
	StartedAt   *time.Time             `json:"started_at"`
	CompletedAt *time.Time             `json:"completed_at"`
	CancelledAt *time.Time             `json:"cancelled_at"`
	Details     []LivestockVaccination `json:"details" gorm:"foreignKey:VaccinationBatchID;constraint:OnDelete:CASCADE"`
	CreatedBy   int                    `json:"created_by"`
	UpdatedBy   int                    `json:"updated_by"`
	DeletedBy   int                    `json:"deleted_by"`
}

type LivestockVaccination struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	VaccinationBatchID uint       `json:"vaccination_batch_id" gorm:"not null;index"`
	LivestockID        uint       `json:"livestock_id" gorm:"not null;index"`
	Livestock          *Livestock `json:"livestock,omitempty" gorm:"foreignKey:LivestockID"`
	VaccinatedAt       *time.Time `json:"vaccinated_at"`
	CreatedAt          time.Time  `json:"created_at"`
	CreatedBy          int        `json:"created_by"`
}
