package models

import (
	"livestock-app/controllers/idgen"
	"livestock-app/types"
	"time"

	"gorm.io/gorm"
)

const (
	HistoryTypeProcurement = "procurement"
	HistoryTypeBatchExport = "batch_export"
	HistoryTypeOrder       = "order"
	HistoryTypeInsurance   = "insurance"
	HistoryTypeBatchImport = "batch_import"
	HistoryTypeVaccination = "vaccination"
	HistoryTypeLivestock   = "livestock"
)

type TransactionHistory struct {
	ID        types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	RefNo     string            `json:"ref_no" gorm:"size:50;index"`
	Status    string            `json:"status" gorm:"size:30"`
	Type      string            `json:"type" gorm:"size:30;index"`
	Detail    string            `json:"detail" gorm:"size:1000"`
	CreatedAt time.Time         `json:"created_at"`
	CreatedBy int               `json:"created_by"`
	UpdatedAt time.Time         `json:"updated_at"`
	UpdatedBy int               `json:"updated_by"`
	DeletedAt gorm.DeletedAt    `json:"-"`
	DeletedBy int               `json:"deleted_by"`
}

func (u *TransactionHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == 0 {
		u.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}
