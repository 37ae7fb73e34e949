package supplier

import (
	"gorm.io/gorm"
)

type Supplier struct {
	gorm.Model
	Code      string `json:"code" gorm:"size:30;uniqueIndex"`
	Name      string `json:"name" gorm:"size:255;not null"`
	Phone     string `json:"phone" gorm:"size:20"`
	Address   string `json:"address" gorm:"size:255"`
	CreatedBy int    `json:"created_by"`
	UpdatedBy int    `json:"updated_by"`
	DeletedBy int    `json:"deleted_by"`
}

// Exists is used by batch imports to validate their supplier reference.
func Exists(db *gorm.DB, id uint) (*Supplier, error) {
	var s Supplier
	if err := db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
