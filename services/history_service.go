package services

import (
	"context"
	"fmt"

	"livestock-app/models"

	"gorm.io/gorm"
)

type HistoryService struct {
	DB *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{DB: db}
}

// List returns the status trail of a document, oldest first.
func (s *HistoryService) List(ctx context.Context, refNo, historyType string) ([]models.TransactionHistory, error) {
	histories := []models.TransactionHistory{}
	query := s.DB.WithContext(ctx)
	if refNo != "" {
		query = query.Where("ref_no = ?", refNo)
	}
	if historyType != "" {
		query = query.Where("type = ?", historyType)
	}
	if err := query.Order("created_at, id").Limit(500).Find(&histories).Error; err != nil {
		return nil, fmt.Errorf("list histories: %w", err)
	}
	return histories, nil
}
