package services

import (
	"context"
	"fmt"
	"strings"

	"livestock-app/dto"
	"livestock-app/models"

	"gorm.io/gorm"
)

type BarnService struct {
	DB *gorm.DB
}

func NewBarnService(db *gorm.DB) *BarnService {
	return &BarnService{DB: db}
}

func (s *BarnService) nameTaken(db *gorm.DB, name string, excludeID uint) (bool, error) {
	var count int64
	query := db.Model(&models.Barn{}).Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name))
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (s *BarnService) Create(ctx context.Context, req dto.BarnRequest, actor int) (*models.Barn, error) {
	barn := models.Barn{
		Name:      strings.TrimSpace(req.Name),
		Address:   req.Address,
		Image:     req.Image,
		CreatedBy: actor,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.nameTaken(tx, req.Name, 0)
		if err != nil {
			return fmt.Errorf("check barn name: %w", err)
		}
		if taken {
			return Conflict(MsgBarnExists)
		}
		return tx.Create(&barn).Error
	})
	if err != nil {
		return nil, err
	}
	return &barn, nil
}

func (s *BarnService) Update(ctx context.Context, id uint, req dto.BarnRequest, actor int) (*models.Barn, error) {
	var barn models.Barn
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&barn, id).Error; err != nil {
			return notFoundOr(err, MsgBarnNotFound, "find barn")
		}

		taken, err := s.nameTaken(tx, req.Name, id)
		if err != nil {
			return fmt.Errorf("check barn name: %w", err)
		}
		if taken {
			return Conflict(MsgBarnExists)
		}

		barn.Name = strings.TrimSpace(req.Name)
		barn.Address = req.Address
		barn.Image = req.Image
		barn.UpdatedBy = actor
		return tx.Save(&barn).Error
	})
	if err != nil {
		return nil, err
	}
	return &barn, nil
}

func (s *BarnService) Get(ctx context.Context, id uint) (*models.Barn, error) {
	var barn models.Barn
	if err := s.DB.WithContext(ctx).First(&barn, id).Error; err != nil {
		return nil, notFoundOr(err, MsgBarnNotFound, "find barn")
	}
	return &barn, nil
}

func (s *BarnService) List(ctx context.Context, keyword string) ([]models.Barn, error) {
	barns := []models.Barn{}
	query := s.DB.WithContext(ctx).Model(&models.Barn{})
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", like, like)
	}
	if err := query.Order("name").Find(&barns).Error; err != nil {
		return nil, fmt.Errorf("list barns: %w", err)
	}
	return barns, nil
}

// inUse checks livestock kept in the barn, batch imports into it and export records of its livestock.
func (s *BarnService) inUse(tx *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := tx.Model(&models.Livestock{}).Where("barn_id = ?", id).Count(&count).Error; err != nil || count > 0 {
		return count > 0, err
	}
	if err := tx.Model(&models.BatchImport{}).Where("barn_id = ?", id).Count(&count).Error; err != nil || count > 0 {
		return count > 0, err
	}
	err := tx.Model(&models.BatchExportDetail{}).
		Joins("JOIN livestocks ON livestocks.id = batch_export_details.livestock_id").
		Where("livestocks.barn_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (s *BarnService) Delete(ctx context.Context, id uint, actor int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var barn models.Barn
		if err := tx.First(&barn, id).Error; err != nil {
			return notFoundOr(err, MsgBarnNotFound, "find barn")
		}

		used, err := s.inUse(tx, id)
		if err != nil {
			return fmt.Errorf("check barn usage: %w", err)
		}
		if used {
			return BadRequest(MsgBarnInUse)
		}

		if err := tx.Model(&barn).Update("deleted_by", actor).Error; err != nil {
			return err
		}
		return tx.Delete(&barn).Error
	})
}
