package services

import (
	"context"
	"fmt"
	"strings"

	"livestock-app/dto"
	"livestock-app/models"

	"gorm.io/gorm"
)

type SpecieService struct {
	DB *gorm.DB
}

func NewSpecieService(db *gorm.DB) *SpecieService {
	return &SpecieService{DB: db}
}

func (s *SpecieService) nameTaken(db *gorm.DB, name string, excludeID uint) (bool, error) {
	var count int64
	query := db.Model(&models.Species{}).Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name))
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (s *SpecieService) Create(ctx context.Context, req dto.SpeciesRequest, actor int) (*models.Species, error) {
	species := models.Species{
		Name:               strings.TrimSpace(req.Name),
		Description:        req.Description,
		GrowthRate:         req.GrowthRate,
		DressingPercentage: req.DressingPercentage,
		CreatedBy:          actor,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.nameTaken(tx, req.Name, 0)
		if err != nil {
			return fmt.Errorf("check species name: %w", err)
		}
		if taken {
			return Conflict(MsgSpeciesExists)
		}
		return tx.Create(&species).Error
	})
	if err != nil {
		return nil, err
	}
	return &species, nil
}

func (s *SpecieService) Update(ctx context.Context, id uint, req dto.SpeciesRequest, actor int) (*models.Species, error) {
	var species models.Species
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&species, id).Error; err != nil {
			return notFoundOr(err, MsgSpeciesMissing, "find species")
		}

		taken, err := s.nameTaken(tx, req.Name, id)
		if err != nil {
			return fmt.Errorf("check species name: %w", err)
		}
		if taken {
			return Conflict(MsgSpeciesExists)
		}

		species.Name = strings.TrimSpace(req.Name)
		species.Description = req.Description
		species.GrowthRate = req.GrowthRate
		species.DressingPercentage = req.DressingPercentage
		species.UpdatedBy = actor
		return tx.Save(&species).Error
	})
	if err != nil {
		return nil, err
	}
	return &species, nil
}

func (s *SpecieService) Get(ctx context.Context, id uint) (*models.Species, error) {
	var species models.Species
	if err := s.DB.WithContext(ctx).First(&species, id).Error; err != nil {
		return nil, notFoundOr(err, MsgSpeciesMissing, "find species")
	}
	return &species, nil
}

func (s *SpecieService) List(ctx context.Context, keyword string) ([]models.Species, error) {
	list := []models.Species{}
	query := s.DB.WithContext(ctx).Model(&models.Species{})
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}
	if err := query.Order("name").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list species: %w", err)
	}
	return list, nil
}

func (s *SpecieService) Delete(ctx context.Context, id uint, actor int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var species models.Species
		if err := tx.First(&species, id).Error; err != nil {
			return notFoundOr(err, MsgSpeciesMissing, "find species")
		}

		for _, model := range []interface{}{&models.Livestock{}, &models.ProcurementDetail{}, &models.OrderRequirement{}} {
			var count int64
			if err := tx.Model(model).Where("species_id = ?", id).Count(&count).Error; err != nil {
				return fmt.Errorf("check species usage: %w", err)
			}
			if count > 0 {
				return BadRequest(MsgSpeciesInUse)
			}
		}

		if err := tx.Model(&species).Update("deleted_by", actor).Error; err != nil {
			return err
		}
		return tx.Delete(&species).Error
	})
}
