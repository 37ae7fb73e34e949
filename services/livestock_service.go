package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"livestock-app/controllers/helpers"
	"livestock-app/dto"
	"livestock-app/models"
	"livestock-app/repositories"
	"livestock-app/workflow"

	"gorm.io/gorm"
)

type LivestockService struct {
	DB *gorm.DB
}

func NewLivestockService(db *gorm.DB) *LivestockService {
	return &LivestockService{DB: db}
}

type LivestockPage struct {
	Items    []models.Livestock `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

type LivestockSummary struct {
	Total    int64                     `json:"total"`
	OnFarm   int64                     `json:"on_farm"`
	ByStatus []repositories.StatusCount `json:"by_status"`
}

func initialStatus(requested models.LivestockStatus, code string) models.LivestockStatus {
	if requested != "" {
		return requested
	}
	if strings.TrimSpace(code) == "" {
		return models.LivestockUnidentified
	}
	return models.LivestockHealthy
}

func (s *LivestockService) checkRefs(tx *gorm.DB, speciesID uint, barnID *uint) error {
	var species models.Species
	if err := tx.First(&species, speciesID).Error; err != nil {
		return notFoundOr(err, MsgSpeciesMissing, "find species")
	}
	if barnID != nil {
		var barn models.Barn
		if err := tx.First(&barn, *barnID).Error; err != nil {
			return notFoundOr(err, MsgBarnNotFound, "find barn")
		}
	}
	return nil
}

func (s *LivestockService) Create(ctx context.Context, req dto.LivestockRequest, actor int) (*models.Livestock, error) {
	code := strings.TrimSpace(req.InspectionCode)
	status := initialStatus(req.Status, code)
	if status != models.LivestockUnidentified && code == "" {
		return nil, BadRequest(MsgInspectionCodeMissing)
	}

	now := time.Now()
	livestock := models.Livestock{
		InspectionCode: code,
		SpeciesID:      req.SpeciesID,
		BarnID:         req.BarnID,
		Status:         status,
		Gender:         req.Gender,
		Color:          req.Color,
		Origin:         req.Origin,
		WeightOrigin:   req.WeightOrigin,
		WeightEstimate: req.WeightEstimate,
		DateOfBirth:    req.DateOfBirth,
		ImportedAt:     &now,
		CreatedBy:      actor,
	}
	if livestock.WeightEstimate == 0 {
		livestock.WeightEstimate = req.WeightOrigin
	}
	livestock.WeightUpdatedAt = &now

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkRefs(tx, req.SpeciesID, req.BarnID); err != nil {
			return err
		}
		if code != "" {
			taken, err := repositories.NewLivestockRepository(tx).InspectionCodeTaken(code, 0)
			if err != nil {
				return fmt.Errorf("check inspection code: %w", err)
			}
			if taken {
				return Conflict(MsgInspectionCodeExists)
			}
		}
		return tx.Create(&livestock).Error
	})
	if err != nil {
		return nil, err
	}
	return &livestock, nil
}

func (s *LivestockService) Update(ctx context.Context, id uint, req dto.LivestockRequest, actor int) (*models.Livestock, error) {
	var livestock models.Livestock
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&livestock, id).Error; err != nil {
			return notFoundOr(err, MsgLivestockNotFound, "find livestock")
		}
		if err := s.checkRefs(tx, req.SpeciesID, req.BarnID); err != nil {
			return err
		}

		code := strings.TrimSpace(req.InspectionCode)
		if code != "" {
			taken, err := repositories.NewLivestockRepository(tx).InspectionCodeTaken(code, id)
			if err != nil {
				return fmt.Errorf("check inspection code: %w", err)
			}
			if taken {
				return Conflict(MsgInspectionCodeExists)
			}
		} else if livestock.Status != models.LivestockUnidentified {
			return BadRequest(MsgInspectionCodeMissing)
		}

		// Tagging an unidentified animal makes it a regular healthy one.
		if livestock.Status == models.LivestockUnidentified && code != "" {
			livestock.Status = models.LivestockHealthy
		}

		livestock.InspectionCode = code
		livestock.SpeciesID = req.SpeciesID
		livestock.Species = nil
		livestock.BarnID = req.BarnID
		livestock.Barn = nil
		livestock.Gender = req.Gender
		livestock.Color = req.Color
		livestock.Origin = req.Origin
		livestock.WeightOrigin = req.WeightOrigin
		if req.WeightEstimate > 0 && req.WeightEstimate != livestock.WeightEstimate {
			now := time.Now()
			livestock.WeightEstimate = req.WeightEstimate
			livestock.WeightUpdatedAt = &now
		}
		livestock.DateOfBirth = req.DateOfBirth
		livestock.UpdatedBy = actor
		return tx.Save(&livestock).Error
	})
	if err != nil {
		return nil, err
	}
	return &livestock, nil
}

func (s *LivestockService) Get(ctx context.Context, id uint) (*models.Livestock, error) {
	livestock, err := repositories.NewLivestockRepository(s.DB.WithContext(ctx)).GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, MsgLivestockNotFound, "find livestock")
	}
	return livestock, nil
}

func (s *LivestockService) List(ctx context.Context, filter dto.LivestockFilter) (*LivestockPage, error) {
	items, total, err := repositories.NewLivestockRepository(s.DB.WithContext(ctx)).List(filter)
	if err != nil {
		return nil, fmt.Errorf("list livestock: %w", err)
	}
	return &LivestockPage{Items: items, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

// ChangeStatus applies a manual health change. Dead animals get DeadAt stamped once.
func (s *LivestockService) ChangeStatus(ctx context.Context, id uint, to models.LivestockStatus, actor int) (*models.Livestock, error) {
	var livestock models.Livestock
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&livestock, id).Error; err != nil {
			return notFoundOr(err, MsgLivestockNotFound, "find livestock")
		}
		if !livestock.OnFarm() {
			return BadRequest(MsgLivestockNotOnFarm)
		}
		if to == models.LivestockHealthy && livestock.InspectionCode == "" {
			return BadRequest(MsgInspectionCodeMissing)
		}

		busy, err := repositories.NewLivestockRepository(tx).InActiveWorkflow(id)
		if err != nil {
			return fmt.Errorf("check livestock workflow: %w", err)
		}
		if busy {
			return Conflict(MsgLivestockBusy)
		}

		from := livestock.Status
		if err := workflow.Livestock.Transition(from, to); err != nil {
			return err
		}

		livestock.Status = to
		livestock.UpdatedBy = actor
		if to == models.LivestockDead && livestock.DeadAt == nil {
			now := time.Now()
			livestock.DeadAt = &now
		}
		if err := tx.Save(&livestock).Error; err != nil {
			return err
		}
		return helpers.InsertTransactionHistory(tx, livestock.InspectionCode, string(to), models.HistoryTypeLivestock,
			fmt.Sprintf("%s -> %s", from, to), actor)
	})
	if err != nil {
		return nil, err
	}
	return &livestock, nil
}

func (s *LivestockService) Summary(ctx context.Context) (*LivestockSummary, error) {
	counts, err := repositories.NewLivestockRepository(s.DB.WithContext(ctx)).CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("count livestock: %w", err)
	}

	summary := &LivestockSummary{ByStatus: counts}
	for _, c := range counts {
		summary.Total += c.Total
		if (models.Livestock{Status: c.Status}).OnFarm() {
			summary.OnFarm += c.Total
		}
	}
	return summary, nil
}

func (s *LivestockService) Delete(ctx context.Context, id uint, actor int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var livestock models.Livestock
		if err := tx.First(&livestock, id).Error; err != nil {
			return notFoundOr(err, MsgLivestockNotFound, "find livestock")
		}

		used, err := repositories.NewLivestockRepository(tx).ReferencedByRecords(id)
		if err != nil {
			return fmt.Errorf("check livestock usage: %w", err)
		}
		if used {
			return BadRequest(MsgLivestockInUse)
		}

		if err := tx.Model(&livestock).Update("deleted_by", actor).Error; err != nil {
			return err
		}
		return tx.Delete(&livestock).Error
	})
}
