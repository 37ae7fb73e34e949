package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"livestock-app/controllers/helpers"
	"livestock-app/dto"
	"livestock-app/farm/master/supplier"
	"livestock-app/models"
	"livestock-app/repositories"
	"livestock-app/workflow"

	"gorm.io/gorm"
)

type BatchImportService struct {
	DB *gorm.DB
}

func NewBatchImportService(db *gorm.DB) *BatchImportService {
	return &BatchImportService{DB: db}
}

func batchImportRef(id uint) string {
	return fmt.Sprintf("IMP-%d", id)
}

func (s *BatchImportService) Create(ctx context.Context, req dto.BatchImportRequest, actor int) (*models.BatchImport, error) {
	batch := models.BatchImport{
		Name:                   req.Name,
		BarnID:                 req.BarnID,
		SupplierID:             req.SupplierID,
		EstimatedQuantity:      req.EstimatedQuantity,
		ExpectedCompletionDate: req.ExpectedCompletionDate,
		Description:            req.Description,
		Status:                 models.BatchImportPending,
		CreatedBy:              actor,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var barn models.Barn
		if err := tx.First(&barn, req.BarnID).Error; err != nil {
			return notFoundOr(err, MsgBarnNotFound, "find barn")
		}
		if req.SupplierID != nil {
			if _, err := supplier.Exists(tx, *req.SupplierID); err != nil {
				return notFoundOr(err, MsgSupplierNotFound, "find supplier")
			}
		}
		if err := tx.Create(&batch).Error; err != nil {
			return err
		}
		return helpers.InsertTransactionHistory(tx, batchImportRef(batch.ID), string(batch.Status), models.HistoryTypeBatchImport, "created", actor)
	})
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (s *BatchImportService) Get(ctx context.Context, id uint) (*models.BatchImport, error) {
	var batch models.BatchImport
	err := s.DB.WithContext(ctx).
		Preload("Barn").
		Preload("Details.Livestock.Species").
		First(&batch, id).Error
	if err != nil {
		return nil, notFoundOr(err, MsgBatchImportNotFound, "find batch import")
	}
	return &batch, nil
}

func (s *BatchImportService) List(ctx context.Context, status models.BatchImportStatus) ([]models.BatchImport, error) {
	batches := []models.BatchImport{}
	query := s.DB.WithContext(ctx).Preload("Barn")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("id DESC").Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("list batch imports: %w", err)
	}
	return batches, nil
}

// AddLivestock registers a new animal in the batch barn. A pending batch moves to importing
// on its first animal.
func (s *BatchImportService) AddLivestock(ctx context.Context, id uint, req dto.ImportLivestockRequest, actor int) (*models.BatchImportDetail, error) {
	var detail models.BatchImportDetail
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var batch models.BatchImport
		if err := tx.First(&batch, id).Error; err != nil {
			return notFoundOr(err, MsgBatchImportNotFound, "find batch import")
		}
		if batch.Status != models.BatchImportPending && batch.Status != models.BatchImportImporting {
			return BadRequest(MsgBatchImportLocked)
		}

		var species models.Species
		if err := tx.First(&species, req.SpeciesID).Error; err != nil {
			return notFoundOr(err, MsgSpeciesMissing, "find species")
		}

		code := strings.TrimSpace(req.InspectionCode)
		if code != "" {
			taken, err := repositories.NewLivestockRepository(tx).InspectionCodeTaken(code, 0)
			if err != nil {
				return fmt.Errorf("check inspection code: %w", err)
			}
			if taken {
				return Conflict(MsgInspectionCodeExists)
			}
		}

		now := time.Now()
		importedDate := now
		if req.ImportedDate != nil {
			importedDate = *req.ImportedDate
		}

		origin := ""
		if batch.SupplierID != nil {
			if sup, err := supplier.Exists(tx, *batch.SupplierID); err == nil {
				origin = sup.Name
			}
		}

		barnID := batch.BarnID
		livestock := models.Livestock{
			InspectionCode:  code,
			SpeciesID:       req.SpeciesID,
			BarnID:          &barnID,
			Status:          initialStatus("", code),
			Gender:          req.Gender,
			Color:           req.Color,
			Origin:          origin,
			WeightOrigin:    req.Weight,
			WeightEstimate:  req.Weight,
			WeightUpdatedAt: &now,
			DateOfBirth:     req.DateOfBirth,
			ImportedAt:      &importedDate,
			CreatedBy:       actor,
		}
		if err := tx.Create(&livestock).Error; err != nil {
			return err
		}

		detail = models.BatchImportDetail{
			BatchImportID: id,
			LivestockID:   livestock.ID,
			ImportedDate:  importedDate,
			CreatedBy:     actor,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return err
		}
		detail.Livestock = &livestock

		if batch.Status == models.BatchImportPending {
			if err := workflow.BatchImport.Transition(batch.Status, models.BatchImportImporting); err != nil {
				return err
			}
			batch.Status = models.BatchImportImporting
			batch.StartedAt = &now
			if err := helpers.InsertTransactionHistory(tx, batchImportRef(id), string(batch.Status), models.HistoryTypeBatchImport,
				"first livestock imported", actor); err != nil {
				return err
			}
		}
		batch.ImportedQuantity++
		batch.UpdatedBy = actor
		return tx.Save(&batch).Error
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *BatchImportService) ChangeStatus(ctx context.Context, id uint, to models.BatchImportStatus, actor int) (*models.BatchImport, error) {
	var batch models.BatchImport
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&batch, id).Error; err != nil {
			return notFoundOr(err, MsgBatchImportNotFound, "find batch import")
		}
		from := batch.Status
		if err := workflow.BatchImport.Transition(from, to); err != nil {
			return err
		}

		now := time.Now()
		switch to {
		case models.BatchImportImporting:
			if batch.StartedAt == nil {
				batch.StartedAt = &now
			}
		case models.BatchImportCompleted:
			var count int64
			if err := tx.Model(&models.BatchImportDetail{}).Where("batch_import_id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			batch.ImportedQuantity = int(count)
			if batch.CompletedAt == nil {
				batch.CompletedAt = &now
			}
		case models.BatchImportCancelled:
			if batch.CancelledAt == nil {
				batch.CancelledAt = &now
			}
		}

		batch.Status = to
		batch.UpdatedBy = actor
		if err := tx.Save(&batch).Error; err != nil {
			return err
		}
		return helpers.InsertTransactionHistory(tx, batchImportRef(id), string(to), models.HistoryTypeBatchImport,
			fmt.Sprintf("%s -> %s", from, to), actor)
	})
	if err != nil {
		return nil, err
	}
	return &batch, nil
}
