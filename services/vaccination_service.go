package services

import (
	"context"
	"fmt"
	"time"

	"livestock-app/controllers/helpers"
	"livestock-app/dto"
	"livestock-app/models"
	"livestock-app/workflow"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type VaccinationService struct {
	DB *gorm.DB
}

func NewVaccinationService(db *gorm.DB) *VaccinationService {
	return &VaccinationService{DB: db}
}

func vaccinationRef(id uint) string {
	return fmt.Sprintf("VAC-%d", id)
}

func (s *VaccinationService) Create(ctx context.Context, req dto.VaccinationBatchRequest, actor int) (*models.VaccinationBatch, error) {
	batch := models.VaccinationBatch{
		Name:        req.Name,
		MedicineID:  req.MedicineID,
		DiseaseID:   req.DiseaseID,
		Description: req.Description,
		Conductor:   req.Conductor,
		Status:      models.VaccinationPlanned,
		ScheduledAt: req.ScheduledAt,
		CreatedBy:   actor,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var medicine models.Medicine
		if err := tx.First(&medicine, req.MedicineID).Error; err != nil {
			return notFoundOr(err, MsgMedicineNotFound, "find medicine")
		}
		if req.DiseaseID != nil {
			var disease models.Disease
			if err := tx.First(&disease, *req.DiseaseID).Error; err != nil {
				return notFoundOr(err, MsgDiseaseNotFound, "find disease")
			}
		}
		if err := tx.Create(&batch).Error; err != nil {
			return err
		}
		return helpers.InsertTransactionHistory(tx, vaccinationRef(batch.ID), string(batch.Status), models.HistoryTypeVaccination, "created", actor)
	})
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (s *VaccinationService) Get(ctx context.Context, id uint) (*models.VaccinationBatch, error) {
	var batch models.VaccinationBatch
	err := s.DB.WithContext(ctx).
		Preload("Medicine").
		Preload("Disease").
		Preload("Details.Livestock").
		First(&batch, id).Error
	if err != nil {
		return nil, notFoundOr(err, MsgVaccinationNotFound, "find vaccination batch")
	}
	return &batch, nil
}

func (s *VaccinationService) List(ctx context.Context, status models.VaccinationStatus) ([]models.VaccinationBatch, error) {
	batches := []models.VaccinationBatch{}
	query := s.DB.WithContext(ctx).Preload("Medicine")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("scheduled_at DESC").Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("list vaccination batches: %w", err)
	}
	return batches, nil
}

func (s *VaccinationService) open(tx *gorm.DB, id uint) (*models.VaccinationBatch, error) {
	var batch models.VaccinationBatch
	if err := tx.First(&batch, id).Error; err != nil {
		return nil, notFoundOr(err, MsgVaccinationNotFound, "find vaccination batch")
	}
	if batch.Status != models.VaccinationPlanned && batch.Status != models.VaccinationInProgress {
		return nil, BadRequest(MsgVaccinationLocked)
	}
	return &batch, nil
}

func (s *VaccinationService) AddLivestock(ctx context.Context, id uint, livestockIDs []uint, actor int) ([]models.LivestockVaccination, error) {
	added := []models.LivestockVaccination{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.open(tx, id); err != nil {
			return err
		}

		var existing []uint
		if err := tx.Model(&models.LivestockVaccination{}).
			Where("vaccination_batch_id = ?", id).
			Pluck("livestock_id", &existing).Error; err != nil {
			return err
		}

		for _, livestockID := range livestockIDs {
			if slices.Contains(existing, livestockID) {
				return Conflict(MsgVaccinationDuplicate)
			}
			var livestock models.Livestock
			if err := tx.First(&livestock, livestockID).Error; err != nil {
				return notFoundOr(err, MsgLivestockNotFound, "find livestock")
			}
			if !livestock.OnFarm() {
				return BadRequest(MsgLivestockNotOnFarm)
			}

			record := models.LivestockVaccination{
				VaccinationBatchID: id,
				LivestockID:        livestockID,
				CreatedBy:          actor,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			existing = append(existing, livestockID)
			added = append(added, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (s *VaccinationService) RemoveLivestock(ctx context.Context, id, livestockID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.open(tx, id); err != nil {
			return err
		}
		result := tx.Where("vaccination_batch_id = ? AND livestock_id = ?", id, livestockID).
			Delete(&models.LivestockVaccination{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return NotFound(MsgLivestockNotFound)
		}
		return nil
	})
}

// ChangeStatus starts, completes or cancels a batch. Completing stamps the vaccination
// date on every record that has none yet.
func (s *VaccinationService) ChangeStatus(ctx context.Context, id uint, to models.VaccinationStatus, actor int) (*models.VaccinationBatch, error) {
	var batch models.VaccinationBatch
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&batch, id).Error; err != nil {
			return notFoundOr(err, MsgVaccinationNotFound, "find vaccination batch")
		}
		from := batch.Status

		if to == models.VaccinationInProgress || to == models.VaccinationCompleted {
			var count int64
			if err := tx.Model(&models.LivestockVaccination{}).Where("vaccination_batch_id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return BadRequest(MsgVaccinationEmpty)
			}
		}

		if err := workflow.Vaccination.Transition(from, to); err != nil {
			return err
		}

		now := time.Now()
		switch to {
		case models.VaccinationInProgress:
			if batch.StartedAt == nil {
				batch.StartedAt = &now
			}
		case models.VaccinationCompleted:
			if batch.StartedAt == nil {
				batch.StartedAt = &now
			}
			if batch.CompletedAt == nil {
				batch.CompletedAt = &now
			}
			if err := tx.Model(&models.LivestockVaccination{}).
				Where("vaccination_batch_id = ? AND vaccinated_at IS NULL", id).
				Update("vaccinated_at", now).Error; err != nil {
				return err
			}
		case models.VaccinationCancelled:
			if batch.CancelledAt == nil {
				batch.CancelledAt = &now
			}
		}

		batch.Status = to
		batch.UpdatedBy = actor
		if err := tx.Save(&batch).Error; err != nil {
			return err
		}
		return helpers.InsertTransactionHistory(tx, vaccinationRef(batch.ID), string(to), models.HistoryTypeVaccination,
			fmt.Sprintf("%s -> %s", from, to), actor)
	})
	if err != nil {
		return nil, err
	}
	return &batch, nil
}
