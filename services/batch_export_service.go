package services

import (
	"context"
	"fmt"
	"time"

	"livestock-app/controllers/helpers"
	"livestock-app/dto"
	"livestock-app/models"
	"livestock-app/repositories"
	"livestock-app/workflow"

	"gorm.io/gorm"
)

type BatchExportService struct {
	DB *gorm.DB
}

func NewBatchExportService(db *gorm.DB) *BatchExportService {
	return &BatchExportService{DB: db}
}

// BatchExportView carries counts recomputed from the detail rows. The stored
// Total/Remaining fields are returned as-is next to them.
type BatchExportView struct {
	models.BatchExport
	Pending           int64 `json:"pending"`
	HandedOver        int64 `json:"handed_over"`
	Replaced          int64 `json:"replaced"`
	ComputedRemaining int   `json:"computed_remaining"`
}

func batchExportRef(id uint) string {
	return fmt.Sprintf("EXP-%d", id)
}

func (s *BatchExportService) Get(ctx context.Context, id uint) (*BatchExportView, error) {
	db := s.DB.WithContext(ctx)
	var batch models.BatchExport
	err := db.Preload("Details", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id")
	}).Preload("Details.Livestock.Species").First(&batch, id).Error
	if err != nil {
		return nil, notFoundOr(err, MsgBatchExportNotFound, "find batch export")
	}

	view := &BatchExportView{BatchExport: batch}
	for _, d := range batch.Details {
		switch d.Status {
		case models.ExportDetailPendingHandover:
			view.Pending++
		case models.ExportDetailHandedOver:
			view.HandedOver++
		case models.ExportDetailReplaced:
			view.Replaced++
		}
	}
	view.ComputedRemaining = batch.Total - int(view.Pending+view.HandedOver)
	if view.ComputedRemaining < 0 {
		view.ComputedRemaining = 0
	}
	return view, nil
}

func (s *BatchExportService) List(ctx context.Context, procurementID uint) ([]models.BatchExport, error) {
	batches := []models.BatchExport{}
	query := s.DB.WithContext(ctx).Model(&models.BatchExport{})
	if procurementID > 0 {
		query = query.Where("procurement_package_id = ?", procurementID)
	}
	if err := query.Order("id DESC").Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("list batch exports: %w", err)
	}
	return batches, nil
}

// AddExportDetail reserves an eligible livestock for the batch against the package requirements.
func (s *BatchExportService) AddExportDetail(ctx context.Context, batchID uint, req dto.ExportDetailRequest, actor int) (*models.BatchExportDetail, error) {
	if req.PriceUnit.IsNegative() {
		return nil, BadRequest(MsgInvalidPrice)
	}

	var detail models.BatchExportDetail
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var batch models.BatchExport
		if err := tx.First(&batch, batchID).Error; err != nil {
			return notFoundOr(err, MsgBatchExportNotFound, "find batch export")
		}
		if batch.Status != models.BatchExportPending && batch.Status != models.BatchExportHandingOver {
			return BadRequest(MsgBatchExportLocked)
		}
		if batch.Remaining <= 0 {
			return BadRequest(MsgBatchExportFull)
		}

		var pkg models.ProcurementPackage
		if err := tx.First(&pkg, batch.ProcurementPackageID).Error; err != nil {
			return notFoundOr(err, MsgProcurementNotFound, "find procurement")
		}
		if pkg.Status != models.ProcurementAwarded && pkg.Status != models.ProcurementHandingOver {
			return BadRequest(MsgBatchExportLocked)
		}

		var livestock models.Livestock
		if err := tx.First(&livestock, req.LivestockID).Error; err != nil {
			return notFoundOr(err, MsgLivestockNotFound, "find livestock")
		}
		if livestock.Status != models.LivestockHealthy || livestock.InspectionCode == "" {
			return BadRequest(MsgLivestockNotEligible)
		}
		busy, err := repositories.NewLivestockRepository(tx).InActiveWorkflow(livestock.ID)
		if err != nil {
			return fmt.Errorf("check livestock workflow: %w", err)
		}
		if busy {
			return Conflict(MsgLivestockBusy)
		}

		var requirement models.ProcurementDetail
		err = tx.Where("procurement_package_id = ? AND species_id = ?", pkg.ID, livestock.SpeciesID).First(&requirement).Error
		if err != nil {
			return notFoundOr(err, MsgSpeciesNotRequired, "find requirement")
		}

		counts, err := exportCounts(tx, []uint{pkg.ID})
		if err != nil {
			return fmt.Errorf("count export details: %w", err)
		}
		var selected int64
		for _, c := range counts {
			if c.SpeciesID == livestock.SpeciesID {
				selected += c.Total
			}
		}
		if selected >= int64(requirement.RequiredQuantity) {
			return BadRequest(MsgSpeciesQuotaFull)
		}

		weight := req.WeightExport
		if weight == 0 {
			weight = livestock.WeightEstimate
		}
		if (requirement.RequiredWeightMin > 0 && weight < requirement.RequiredWeightMin) ||
			(requirement.RequiredWeightMax > 0 && weight > requirement.RequiredWeightMax) {
			return BadRequest(MsgWeightNotMatched)
		}

		now := time.Now()
		if requirement.RequiredAgeMin > 0 || requirement.RequiredAgeMax > 0 {
			if livestock.DateOfBirth == nil {
				return BadRequest(MsgAgeNotMatched)
			}
			age := ageInMonths(*livestock.DateOfBirth, now)
			if age < requirement.RequiredAgeMin || (requirement.RequiredAgeMax > 0 && age > requirement.RequiredAgeMax) {
				return BadRequest(MsgAgeNotMatched)
			}
		}

		detail = models.BatchExportDetail{
			BatchExportID: batch.ID,
			LivestockID:   livestock.ID,
			PriceUnit:     req.PriceUnit,
			WeightExport:  weight,
			Status:        models.ExportDetailPendingHandover,
			CreatedBy:     actor,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return err
		}

		if err := tx.Model(&livestock).Updates(map[string]interface{}{
			"status":        models.LivestockWaitingExport,
			"weight_export": weight,
			"updated_by":    actor,
		}).Error; err != nil {
			return err
		}

		batch.Remaining--
		batch.UpdatedBy = actor
		if batch.Status == models.BatchExportPending {
			if err := workflow.BatchExport.Transition(batch.Status, models.BatchExportHandingOver); err != nil {
				return err
			}
			batch.Status = models.BatchExportHandingOver
			if err := helpers.InsertTransactionHistory(tx, batchExportRef(batch.ID), string(batch.Status), models.HistoryTypeBatchExport,
				transitionDetail(string(models.BatchExportPending), string(batch.Status)), actor); err != nil {
				return err
			}
		}
		if err := tx.Save(&batch).Error; err != nil {
			return err
		}

		if pkg.Status == models.ProcurementAwarded {
			if err := workflow.Procurement.Transition(pkg.Status, models.ProcurementHandingOver); err != nil {
				return err
			}
			pkg.Status = models.ProcurementHandingOver
			stamp(&pkg.HandoverStartedAt, now)
			pkg.UpdatedBy = actor
			if err := tx.Save(&pkg).Error; err != nil {
				return err
			}
			if err := helpers.InsertTransactionHistory(tx, pkg.Code, string(pkg.Status), models.HistoryTypeProcurement,
				transitionDetail(string(models.ProcurementAwarded), string(pkg.Status)), actor); err != nil {
				return err
			}
		}

		livestock.Status = models.LivestockWaitingExport
		livestock.WeightExport = weight
		detail.Livestock = &livestock
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// RemoveExportDetail releases a livestock that has not been handed over yet.
func (s *BatchExportService) RemoveExportDetail(ctx context.Context, detailID uint, actor int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var detail models.BatchExportDetail
		if err := tx.First(&detail, detailID).Error; err != nil {
			return notFoundOr(err, MsgExportDetailNotFound, "find export detail")
		}
		if detail.Status != models.ExportDetailPendingHandover {
			return BadRequest(MsgExportDetailHanded)
		}

		var batch models.BatchExport
		if err := tx.First(&batch, detail.BatchExportID).Error; err != nil {
			return notFoundOr(err, MsgBatchExportNotFound, "find batch export")
		}

		if err := tx.Model(&models.Livestock{}).
			Where("id = ? AND status = ?", detail.LivestockID, models.LivestockWaitingExport).
			Updates(map[string]interface{}{"status": models.LivestockHealthy, "updated_by": actor}).Error; err != nil {
			return err
		}

		if batch.Remaining < batch.Total {
			batch.Remaining++
		}
		batch.UpdatedBy = actor
		if err := tx.Save(&batch).Error; err != nil {
			return err
		}

		if err := tx.Model(&detail).Update("deleted_by", actor).Error; err != nil {
			return err
		}
		return tx.Delete(&detail).Error
	})
}

// ConfirmHandover hands over pending details (all of them when DetailIDs is empty).
// The insurance expiry comes from the package requirement of the livestock species.
// When nothing is left the batch completes, and the package completes with its last batch.
func (s *BatchExportService) ConfirmHandover(ctx context.Context, batchID uint, req dto.HandoverRequest, actor int) (*BatchExportView, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var batch models.BatchExport
		if err := tx.First(&batch, batchID).Error; err != nil {
			return notFoundOr(err, MsgBatchExportNotFound, "find batch export")
		}
		if batch.Status != models.BatchExportHandingOver {
			return BadRequest(MsgBatchExportLocked)
		}

		details := []models.BatchExportDetail{}
		query := tx.Preload("Livestock").
			Where("batch_export_id = ? AND status = ?", batchID, models.ExportDetailPendingHandover)
		if len(req.DetailIDs) > 0 {
			query = query.Where("id IN ?", req.DetailIDs)
		}
		if err := query.Find(&details).Error; err != nil {
			return err
		}
		if len(details) == 0 {
			return BadRequest(MsgNothingToHandover)
		}

		requirements := []models.ProcurementDetail{}
		if err := tx.Where("procurement_package_id = ?", batch.ProcurementPackageID).Find(&requirements).Error; err != nil {
			return err
		}
		insuranceDays := map[uint]int{}
		for _, r := range requirements {
			insuranceDays[r.SpeciesID] = r.RequiredInsuranceDays
		}

		now := time.Now()
		handover := now
		if req.HandoverDate != nil {
			handover = *req.HandoverDate
		}

		for i := range details {
			d := &details[i]
			livestock := d.Livestock
			if livestock == nil {
				return NotFound(MsgLivestockNotFound)
			}
			stamp(&d.HandoverDate, handover)
			stamp(&d.ExportDate, now)
			stamp(&d.ExpiredInsuranceDate, d.HandoverDate.AddDate(0, 0, insuranceDays[livestock.SpeciesID]))
			d.Status = models.ExportDetailHandedOver
			d.UpdatedBy = actor
			d.Livestock = nil
			if err := tx.Save(d).Error; err != nil {
				return err
			}

			exportedAt := livestock.ExportedAt
			stamp(&exportedAt, now)
			if err := tx.Model(&models.Livestock{}).Where("id = ?", livestock.ID).Updates(map[string]interface{}{
				"status":        models.LivestockExported,
				"exported_at":   exportedAt,
				"weight_export": d.WeightExport,
				"updated_by":    actor,
			}).Error; err != nil {
				return err
			}
		}

		var pending int64
		if err := tx.Model(&models.BatchExportDetail{}).
			Where("batch_export_id = ? AND status = ?", batchID, models.ExportDetailPendingHandover).
			Count(&pending).Error; err != nil {
			return err
		}
		if batch.Remaining > 0 || pending > 0 {
			return nil
		}

		if err := workflow.BatchExport.Transition(batch.Status, models.BatchExportCompleted); err != nil {
			return err
		}
		batch.Status = models.BatchExportCompleted
		stamp(&batch.CompletedAt, now)
		batch.UpdatedBy = actor
		if err := tx.Save(&batch).Error; err != nil {
			return err
		}
		if err := helpers.InsertTransactionHistory(tx, batchExportRef(batch.ID), string(batch.Status), models.HistoryTypeBatchExport,
			transitionDetail(string(models.BatchExportHandingOver), string(batch.Status)), actor); err != nil {
			return err
		}

		var open int64
		if err := tx.Model(&models.BatchExport{}).
			Where("procurement_package_id = ?", batch.ProcurementPackageID).
			Where("status NOT IN ?", []models.BatchExportStatus{models.BatchExportCompleted, models.BatchExportCancelled}).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return nil
		}

		var pkg models.ProcurementPackage
		if err := tx.First(&pkg, batch.ProcurementPackageID).Error; err != nil {
			return notFoundOr(err, MsgProcurementNotFound, "find procurement")
		}
		if err := workflow.Procurement.Transition(pkg.Status, models.ProcurementCompleted); err != nil {
			return err
		}
		from := pkg.Status
		pkg.Status = models.ProcurementCompleted
		stamp(&pkg.CompletionDate, now)
		pkg.UpdatedBy = actor
		if err := tx.Save(&pkg).Error; err != nil {
			return err
		}
		return helpers.InsertTransactionHistory(tx, pkg.Code, string(pkg.Status), models.HistoryTypeProcurement,
			transitionDetail(string(from), string(pkg.Status)), actor)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, batchID)
}

func (s *BatchExportService) Cancel(ctx context.Context, id uint, actor int) (*models.BatchExport, error) {
	var batch models.BatchExport
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&batch, id).Error; err != nil {
			return notFoundOr(err, MsgBatchExportNotFound, "find batch export")
		}
		from := batch.Status
		if err := workflow.BatchExport.Transition(from, models.BatchExportCancelled); err != nil {
			return err
		}
		batch.Status = models.BatchExportCancelled
		stamp(&batch.CancelledAt, time.Now())
		batch.UpdatedBy = actor
		if err := tx.Save(&batch).Error; err != nil {
			return err
		}
		return helpers.InsertTransactionHistory(tx, batchExportRef(batch.ID), string(batch.Status), models.HistoryTypeBatchExport,
			transitionDetail(string(from), string(batch.Status)), actor)
	})
	if err != nil {
		return nil, err
	}
	return &batch, nil
}
