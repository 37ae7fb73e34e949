package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"livestock-app/controllers/helpers"
	"livestock-app/controllers/idgen"
	"livestock-app/dto"
	"livestock-app/models"
	"livestock-app/notification"
	"livestock-app/repositories"
	"livestock-app/workflow"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InsuranceService struct {
	DB       *gorm.DB
	Notifier notification.Notifier
}

func NewInsuranceService(db *gorm.DB, notifier notification.Notifier) *InsuranceService {
	if notifier == nil {
		notifier = notification.NopNotifier{}
	}
	return &InsuranceService{DB: db, Notifier: notifier}
}

// soldRecord is the handed-over sale a claim is filed against.
type soldRecord struct {
	ProcurementPackageID *uint
	OrderID              *uint
	ExpiredInsuranceDate *time.Time
	HandedAt             time.Time
	exportDetail         *models.BatchExportDetail
	orderDetail          *models.OrderDetail
}

// latestSale mencari penjualan terakhir hewan, dari batch export atau order
func latestSale(tx *gorm.DB, livestockID uint) (*soldRecord, error) {
	var sale *soldRecord

	var exportDetail models.BatchExportDetail
	err := tx.Where("livestock_id = ? AND status = ?", livestockID, models.ExportDetailHandedOver).
		Order("id DESC").First(&exportDetail).Error
	switch {
	case err == nil:
		var batch models.BatchExport
		if err := tx.First(&batch, exportDetail.BatchExportID).Error; err != nil {
			return nil, fmt.Errorf("find batch export: %w", err)
		}
		sale = &soldRecord{
			ProcurementPackageID: &batch.ProcurementPackageID,
			ExpiredInsuranceDate: exportDetail.ExpiredInsuranceDate,
			HandedAt:             exportDetail.UpdatedAt,
			exportDetail:         &exportDetail,
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("find export detail: %w", err)
	}

	var orderDetail models.OrderDetail
	err = tx.Where("livestock_id = ? AND status = ?", livestockID, models.ExportDetailHandedOver).
		Order("id DESC").First(&orderDetail).Error
	switch {
	case err == nil:
		if sale == nil || orderDetail.UpdatedAt.After(sale.HandedAt) {
			orderID := orderDetail.OrderID
			sale = &soldRecord{
				OrderID:              &orderID,
				ExpiredInsuranceDate: orderDetail.ExpiredInsuranceDate,
				HandedAt:             orderDetail.UpdatedAt,
				orderDetail:          &orderDetail,
			}
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("find order detail: %w", err)
	}

	return sale, nil
}

func (s *InsuranceService) Create(ctx context.Context, req dto.InsuranceRequestCreate, actor int) (*models.InsuranceRequest, error) {
	var claim models.InsuranceRequest
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var livestock models.Livestock
		if err := tx.First(&livestock, req.LivestockID).Error; err != nil {
			return notFoundOr(err, MsgLivestockNotFound, "find livestock")
		}
		if livestock.Status != models.LivestockExported {
			return BadRequest(MsgLivestockNotExported)
		}

		sale, err := latestSale(tx, livestock.ID)
		if err != nil {
			return err
		}
		if sale == nil {
			return BadRequest(MsgLivestockNotExported)
		}
		if sale.ExpiredInsuranceDate == nil || sale.ExpiredInsuranceDate.Before(time.Now()) {
			return BadRequest(MsgInsuranceExpired)
		}

		var open int64
		if err := tx.Model(&models.InsuranceRequest{}).
			Where("livestock_id = ? AND status IN ?", livestock.ID, models.OpenInsuranceStatuses).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return Conflict(MsgInsuranceOpen)
		}

		var disease models.Disease
		if err := tx.First(&disease, req.DiseaseID).Error; err != nil {
			return notFoundOr(err, MsgDiseaseNotFound, "find disease")
		}

		claim = models.InsuranceRequest{
			Code:                 idgen.GenerateCode("IR"),
			LivestockID:          livestock.ID,
			DiseaseID:            disease.ID,
			OrderID:              sale.OrderID,
			ProcurementPackageID: sale.ProcurementPackageID,
			Description:          req.Description,
			IsLivestockReturn:    req.IsLivestockReturn,
			Status:               models.InsurancePending,
			CreatedBy:            actor,
		}
		if err := tx.Create(&claim).Error; err != nil {
			return err
		}
		return helpers.InsertTransactionHistory(tx, claim.Code, string(claim.Status), models.HistoryTypeInsurance, "created", actor)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, claim, "")
	return &claim, nil
}

func (s *InsuranceService) Get(ctx context.Context, id uint) (*models.InsuranceRequest, error) {
	var claim models.InsuranceRequest
	err := s.DB.WithContext(ctx).
		Preload("Livestock.Species").
		Preload("Disease").
		Preload("NewLivestock").
		First(&claim, id).Error
	if err != nil {
		return nil, notFoundOr(err, MsgInsuranceNotFound, "find insurance request")
	}
	return &claim, nil
}

func (s *InsuranceService) List(ctx context.Context, status models.InsuranceStatus) ([]models.InsuranceRequest, error) {
	claims := []models.InsuranceRequest{}
	query := s.DB.WithContext(ctx).Preload("Livestock").Preload("Disease")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("id DESC").Find(&claims).Error; err != nil {
		return nil, fmt.Errorf("list insurance requests: %w", err)
	}
	return claims, nil
}

// ChangeStatus memindahkan status klaim dan mengisi tanggal statusnya. Klaim yang selesai
// menukar hewan yang terjual dengan hewan pengganti dari spesies yang sama.
func (s *InsuranceService) ChangeStatus(ctx context.Context, id uint, req dto.InsuranceStatusRequest, actor int) (*models.InsuranceRequest, error) {
	var claim models.InsuranceRequest
	var from models.InsuranceStatus
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&claim, id).Error; err != nil {
			return notFoundOr(err, MsgInsuranceNotFound, "find insurance request")
		}
		from = claim.Status
		to := req.Status
		if !workflow.Insurance.CanTransition(from, to) {
			return workflow.Insurance.Transition(from, to)
		}

		now := time.Now()
		switch to {
		case models.InsuranceProcessing:
			stamp(&claim.ProcessingAt, now)
		case models.InsuranceApproved:
			stamp(&claim.ApprovedAt, now)
			if claim.IsLivestockReturn {
				if err := tx.Model(&models.Livestock{}).Where("id = ?", claim.LivestockID).
					Updates(map[string]interface{}{"status": models.LivestockSick, "updated_by": actor}).Error; err != nil {
					return err
				}
			}
		case models.InsuranceRejected:
			if req.RejectReason == "" {
				return BadRequest(MsgRejectReasonRequired)
			}
			claim.RejectReason = req.RejectReason
			stamp(&claim.RejectedAt, now)
		case models.InsuranceCompleted:
			if req.NewLivestockID == nil || *req.NewLivestockID == 0 {
				return BadRequest(MsgReplacementRequired)
			}
			if err := s.replace(tx, &claim, *req.NewLivestockID, now, actor); err != nil {
				return err
			}
			stamp(&claim.CompletedAt, now)
		case models.InsuranceCancelled:
			stamp(&claim.CancelledAt, now)
			// hewan yang sudah ditarik kembali tetap milik pembeli, bukan stok kandang
			if from == models.InsuranceApproved && claim.IsLivestockReturn {
				if err := tx.Model(&models.Livestock{}).
					Where("id = ? AND status = ?", claim.LivestockID, models.LivestockSick).
					Updates(map[string]interface{}{"status": models.LivestockExported, "updated_by": actor}).Error; err != nil {
					return err
				}
			}
		}

		if err := workflow.Insurance.Transition(from, to); err != nil {
			return err
		}
		claim.Status = to
		claim.UpdatedBy = actor
		if err := tx.Omit("Livestock", "Disease", "NewLivestock").Save(&claim).Error; err != nil {
			return err
		}
		return helpers.InsertTransactionHistory(tx, claim.Code, string(to), models.HistoryTypeInsurance,
			transitionDetail(string(from), string(to)), actor)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, claim, from)
	return &claim, nil
}

func (s *InsuranceService) replace(tx *gorm.DB, claim *models.InsuranceRequest, newID uint, now time.Time, actor int) error {
	var old models.Livestock
	if err := tx.First(&old, claim.LivestockID).Error; err != nil {
		return notFoundOr(err, MsgLivestockNotFound, "find livestock")
	}

	var replacement models.Livestock
	if err := tx.First(&replacement, newID).Error; err != nil {
		return notFoundOr(err, MsgLivestockNotFound, "find replacement livestock")
	}
	if replacement.SpeciesID != old.SpeciesID {
		return BadRequest(MsgReplacementSpecies)
	}
	if replacement.ID == old.ID || replacement.Status != models.LivestockHealthy || replacement.InspectionCode == "" {
		return BadRequest(MsgReplacementNotEligible)
	}
	busy, err := repositories.NewLivestockRepository(tx).InActiveWorkflow(replacement.ID)
	if err != nil {
		return fmt.Errorf("check livestock workflow: %w", err)
	}
	if busy {
		return Conflict(MsgLivestockBusy)
	}

	sale, err := latestSale(tx, old.ID)
	if err != nil {
		return err
	}
	if sale == nil {
		return BadRequest(MsgLivestockNotExported)
	}

	switch {
	case sale.exportDetail != nil:
		d := sale.exportDetail
		if err := tx.Model(d).Updates(map[string]interface{}{
			"status":     models.ExportDetailReplaced,
			"updated_by": actor,
		}).Error; err != nil {
			return err
		}
		handover := now
		fresh := models.BatchExportDetail{
			BatchExportID:        d.BatchExportID,
			LivestockID:          replacement.ID,
			PriceUnit:            d.PriceUnit,
			WeightExport:         replacement.WeightEstimate,
			ExportDate:           &handover,
			HandoverDate:         &handover,
			ExpiredInsuranceDate: d.ExpiredInsuranceDate,
			Status:               models.ExportDetailHandedOver,
			CreatedBy:            actor,
		}
		if err := tx.Create(&fresh).Error; err != nil {
			return err
		}
	case sale.orderDetail != nil:
		d := sale.orderDetail
		if err := tx.Model(d).Updates(map[string]interface{}{
			"status":     models.ExportDetailReplaced,
			"updated_by": actor,
		}).Error; err != nil {
			return err
		}
		exported := now
		fresh := models.OrderDetail{
			OrderID:              d.OrderID,
			OrderRequirementID:   d.OrderRequirementID,
			LivestockID:          replacement.ID,
			PriceUnit:            d.PriceUnit,
			WeightExport:         replacement.WeightEstimate,
			ExportDate:           &exported,
			ExpiredInsuranceDate: d.ExpiredInsuranceDate,
			Status:               models.ExportDetailHandedOver,
			CreatedBy:            actor,
		}
		if err := tx.Create(&fresh).Error; err != nil {
			return err
		}
	}

	if err := tx.Model(&replacement).Updates(map[string]interface{}{
		"status":        models.LivestockExported,
		"exported_at":   now,
		"weight_export": replacement.WeightEstimate,
		"updated_by":    actor,
	}).Error; err != nil {
		return err
	}

	claim.NewLivestockID = &replacement.ID
	return nil
}

func (s *InsuranceService) notify(ctx context.Context, claim models.InsuranceRequest, from models.InsuranceStatus) {
	body := fmt.Sprintf("Yêu cầu bảo hành %s: %s", claim.Code, claim.Status)
	if from != "" {
		body = fmt.Sprintf("Yêu cầu bảo hành %s: %s", claim.Code, transitionDetail(string(from), string(claim.Status)))
	}
	msg := notification.Message{
		Subject: fmt.Sprintf("[Bảo hành] %s - %s", claim.Code, claim.Status),
		Body:    body,
	}
	if err := s.Notifier.Notify(ctx, msg); err != nil {
		zap.L().Warn("insurance notification failed", zap.String("code", claim.Code), zap.Error(err))
	}
}
