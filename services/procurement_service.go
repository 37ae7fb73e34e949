package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"livestock-app/controllers/helpers"
	"livestock-app/controllers/idgen"
	"livestock-app/dto"
	"livestock-app/models"
	"livestock-app/workflow"

	"gorm.io/gorm"
)

type ProcurementService struct {
	DB *gorm.DB
}

func NewProcurementService(db *gorm.DB) *ProcurementService {
	return &ProcurementService{DB: db}
}

type RequirementProgress struct {
	models.ProcurementDetail
	Selected   int64 `json:"selected"`
	HandedOver int64 `json:"handed_over"`
}

type ProcurementView struct {
	models.ProcurementPackage
	TotalRequired   int                   `json:"total_required"`
	TotalSelected   int64                 `json:"total_selected"`
	TotalHandedOver int64                 `json:"total_handed_over"`
	Progress        []RequirementProgress `json:"progress"`
}

type exportCount struct {
	PackageID uint
	SpeciesID uint
	Status    models.ExportDetailStatus
	Total     int64
}

// exportCounts groups live export details (pending or handed over, batch not cancelled)
// by package and species.
func exportCounts(tx *gorm.DB, packageIDs []uint) ([]exportCount, error) {
	rows := []exportCount{}
	if len(packageIDs) == 0 {
		return rows, nil
	}
	err := tx.Model(&models.BatchExportDetail{}).
		Select("batch_exports.procurement_package_id AS package_id, livestocks.species_id AS species_id, batch_export_details.status AS status, COUNT(*) AS total").
		Joins("JOIN batch_exports ON batch_exports.id = batch_export_details.batch_export_id AND batch_exports.deleted_at IS NULL").
		Joins("JOIN livestocks ON livestocks.id = batch_export_details.livestock_id").
		Where("batch_exports.procurement_package_id IN ?", packageIDs).
		Where("batch_exports.status <> ?", models.BatchExportCancelled).
		Where("batch_export_details.status IN ?", []models.ExportDetailStatus{models.ExportDetailPendingHandover, models.ExportDetailHandedOver}).
		Group("batch_exports.procurement_package_id, livestocks.species_id, batch_export_details.status").
		Scan(&rows).Error
	return rows, err
}

func buildView(pkg models.ProcurementPackage, counts []exportCount) ProcurementView {
	view := ProcurementView{ProcurementPackage: pkg, Progress: []RequirementProgress{}}
	for _, d := range pkg.Details {
		progress := RequirementProgress{ProcurementDetail: d}
		for _, c := range counts {
			if c.PackageID != pkg.ID || c.SpeciesID != d.SpeciesID {
				continue
			}
			progress.Selected += c.Total
			if c.Status == models.ExportDetailHandedOver {
				progress.HandedOver += c.Total
			}
		}
		view.TotalRequired += d.RequiredQuantity
		view.TotalSelected += progress.Selected
		view.TotalHandedOver += progress.HandedOver
		view.Progress = append(view.Progress, progress)
	}
	return view
}

func (s *ProcurementService) buildDetails(tx *gorm.DB, reqs []dto.ProcurementDetailRequest) ([]models.ProcurementDetail, error) {
	details := make([]models.ProcurementDetail, 0, len(reqs))
	seen := map[uint]bool{}
	for _, r := range reqs {
		if r.RequiredWeightMax > 0 && r.RequiredWeightMin > r.RequiredWeightMax {
			return nil, BadRequest(MsgWeightRange)
		}
		if r.RequiredAgeMax > 0 && r.RequiredAgeMin > r.RequiredAgeMax {
			return nil, BadRequest(MsgAgeRange)
		}
		if seen[r.SpeciesID] {
			return nil, BadRequest("Mỗi loài vật chỉ được khai báo một lần trong gói thầu")
		}
		seen[r.SpeciesID] = true

		var species models.Species
		if err := tx.First(&species, r.SpeciesID).Error; err != nil {
			return nil, notFoundOr(err, MsgSpeciesMissing, "find species")
		}
		details = append(details, models.ProcurementDetail{
			SpeciesID:             r.SpeciesID,
			RequiredQuantity:      r.RequiredQuantity,
			RequiredWeightMin:     r.RequiredWeightMin,
			RequiredWeightMax:     r.RequiredWeightMax,
			RequiredAgeMin:        r.RequiredAgeMin,
			RequiredAgeMax:        r.RequiredAgeMax,
			RequiredInsuranceDays: r.RequiredInsuranceDays,
			Description:           r.Description,
		})
	}
	return details, nil
}

func (s *ProcurementService) Create(ctx context.Context, req dto.ProcurementRequest, actor int) (*models.ProcurementPackage, error) {
	pkg := models.ProcurementPackage{
		Code:            idgen.GenerateCode("PP"),
		Name:            strings.TrimSpace(req.Name),
		Owner:           req.Owner,
		Description:     req.Description,
		ExpiredDuration: req.ExpiredDuration,
		Status:          models.ProcurementBidding,
		CreatedBy:       actor,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		details, err := s.buildDetails(tx, req.Details)
		if err != nil {
			return err
		}
		pkg.Details = details
		if err := tx.Create(&pkg).Error; err != nil {
			return err
		}
		return helpers.InsertTransactionHistory(tx, pkg.Code, string(pkg.Status), models.HistoryTypeProcurement, "created", actor)
	})
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Update rewrites a package and its requirements while it is still being bid on.
func (s *ProcurementService) Update(ctx context.Context, id uint, req dto.ProcurementRequest, actor int) (*models.ProcurementPackage, error) {
	var pkg models.ProcurementPackage
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pkg, id).Error; err != nil {
			return notFoundOr(err, MsgProcurementNotFound, "find procurement")
		}
		if pkg.Status != models.ProcurementBidding {
			return BadRequest(MsgProcurementNotEditable)
		}

		details, err := s.buildDetails(tx, req.Details)
		if err != nil {
			return err
		}
		if err := tx.Where("procurement_package_id = ?", id).Delete(&models.ProcurementDetail{}).Error; err != nil {
			return err
		}
		for i := range details {
			details[i].ProcurementPackageID = id
		}
		if err := tx.Create(&details).Error; err != nil {
			return err
		}

		pkg.Name = strings.TrimSpace(req.Name)
		pkg.Owner = req.Owner
		pkg.Description = req.Description
		pkg.ExpiredDuration = req.ExpiredDuration
		pkg.UpdatedBy = actor
		if err := tx.Save(&pkg).Error; err != nil {
			return err
		}
		pkg.Details = details
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (s *ProcurementService) Get(ctx context.Context, id uint) (*ProcurementView, error) {
	db := s.DB.WithContext(ctx)
	var pkg models.ProcurementPackage
	err := db.Preload("Details.Species").Preload("BatchExports").First(&pkg, id).Error
	if err != nil {
		return nil, notFoundOr(err, MsgProcurementNotFound, "find procurement")
	}

	counts, err := exportCounts(db, []uint{pkg.ID})
	if err != nil {
		return nil, fmt.Errorf("count export details: %w", err)
	}
	view := buildView(pkg, counts)
	return &view, nil
}

func (s *ProcurementService) List(ctx context.Context, status models.ProcurementStatus, keyword string) ([]ProcurementView, error) {
	db := s.DB.WithContext(ctx)
	packages := []models.ProcurementPackage{}
	query := db.Preload("Details.Species")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ? OR LOWER(owner) LIKE ?", like, like, like)
	}
	if err := query.Order("id DESC").Find(&packages).Error; err != nil {
		return nil, fmt.Errorf("list procurements: %w", err)
	}

	ids := make([]uint, 0, len(packages))
	for _, p := range packages {
		ids = append(ids, p.ID)
	}
	counts, err := exportCounts(db, ids)
	if err != nil {
		return nil, fmt.Errorf("count export details: %w", err)
	}

	views := make([]ProcurementView, 0, len(packages))
	for _, p := range packages {
		views = append(views, buildView(p, counts))
	}
	return views, nil
}

func (s *ProcurementService) Delete(ctx context.Context, id uint, actor int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pkg models.ProcurementPackage
		if err := tx.First(&pkg, id).Error; err != nil {
			return notFoundOr(err, MsgProcurementNotFound, "find procurement")
		}
		if pkg.Status != models.ProcurementBidding {
			return BadRequest(MsgProcurementNotEditable)
		}
		if err := tx.Where("procurement_package_id = ?", id).Delete(&models.ProcurementDetail{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&pkg).Update("deleted_by", actor).Error; err != nil {
			return err
		}
		return tx.Delete(&pkg).Error
	})
}

// transition loads the package, validates from -> to, lets apply adjust related rows and
// stamps, then saves the package and writes the history row.
func (s *ProcurementService) transition(ctx context.Context, id uint, to models.ProcurementStatus, actor int,
	apply func(tx *gorm.DB, pkg *models.ProcurementPackage, now time.Time) error) (*models.ProcurementPackage, error) {
	var pkg models.ProcurementPackage
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pkg, id).Error; err != nil {
			return notFoundOr(err, MsgProcurementNotFound, "find procurement")
		}
		from := pkg.Status
		if !workflow.Procurement.CanTransition(from, to) {
			return workflow.Procurement.Transition(from, to)
		}

		now := time.Now()
		if err := apply(tx, &pkg, now); err != nil {
			return err
		}
		if err := workflow.Procurement.Transition(from, to); err != nil {
			return err
		}

		pkg.Status = to
		pkg.UpdatedBy = actor
		if err := tx.Save(&pkg).Error; err != nil {
			return err
		}
		return helpers.InsertTransactionHistory(tx, pkg.Code, string(to), models.HistoryTypeProcurement,
			transitionDetail(string(from), string(to)), actor)
	})
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Accept marks the bid as won and opens the export batch for the whole required quantity.
func (s *ProcurementService) Accept(ctx context.Context, id uint, req dto.AcceptProcurementRequest, actor int) (*models.ProcurementPackage, error) {
	return s.transition(ctx, id, models.ProcurementAwarded, actor, func(tx *gorm.DB, pkg *models.ProcurementPackage, now time.Time) error {
		stamp(&pkg.SuccessDate, now)
		stamp(&pkg.ExpirationDate, now.AddDate(0, 0, pkg.ExpiredDuration))

		var total int64
		if err := tx.Model(&models.ProcurementDetail{}).
			Where("procurement_package_id = ?", pkg.ID).
			Select("COALESCE(SUM(required_quantity), 0)").
			Scan(&total).Error; err != nil {
			return err
		}

		customer := req.CustomerName
		if customer == "" {
			customer = pkg.Owner
		}
		batch := models.BatchExport{
			ProcurementPackageID: pkg.ID,
			CustomerName:         customer,
			CustomerPhone:        req.CustomerPhone,
			CustomerAddress:      req.CustomerAddress,
			Total:                int(total),
			Remaining:            int(total),
			Status:               models.BatchExportPending,
			CreatedBy:            actor,
		}
		return tx.Create(&batch).Error
	})
}

func (s *ProcurementService) Reject(ctx context.Context, id uint, actor int) (*models.ProcurementPackage, error) {
	return s.transition(ctx, id, models.ProcurementRejected, actor, func(tx *gorm.DB, pkg *models.ProcurementPackage, now time.Time) error {
		stamp(&pkg.RejectedAt, now)
		return nil
	})
}

// Cancel also cancels export batches that have not started handing over.
func (s *ProcurementService) Cancel(ctx context.Context, id uint, actor int) (*models.ProcurementPackage, error) {
	return s.transition(ctx, id, models.ProcurementCancelled, actor, func(tx *gorm.DB, pkg *models.ProcurementPackage, now time.Time) error {
		stamp(&pkg.CancelledAt, now)

		batches := []models.BatchExport{}
		if err := tx.Where("procurement_package_id = ? AND status = ?", pkg.ID, models.BatchExportPending).Find(&batches).Error; err != nil {
			return err
		}
		for i := range batches {
			if err := workflow.BatchExport.Transition(batches[i].Status, models.BatchExportCancelled); err != nil {
				return err
			}
			batches[i].Status = models.BatchExportCancelled
			stamp(&batches[i].CancelledAt, now)
			batches[i].UpdatedBy = actor
			if err := tx.Save(&batches[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Complete closes a package once every non-cancelled export batch is completed.
func (s *ProcurementService) Complete(ctx context.Context, id uint, actor int) (*models.ProcurementPackage, error) {
	return s.transition(ctx, id, models.ProcurementCompleted, actor, func(tx *gorm.DB, pkg *models.ProcurementPackage, now time.Time) error {
		var open int64
		if err := tx.Model(&models.BatchExport{}).
			Where("procurement_package_id = ?", pkg.ID).
			Where("status NOT IN ?", []models.BatchExportStatus{models.BatchExportCompleted, models.BatchExportCancelled}).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return BadRequest(MsgProcurementUnfinished)
		}
		stamp(&pkg.CompletionDate, now)
		return nil
	})
}
