package repositories

import (
	"livestock-app/dto"
	"livestock-app/models"
	"strings"

	"gorm.io/gorm"
)

type LivestockRepository struct {
	db *gorm.DB
}

func NewLivestockRepository(db *gorm.DB) *LivestockRepository {
	return &LivestockRepository{db: db}
}

type StatusCount struct {
	Status models.LivestockStatus `json:"status"`
	Total  int64                  `json:"total"`
}

// filtered builds the list query. Records without an inspection code never show up
// in listings.
func (r *LivestockRepository) filtered(filter dto.LivestockFilter) *gorm.DB {
	query := r.db.Model(&models.Livestock{}).
		Where("livestocks.inspection_code IS NOT NULL AND livestocks.inspection_code <> ''")

	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(livestocks.inspection_code) LIKE ? OR LOWER(livestocks.color) LIKE ? OR LOWER(livestocks.origin) LIKE ?", like, like, like)
	}
	if len(filter.SpeciesIDs) > 0 {
		query = query.Where("livestocks.species_id IN ?", filter.SpeciesIDs)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("livestocks.status IN ?", filter.Statuses)
	}
	if filter.BarnID != nil {
		query = query.Where("livestocks.barn_id = ?", *filter.BarnID)
	}
	if filter.MinWeight != nil {
		query = query.Where("livestocks.weight_origin >= ?", *filter.MinWeight)
	}
	if filter.MaxWeight != nil {
		query = query.Where("livestocks.weight_origin <= ?", *filter.MaxWeight)
	}
	return query
}

// List returns one page plus the total number of matching rows. PageSize <= 0 returns everything.
func (r *LivestockRepository) List(filter dto.LivestockFilter) ([]models.Livestock, int64, error) {
	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.filtered(filter).Preload("Species").Preload("Barn").Order("livestocks.id DESC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	livestocks := []models.Livestock{}
	if err := query.Find(&livestocks).Error; err != nil {
		return nil, 0, err
	}
	return livestocks, total, nil
}

func (r *LivestockRepository) GetByID(id uint) (*models.Livestock, error) {
	var livestock models.Livestock
	if err := r.db.Preload("Species").Preload("Barn").First(&livestock, id).Error; err != nil {
		return nil, err
	}
	return &livestock, nil
}

// InspectionCodeTaken reports whether another livestock already carries the code.
func (r *LivestockRepository) InspectionCodeTaken(code string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Livestock{}).Where("inspection_code = ?", code)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *LivestockRepository) CountByStatus() ([]StatusCount, error) {
	counts := []StatusCount{}
	err := r.db.Model(&models.Livestock{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Order("status").
		Scan(&counts).Error
	return counts, err
}

// InActiveWorkflow reports whether the livestock is held by a pending export detail,
// a pending order detail or an open insurance claim.
func (r *LivestockRepository) InActiveWorkflow(livestockID uint) (bool, error) {
	var count int64

	err := r.db.Model(&models.BatchExportDetail{}).
		Joins("JOIN batch_exports ON batch_exports.id = batch_export_details.batch_export_id AND batch_exports.deleted_at IS NULL").
		Where("batch_export_details.livestock_id = ?", livestockID).
		Where("batch_export_details.status = ?", models.ExportDetailPendingHandover).
		Where("batch_exports.status <> ?", models.BatchExportCancelled).
		Count(&count).Error
	if err != nil || count > 0 {
		return count > 0, err
	}

	err = r.db.Model(&models.OrderDetail{}).
		Joins("JOIN orders ON orders.id = order_details.order_id AND orders.deleted_at IS NULL").
		Where("order_details.livestock_id = ?", livestockID).
		Where("order_details.status = ?", models.ExportDetailPendingHandover).
		Where("orders.status <> ?", models.OrderCancelled).
		Count(&count).Error
	if err != nil || count > 0 {
		return count > 0, err
	}

	err = r.db.Model(&models.InsuranceRequest{}).
		Where("livestock_id = ? OR new_livestock_id = ?", livestockID, livestockID).
		Where("status IN ?", models.OpenInsuranceStatuses).
		Count(&count).Error
	return count > 0, err
}

// ReferencedByRecords reports whether any export, order, vaccination, import or insurance row points at the livestock.
func (r *LivestockRepository) ReferencedByRecords(livestockID uint) (bool, error) {
	checks := []struct {
		model interface{}
		where string
	}{
		{&models.BatchExportDetail{}, "livestock_id = ?"},
		{&models.OrderDetail{}, "livestock_id = ?"},
		{&models.LivestockVaccination{}, "livestock_id = ?"},
		{&models.BatchImportDetail{}, "livestock_id = ?"},
		{&models.InsuranceRequest{}, "livestock_id = ? OR new_livestock_id = ?"},
	}

	for _, check := range checks {
		var count int64
		args := []interface{}{livestockID}
		if strings.Count(check.where, "?") == 2 {
			args = append(args, livestockID)
		}
		if err := r.db.Model(check.model).Where(check.where, args...).Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
