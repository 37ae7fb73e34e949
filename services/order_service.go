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
	"livestock-app/repositories"
	"livestock-app/workflow"

	"gorm.io/gorm"
)

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type OrderRequirementProgress struct {
	models.OrderRequirement
	Fulfilled int `json:"fulfilled"`
}

type OrderView struct {
	models.Order
	Progress []OrderRequirementProgress `json:"progress"`
}

func buildRequirements(tx *gorm.DB, reqs []dto.OrderRequirementRequest) ([]models.OrderRequirement, error) {
	requirements := make([]models.OrderRequirement, 0, len(reqs))
	for _, r := range reqs {
		if r.WeightTo > 0 && r.WeightFrom > r.WeightTo {
			return nil, BadRequest(MsgWeightRange)
		}
		var species models.Species
		if err := tx.First(&species, r.SpeciesID).Error; err != nil {
			return nil, notFoundOr(err, MsgSpeciesMissing, "find species")
		}
		requirements = append(requirements, models.OrderRequirement{
			SpeciesID:   r.SpeciesID,
			Quantity:    r.Quantity,
			WeightFrom:  r.WeightFrom,
			WeightTo:    r.WeightTo,
			Description: r.Description,
		})
	}
	return requirements, nil
}

// sameRequirements bandingkan isi requirement tanpa ID.
func sameRequirements(current, requested []models.OrderRequirement) bool {
	if len(current) != len(requested) {
		return false
	}
	for i := range current {
		a, b := current[i], requested[i]
		if a.SpeciesID != b.SpeciesID || a.Quantity != b.Quantity ||
			a.WeightFrom != b.WeightFrom || a.WeightTo != b.WeightTo || a.Description != b.Description {
			return false
		}
	}
	return true
}

func (s *OrderService) Create(ctx context.Context, req dto.OrderRequest, actor int) (*models.Order, error) {
	order := models.Order{
		Code:          idgen.GenerateCode("OD"),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		InsuranceDays: req.InsuranceDays,
		Status:        models.OrderNew,
		CreatedBy:     actor,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requirements, err := buildRequirements(tx, req.Requirements)
		if err != nil {
			return err
		}
		order.Requirements = requirements
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return helpers.InsertTransactionHistory(tx, order.Code, string(order.Status), models.HistoryTypeOrder, "created", actor)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) Update(ctx context.Context, id uint, req dto.OrderRequest, actor int) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return notFoundOr(err, MsgOrderNotFound, "find order")
		}
		if order.Status != models.OrderNew {
			return BadRequest(MsgOrderNotEditable)
		}

		var details int64
		if err := tx.Model(&models.OrderDetail{}).Where("order_id = ?", id).Count(&details).Error; err != nil {
			return err
		}

		requirements, err := buildRequirements(tx, req.Requirements)
		if err != nil {
			return err
		}
		if details > 0 {
			var current []models.OrderRequirement
			if err := tx.Where("order_id = ?", id).Order("id").Find(&current).Error; err != nil {
				return err
			}
			if !sameRequirements(current, requirements) {
				return BadRequest(MsgOrderRequirementsLocked)
			}
		} else {
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderRequirement{}).Error; err != nil {
				return err
			}
			for i := range requirements {
				requirements[i].OrderID = id
			}
			if err := tx.Create(&requirements).Error; err != nil {
				return err
			}
		}

		order.CustomerName = strings.TrimSpace(req.CustomerName)
		order.Phone = req.Phone
		order.Email = req.Email
		order.Address = req.Address
		order.InsuranceDays = req.InsuranceDays
		order.UpdatedBy = actor
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (*OrderView, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Preload("Requirements.Species").
		Preload("Details", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("id")
		}).
		Preload("Details.Livestock").
		First(&order, id).Error
	if err != nil {
		return nil, notFoundOr(err, MsgOrderNotFound, "find order")
	}

	view := &OrderView{Order: order, Progress: []OrderRequirementProgress{}}
	for _, r := range order.Requirements {
		progress := OrderRequirementProgress{OrderRequirement: r}
		for _, d := range order.Details {
			if d.OrderRequirementID == r.ID && d.Status != models.ExportDetailReplaced {
				progress.Fulfilled++
			}
		}
		view.Progress = append(view.Progress, progress)
	}
	return view, nil
}

func (s *OrderService) List(ctx context.Context, status models.OrderStatus, keyword string) ([]models.Order, error) {
	orders := []models.Order{}
	query := s.DB.WithContext(ctx).Preload("Requirements")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(customer_name) LIKE ? OR phone LIKE ?", like, like, like)
	}
	if err := query.Order("id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) Delete(ctx context.Context, id uint, actor int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			return notFoundOr(err, MsgOrderNotFound, "find order")
		}
		if order.Status != models.OrderNew {
			return BadRequest(MsgOrderNotEditable)
		}
		var details int64
		if err := tx.Model(&models.OrderDetail{}).Where("order_id = ?", id).Count(&details).Error; err != nil {
			return err
		}
		if details > 0 {
			return BadRequest(MsgOrderNotEditable)
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderRequirement{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&order).Update("deleted_by", actor).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// AddDetail attaches a livestock to the first requirement of its species that still has
// room and whose weight range it fits.
func (s *OrderService) AddDetail(ctx context.Context, orderID uint, req dto.ExportDetailRequest, actor int) (*models.OrderDetail, error) {
	if req.PriceUnit.IsNegative() {
		return nil, BadRequest(MsgInvalidPrice)
	}

	var detail models.OrderDetail
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return notFoundOr(err, MsgOrderNotFound, "find order")
		}
		if order.Status != models.OrderNew && order.Status != models.OrderPreparing {
			return BadRequest(MsgOrderLocked)
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

		weight := req.WeightExport
		if weight == 0 {
			weight = livestock.WeightEstimate
		}

		requirements := []models.OrderRequirement{}
		if err := tx.Where("order_id = ? AND species_id = ?", orderID, livestock.SpeciesID).Order("id").Find(&requirements).Error; err != nil {
			return err
		}

		var matched *models.OrderRequirement
		for i := range requirements {
			r := &requirements[i]
			if (r.WeightFrom > 0 && weight < r.WeightFrom) || (r.WeightTo > 0 && weight > r.WeightTo) {
				continue
			}
			var used int64
			if err := tx.Model(&models.OrderDetail{}).
				Where("order_requirement_id = ? AND status <> ?", r.ID, models.ExportDetailReplaced).
				Count(&used).Error; err != nil {
				return err
			}
			if used < int64(r.Quantity) {
				matched = r
				break
			}
		}
		if matched == nil {
			return BadRequest(MsgOrderNotMatched)
		}

		detail = models.OrderDetail{
			OrderID:            orderID,
			OrderRequirementID: matched.ID,
			LivestockID:        livestock.ID,
			PriceUnit:          req.PriceUnit,
			WeightExport:       weight,
			Status:             models.ExportDetailPendingHandover,
			CreatedBy:          actor,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return err
		}
		return tx.Model(&livestock).Updates(map[string]interface{}{
			"status":        models.LivestockWaitingExport,
			"weight_export": weight,
			"updated_by":    actor,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *OrderService) RemoveDetail(ctx context.Context, orderID, detailID uint, actor int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return notFoundOr(err, MsgOrderNotFound, "find order")
		}
		if order.Status != models.OrderNew && order.Status != models.OrderPreparing {
			return BadRequest(MsgOrderLocked)
		}

		var detail models.OrderDetail
		if err := tx.Where("order_id = ?", orderID).First(&detail, detailID).Error; err != nil {
			return notFoundOr(err, MsgOrderDetailNotFound, "find order detail")
		}

		if err := tx.Model(&models.Livestock{}).
			Where("id = ? AND status = ?", detail.LivestockID, models.LivestockWaitingExport).
			Updates(map[string]interface{}{"status": models.LivestockHealthy, "updated_by": actor}).Error; err != nil {
			return err
		}
		if err := tx.Model(&detail).Update("deleted_by", actor).Error; err != nil {
			return err
		}
		return tx.Delete(&detail).Error
	})
}

// ChangeStatus moves the order along its lifecycle. Delivering stamps the export date on
// the details, completing hands them over with the insurance expiry and marks the
// livestock exported, cancelling releases the reserved livestock.
func (s *OrderService) ChangeStatus(ctx context.Context, id uint, to models.OrderStatus, actor int) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return notFoundOr(err, MsgOrderNotFound, "find order")
		}
		from := order.Status
		if !workflow.Order.CanTransition(from, to) {
			return workflow.Order.Transition(from, to)
		}

		details := []models.OrderDetail{}
		if err := tx.Where("order_id = ? AND status = ?", id, models.ExportDetailPendingHandover).Find(&details).Error; err != nil {
			return err
		}

		now := time.Now()
		switch to {
		case models.OrderPreparing:
			stamp(&order.PreparedAt, now)
		case models.OrderDelivering:
			if len(details) == 0 {
				return BadRequest(MsgOrderEmpty)
			}
			stamp(&order.DeliveredAt, now)
			for i := range details {
				stamp(&details[i].ExportDate, now)
				details[i].UpdatedBy = actor
				if err := tx.Save(&details[i]).Error; err != nil {
					return err
				}
			}
		case models.OrderCompleted:
			stamp(&order.CompletedAt, now)
			for i := range details {
				d := &details[i]
				stamp(&d.ExportDate, now)
				stamp(&d.ExpiredInsuranceDate, now.AddDate(0, 0, order.InsuranceDays))
				d.Status = models.ExportDetailHandedOver
				d.UpdatedBy = actor
				if err := tx.Save(d).Error; err != nil {
					return err
				}

				var livestock models.Livestock
				if err := tx.First(&livestock, d.LivestockID).Error; err != nil {
					return notFoundOr(err, MsgLivestockNotFound, "find livestock")
				}
				stamp(&livestock.ExportedAt, now)
				if err := tx.Model(&livestock).Updates(map[string]interface{}{
					"status":        models.LivestockExported,
					"exported_at":   livestock.ExportedAt,
					"weight_export": d.WeightExport,
					"updated_by":    actor,
				}).Error; err != nil {
					return err
				}
			}
		case models.OrderCancelled:
			stamp(&order.CancelledAt, now)
			for _, d := range details {
				if err := tx.Model(&models.Livestock{}).
					Where("id = ? AND status = ?", d.LivestockID, models.LivestockWaitingExport).
					Updates(map[string]interface{}{"status": models.LivestockHealthy, "updated_by": actor}).Error; err != nil {
					return err
				}
			}
		}

		if err := workflow.Order.Transition(from, to); err != nil {
			return err
		}
		order.Status = to
		order.UpdatedBy = actor
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		return helpers.InsertTransactionHistory(tx, order.Code, string(to), models.HistoryTypeOrder,
			transitionDetail(string(from), string(to)), actor)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
