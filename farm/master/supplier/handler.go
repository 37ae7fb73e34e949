package supplier

import (
	"errors"
	"strings"

	"livestock-app/controllers/helpers"
	"livestock-app/dto"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SupplierHandler struct {
	DB *gorm.DB
}

func NewSupplierHandler(db *gorm.DB) *SupplierHandler {
	return &SupplierHandler{DB: db}
}

const (
	msgNotFound = "Không tìm thấy nhà cung cấp"
	msgExists   = "Mã nhà cung cấp đã tồn tại"
	msgInUse    = "Nhà cung cấp đang được sử dụng trong hệ thống, không thể xóa."
)

func (h *SupplierHandler) codeTaken(code string, excludeID uint) (bool, error) {
	var count int64
	query := h.DB.Model(&Supplier{}).Where("code = ?", code)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (h *SupplierHandler) GetAllSuppliers(ctx *fiber.Ctx) error {
	suppliers := []Supplier{}
	query := h.DB.WithContext(ctx.UserContext())
	if keyword := strings.TrimSpace(ctx.Query("keyword")); keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}
	if err := query.Order("code").Find(&suppliers).Error; err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Suppliers retrieved successfully", suppliers)
}

func (h *SupplierHandler) GetSupplierByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}

	var s Supplier
	if err := h.DB.WithContext(ctx.UserContext()).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.ErrorResponse(ctx, fiber.NewError(fiber.StatusNotFound, msgNotFound))
		}
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Supplier found", s)
}

func (h *SupplierHandler) CreateSupplier(ctx *fiber.Ctx) error {
	var req dto.SupplierRequest
	if err := ctx.BodyParser(&req); err != nil {
		return helpers.BadRequest(ctx, err.Error())
	}
	if err := dto.Validate(req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	taken, err := h.codeTaken(code, 0)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if taken {
		return helpers.ErrorResponse(ctx, fiber.NewError(fiber.StatusConflict, msgExists))
	}

	s := Supplier{
		Code:      code,
		Name:      strings.TrimSpace(req.Name),
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedBy: helpers.UserID(ctx),
	}
	if err := h.DB.WithContext(ctx.UserContext()).Create(&s).Error; err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Supplier created successfully", s)
}

func (h *SupplierHandler) UpdateSupplier(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}

	var req dto.SupplierRequest
	if err := ctx.BodyParser(&req); err != nil {
		return helpers.BadRequest(ctx, err.Error())
	}
	if err := dto.Validate(req); err != nil {
		return helpers.ErrorResponse(ctx, err)
	}

	var s Supplier
	if err := h.DB.WithContext(ctx.UserContext()).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.ErrorResponse(ctx, fiber.NewError(fiber.StatusNotFound, msgNotFound))
		}
		return helpers.ErrorResponse(ctx, err)
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	taken, err := h.codeTaken(code, id)
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if taken {
		return helpers.ErrorResponse(ctx, fiber.NewError(fiber.StatusConflict, msgExists))
	}

	s.Code = code
	s.Name = strings.TrimSpace(req.Name)
	s.Phone = req.Phone
	s.Address = req.Address
	s.UpdatedBy = helpers.UserID(ctx)
	if err := h.DB.WithContext(ctx.UserContext()).Save(&s).Error; err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Supplier updated successfully", s)
}

func (h *SupplierHandler) DeleteSupplier(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.ErrorResponse(ctx, err)
	}

	db := h.DB.WithContext(ctx.UserContext())
	var s Supplier
	if err := db.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.ErrorResponse(ctx, fiber.NewError(fiber.StatusNotFound, msgNotFound))
		}
		return helpers.ErrorResponse(ctx, err)
	}

	// Supplier yang sudah dipakai lot import tidak boleh dihapus
	var count int64
	if err := db.Table("batch_imports").Where("supplier_id = ? AND deleted_at IS NULL", id).Count(&count).Error; err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if count > 0 {
		return helpers.ErrorResponse(ctx, fiber.NewError(fiber.StatusBadRequest, msgInUse))
	}

	s.DeletedBy = helpers.UserID(ctx)
	if err := db.Select("deleted_by").Updates(&s).Error; err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	if err := db.Delete(&s).Error; err != nil {
		return helpers.ErrorResponse(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Supplier deleted successfully", nil)
}
