package services

import (
	"context"
	"fmt"
	"strings"

	"livestock-app/dto"
	"livestock-app/models"

	"gorm.io/gorm"
)

type RoleService struct {
	DB *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{DB: db}
}

func (s *RoleService) Create(ctx context.Context, req dto.RoleRequest) (*models.Role, error) {
	role := models.Role{Name: strings.TrimSpace(req.Name), Description: req.Description}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Role{}).Where("LOWER(name) = LOWER(?)", role.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return Conflict(MsgRoleExists)
		}
		return tx.Create(&role).Error
	})
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *RoleService) Update(ctx context.Context, id uint, req dto.RoleRequest) (*models.Role, error) {
	var role models.Role
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&role, id).Error; err != nil {
			return notFoundOr(err, MsgRoleNotFound, "find role")
		}
		name := strings.TrimSpace(req.Name)
		var count int64
		if err := tx.Model(&models.Role{}).Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return Conflict(MsgRoleExists)
		}
		role.Name = name
		role.Description = req.Description
		return tx.Save(&role).Error
	})
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *RoleService) Get(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	if err := s.DB.WithContext(ctx).Preload("Permissions").First(&role, id).Error; err != nil {
		return nil, notFoundOr(err, MsgRoleNotFound, "find role")
	}
	return &role, nil
}

func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	roles := []models.Role{}
	if err := s.DB.WithContext(ctx).Preload("Permissions").Order("id").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// Delete hanya diizinkan bila role belum dipakai user manapun
func (s *RoleService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, id).Error; err != nil {
			return notFoundOr(err, MsgRoleNotFound, "find role")
		}
		var assigned int64
		if err := tx.Table("user_roles").Where("role_id = ?", id).Count(&assigned).Error; err != nil {
			return err
		}
		if assigned > 0 {
			return BadRequest(MsgRoleInUse)
		}
		if err := tx.Model(&role).Association("Permissions").Clear(); err != nil {
			return err
		}
		return tx.Delete(&role).Error
	})
}

func (s *RoleService) ReplacePermissions(ctx context.Context, id uint, req dto.RolePermissionsRequest) (*models.Role, error) {
	var role models.Role
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&role, id).Error; err != nil {
			return notFoundOr(err, MsgRoleNotFound, "find role")
		}
		permissions := []models.Permission{}
		if len(req.PermissionIDs) > 0 {
			if err := tx.Where("id IN ?", req.PermissionIDs).Find(&permissions).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&role).Association("Permissions").Replace(permissions); err != nil {
			return err
		}
		return tx.Preload("Permissions").First(&role, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *RoleService) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	permissions := []models.Permission{}
	if err := s.DB.WithContext(ctx).Order("name").Find(&permissions).Error; err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	return permissions, nil
}
