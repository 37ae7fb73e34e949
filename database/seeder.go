// database/seeder.go
package database

import (
	"errors"

	"livestock-app/farm/master/supplier"
	"livestock-app/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var Permissions = []models.Permission{
	{Name: "barn.view", Description: "Xem trang trại"},
	{Name: "barn.manage", Description: "Quản lý trang trại"},
	{Name: "species.view", Description: "Xem loài vật"},
	{Name: "species.manage", Description: "Quản lý loài vật"},
	{Name: "livestock.view", Description: "Xem vật nuôi"},
	{Name: "livestock.manage", Description: "Quản lý vật nuôi"},
	{Name: "medical.view", Description: "Xem thuốc và bệnh"},
	{Name: "medical.manage", Description: "Quản lý thuốc và bệnh"},
	{Name: "vaccination.view", Description: "Xem lô tiêm"},
	{Name: "vaccination.manage", Description: "Quản lý lô tiêm"},
	{Name: "supplier.view", Description: "Xem nhà cung cấp"},
	{Name: "supplier.manage", Description: "Quản lý nhà cung cấp"},
	{Name: "import.view", Description: "Xem lô nhập"},
	{Name: "import.manage", Description: "Quản lý lô nhập"},
	{Name: "procurement.view", Description: "Xem gói thầu"},
	{Name: "procurement.manage", Description: "Quản lý gói thầu"},
	{Name: "export.view", Description: "Xem lô xuất"},
	{Name: "export.manage", Description: "Quản lý lô xuất"},
	{Name: "order.view", Description: "Xem đơn hàng"},
	{Name: "order.manage", Description: "Quản lý đơn hàng"},
	{Name: "insurance.view", Description: "Xem yêu cầu bảo hành"},
	{Name: "insurance.manage", Description: "Quản lý yêu cầu bảo hành"},
	{Name: "user.view", Description: "Xem người dùng"},
	{Name: "user.manage", Description: "Quản lý người dùng"},
	{Name: "role.view", Description: "Xem vai trò"},
	{Name: "role.manage", Description: "Quản lý vai trò và phân quyền"},
	{Name: "history.view", Description: "Xem lịch sử giao dịch"},
}

func RunSeeders(db *gorm.DB) {
	SeedPermissions(db)
	SeedAdmin(db)
	SeedSpecies(db)
	supplier.SeedSupplier(db)
}

func SeedPermissions(db *gorm.DB) {
	for _, p := range Permissions {
		var existing models.Permission
		err := db.Where("name = ?", p.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&p).Error; err != nil {
				zap.L().Warn("Gagal insert permission", zap.String("name", p.Name), zap.Error(err))
			}
		}
	}
}

// SeedAdmin membuat role ADMIN dengan semua permission dan user admin default
func SeedAdmin(db *gorm.DB) {
	var role models.Role
	err := db.Where("name = ?", "ADMIN").First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		role = models.Role{Name: "ADMIN", Description: "Quản trị hệ thống"}
		if err := db.Create(&role).Error; err != nil {
			zap.L().Warn("Gagal insert role", zap.String("name", role.Name), zap.Error(err))
			return
		}
	}

	all := []models.Permission{}
	if err := db.Find(&all).Error; err == nil {
		if err := db.Model(&role).Association("Permissions").Replace(all); err != nil {
			zap.L().Warn("Gagal assign permission", zap.String("role", role.Name), zap.Error(err))
		}
	}

	var existing models.User
	err = db.Where("email = ?", "admin@example.com").First(&existing).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Warn("Gagal hash password admin", zap.Error(err))
		return
	}
	user := models.User{
		Username: "admin",
		Password: string(hashed),
		Name:     "Admin",
		Email:    "admin@example.com",
		IsActive: true,
		Roles:    []models.Role{role},
	}
	if err := db.Create(&user).Error; err != nil {
		zap.L().Warn("Gagal insert user", zap.String("username", user.Username), zap.Error(err))
		return
	}
	zap.L().Info("Insert user", zap.String("username", user.Username))
}

func SeedSpecies(db *gorm.DB) {
	species := []models.Species{
		{Name: "Bò", Description: "Bò thịt", GrowthRate: 0.8, DressingPercentage: 52},
		{Name: "Dê", Description: "Dê thịt", GrowthRate: 0.15, DressingPercentage: 45},
		{Name: "Cừu", Description: "Cừu thịt", GrowthRate: 0.2, DressingPercentage: 48},
	}

	for _, s := range species {
		var existing models.Species
		err := db.Where("name = ?", s.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&s).Error; err != nil {
				zap.L().Warn("Gagal insert species", zap.String("name", s.Name), zap.Error(err))
			}
		}
	}
}
