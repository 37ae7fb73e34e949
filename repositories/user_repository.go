package repositories

import (
	"livestock-app/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(DB *gorm.DB) *UserRepository {
	return &UserRepository{DB: DB}
}

// Create user
func (r *UserRepository) Create(user *models.User) error {
	return r.DB.Create(user).Error
}

// Get user by ID, roles and their permissions included
func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.DB.Preload("Roles.Permissions").First(&user, id).Error
	return &user, err
}

// FindByLogin looks a user up by email or username.
func (r *UserRepository) FindByLogin(login string) (*models.User, error) {
	var user models.User
	err := r.DB.Preload("Roles.Permissions").
		Where("email = ? OR username = ?", login, login).
		First(&user).Error
	return &user, err
}

func (r *UserRepository) Exists(username, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&models.User{}).Where("username = ? OR email = ?", username, email)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Get all users
func (r *UserRepository) GetAll() ([]models.User, error) {
	users := []models.User{}
	err := r.DB.Preload("Roles").Order("id").Find(&users).Error
	return users, err
}

// Update user
func (r *UserRepository) Update(user *models.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) ReplaceRoles(user *models.User, roleIDs []uint) error {
	roles := []models.Role{}
	if len(roleIDs) > 0 {
		if err := r.DB.Where("id IN ?", roleIDs).Find(&roles).Error; err != nil {
			return err
		}
	}
	return r.DB.Model(user).Association("Roles").Replace(roles)
}

// Delete user
func (r *UserRepository) Delete(id uint, actor int) error {
	if err := r.DB.Model(&models.User{}).Where("id = ?", id).Update("deleted_by", actor).Error; err != nil {
		return err
	}
	return r.DB.Delete(&models.User{}, id).Error
}
