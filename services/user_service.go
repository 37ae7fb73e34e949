package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"livestock-app/dto"
	"livestock-app/models"
	"livestock-app/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *UserService) Create(ctx context.Context, req dto.UserRequest, actor int) (*models.User, error) {
	if req.Password == "" {
		return nil, BadRequest(MsgPasswordRequired)
	}

	var user *models.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewUserRepository(tx)
		exists, err := repo.Exists(req.Username, req.Email, 0)
		if err != nil {
			return fmt.Errorf("check user: %w", err)
		}
		if exists {
			return Conflict(MsgUserExists)
		}

		hashed, err := HashPassword(req.Password)
		if err != nil {
			return err
		}
		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}
		user = &models.User{
			Username:  strings.TrimSpace(req.Username),
			Password:  hashed,
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.TrimSpace(req.Email),
			Phone:     req.Phone,
			IsActive:  active,
			CreatedBy: actor,
		}
		if err := repo.Create(user); err != nil {
			return err
		}
		// gorm skips false on create because of the column default
		if !active {
			if err := tx.Model(user).Update("is_active", false).Error; err != nil {
				return err
			}
		}
		if err := repo.ReplaceRoles(user, req.RoleIDs); err != nil {
			return err
		}
		user, err = repo.GetByID(user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, req dto.UserRequest, actor int) (*models.User, error) {
	var user *models.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewUserRepository(tx)
		current, err := repo.GetByID(id)
		if err != nil {
			return notFoundOr(err, MsgUserNotFound, "find user")
		}
		exists, err := repo.Exists(req.Username, req.Email, id)
		if err != nil {
			return fmt.Errorf("check user: %w", err)
		}
		if exists {
			return Conflict(MsgUserExists)
		}

		updates := map[string]interface{}{
			"username":   strings.TrimSpace(req.Username),
			"name":       strings.TrimSpace(req.Name),
			"email":      strings.TrimSpace(req.Email),
			"phone":      req.Phone,
			"updated_by": actor,
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}
		if req.Password != "" {
			hashed, err := HashPassword(req.Password)
			if err != nil {
				return err
			}
			updates["password"] = hashed
		}
		if err := tx.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if req.RoleIDs != nil {
			if err := repo.ReplaceRoles(current, req.RoleIDs); err != nil {
				return err
			}
		}
		user, err = repo.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := repositories.NewUserRepository(s.DB.WithContext(ctx)).GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, MsgUserNotFound, "find user")
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := repositories.NewUserRepository(s.DB.WithContext(ctx)).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Delete(ctx context.Context, id uint, actor int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewUserRepository(tx)
		user, err := repo.GetByID(id)
		if err != nil {
			return notFoundOr(err, MsgUserNotFound, "find user")
		}
		if err := tx.Model(user).Association("Roles").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&models.UserSession{}).Where("user_id = ?", id).Update("is_active", false).Error; err != nil {
			return err
		}
		return repo.Delete(id, actor)
	})
}

// Authenticate memeriksa login (email atau username) dan password
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	user, err := repositories.NewUserRepository(s.DB.WithContext(ctx)).FindByLogin(strings.TrimSpace(login))
	if err != nil {
		return nil, notFoundOrUnauthorized(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, Unauthorized(MsgInvalidLogin)
	}
	if !user.IsActive {
		return nil, Unauthorized(MsgUserInactive)
	}
	return user, nil
}

func notFoundOrUnauthorized(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Unauthorized(MsgInvalidLogin)
	}
	return fmt.Errorf("find user: %w", err)
}
