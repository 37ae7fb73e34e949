package services

import (
	"context"
	"fmt"
	"time"

	"livestock-app/config"
	"livestock-app/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService struct {
	DB    *gorm.DB
	Users *UserService
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db, Users: NewUserService(db)}
}

type LoginResult struct {
	Token       string       `json:"x_token"`
	SessionID   string       `json:"session_id"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *models.User `json:"user"`
	Permissions []string     `json:"permissions"`
}

// Login membuat session baru dan access token JWT. Session lama user tetap aktif.
func (s *AuthService) Login(ctx context.Context, login, password, ip, userAgent string) (*LoginResult, error) {
	user, err := s.Users.Authenticate(ctx, login, password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(config.JWTExpiration) * time.Second)
	session := models.UserSession{
		UserID:         user.ID,
		SessionID:      uuid.NewString(),
		IPAddress:      ip,
		UserAgent:      userAgent,
		IsActive:       true,
		LastActivityAt: now,
		ExpiresAt:      expiresAt,
	}
	if err := s.DB.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	permissions := user.PermissionNames()
	token, err := SignToken(user.ID, session.SessionID, permissions, expiresAt)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:       token,
		SessionID:   session.SessionID,
		ExpiresAt:   expiresAt,
		User:        user,
		Permissions: permissions,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	result := s.DB.WithContext(ctx).Model(&models.UserSession{}).
		Where("session_id = ? AND is_active = ?", sessionID, true).
		Updates(map[string]interface{}{"is_active": false, "last_activity_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("close session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return Unauthorized("invalid session")
	}
	return nil
}

func SignToken(userID uint, sessionID string, permissions []string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    userID,
		"session_id": sessionID,
		"Permission": permissions,
		"exp":        expiresAt.Unix(),
		"jti":        uuid.NewString(),
	})
	signed, err := token.SignedString([]byte(config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
