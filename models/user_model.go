package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username  string `json:"username" gorm:"size:50;uniqueIndex"`
	Password  string `json:"-"`
	Name      string `json:"name" gorm:"size:100"`
	Email     string `json:"email" gorm:"size:100;uniqueIndex"`
	Phone     string `json:"phone" gorm:"size:20"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	Roles     []Role `json:"roles" gorm:"many2many:user_roles;"`
	CreatedBy int    `json:"created_by"`
	UpdatedBy int    `json:"updated_by"`
	DeletedBy int    `json:"deleted_by"`
}

// Role Model
type Role struct {
	gorm.Model
	Name        string       `json:"name" gorm:"size:50;uniqueIndex"`
	Description string       `json:"description" gorm:"size:255"`
	Permissions []Permission `json:"permissions" gorm:"many2many:role_permissions;"`
}

// Permission Model
type Permission struct {
	gorm.Model
	Name        string `json:"name" gorm:"size:100;uniqueIndex"`
	Description string `json:"description" gorm:"size:255"`
}

type UserSession struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	SessionID      string    `json:"session_id" gorm:"size:64;uniqueIndex"`
	IPAddress      string    `json:"ip_address" gorm:"size:64"`
	UserAgent      string    `json:"user_agent" gorm:"size:255"`
	IsActive       bool      `json:"is_active"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// PermissionNames flattens the permissions of every role of the user.
func (u User) PermissionNames() []string {
	seen := map[string]bool{}
	names := []string{}
	for _, role := range u.Roles {
		for _, perm := range role.Permissions {
			if !seen[perm.Name] {
				seen[perm.Name] = true
				names = append(names, perm.Name)
			}
		}
	}
	return names
}
