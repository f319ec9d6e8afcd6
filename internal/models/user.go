package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// AnonymousUserID identifies the reserved row that owns donations made
// without an account. It is created by database.Migrate.
var AnonymousUserID = uuid.MustParse("00000000-0000-0000-0000-00000000a0a0")

const AnonymousUserEmail = "anonymous@donations.invalid"

type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string     `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password      string     `gorm:"not null;default:''" json:"-"`
	Name          string     `gorm:"size:255" json:"name"`
	Role          string     `gorm:"size:20;not null;default:'user'" json:"role"`
	IsActive      bool       `gorm:"not null" json:"isActive"`
	LoginAttempts int        `gorm:"not null;default:0" json:"-"`
	LockedUntil   *time.Time `json:"-"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the role grants access to the admin panel.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}
