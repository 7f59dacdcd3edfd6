package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin      = "ADMIN"
	RoleUser       = "USER"
	RoleInstructor = "INSTRUCTOR"
	RoleAuthor     = "AUTHOR"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusBanned   = "BANNED"
)

type User struct {
	gorm.Model
	Name     string `gorm:"size:50" json:"name"`
	Username string `gorm:"size:30;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"default:USER" json:"role"`   // ADMIN, USER, INSTRUCTOR, AUTHOR
	Status   string `gorm:"default:ACTIVE" json:"status"` // ACTIVE, INACTIVE, BANNED
}

// BanRecord is created together with flipping User.Status to BANNED. The
// email column carries the unique index so a user cannot be banned twice.
type BanRecord struct {
	gorm.Model
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Reason      string     `gorm:"not null" json:"reason"`
	BannedBy    uint       `json:"banned_by"`
	IsPermanent bool       `gorm:"default:false" json:"is_permanent"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}
