package user

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrValidation         = errors.New("invalid user input")
	ErrDuplicatePhone     = errors.New("phone number already registered")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrSuspended          = errors.New("user account is suspended")
)

type Role string

const (
	RoleMember    Role = "member"
	RoleLeader    Role = "leader"
	RoleTreasurer Role = "treasurer"
	RoleAdmin     Role = "admin"
	RoleAuditor   Role = "auditor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleLeader, RoleTreasurer, RoleAdmin, RoleAuditor:
		return true
	}
	return false
}

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

type User struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	UserID string `gorm:"size:36;uniqueIndex:ux_users_user_id" json:"user_id"`
	Name   string `gorm:"size:255" json:"name"`
	Phone  string `gorm:"size:20;uniqueIndex:ux_users_phone_active" json:"phone"`
	Email  string `gorm:"size:255" json:"email,omitempty"`
	// PasswordHash is a bcrypt digest; never serialized.
	PasswordHash string `gorm:"size:255;column:password_hash" json:"-"`
	Role         Role   `gorm:"type:enum('member','leader','treasurer','admin','auditor');default:'member'" json:"role"`
	Status       Status `gorm:"type:enum('active','suspended');default:'active'" json:"status"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
