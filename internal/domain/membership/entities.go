package membership

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("membership not found")
	ErrNotMember     = errors.New("user is not an active member of this group")
	ErrAlreadyMember = errors.New("user already has an active membership in this group")
	ErrGroupFull     = errors.New("group has reached its member limit")
)

type Role string

const (
	RoleMember    Role = "member"
	RoleLeader    Role = "leader"
	RoleTreasurer Role = "treasurer"
	RoleSecretary Role = "secretary"
)

func (r Role) Valid() bool {
	return r == RoleMember || r == RoleLeader || r == RoleTreasurer || r == RoleSecretary
}

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// Membership links a user to a group. The unique index allows one row per
// (user, group) pair; leaving marks the row inactive and rejoining
// reactivates it.
type Membership struct {
	ID           uint64     `gorm:"primaryKey;column:id" json:"-"`
	MembershipID string     `gorm:"size:36;uniqueIndex:ux_memberships_membership_id" json:"membership_id"`
	UserID       string     `gorm:"size:36;index:idx_memberships_user;uniqueIndex:ux_memberships_user_group_active" json:"user_id"`
	GroupID      string     `gorm:"size:36;index:idx_memberships_group;uniqueIndex:ux_memberships_user_group_active" json:"group_id"`
	Role         Role       `gorm:"type:enum('member','leader','treasurer','secretary');default:'member'" json:"role"`
	Status       Status     `gorm:"type:enum('active','inactive','suspended');default:'active'" json:"status"`
	JoinedAt     time.Time  `json:"joined_at"`
	LeftAt       *time.Time `json:"left_at,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Membership) TableName() string { return "memberships" }
