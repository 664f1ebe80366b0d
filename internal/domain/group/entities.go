package group

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("group not found")
	ErrValidation    = errors.New("invalid group input")
	ErrDuplicateName = errors.New("group name already in use")
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusArchived Status = "archived"
)

type MeetingFrequency string

const (
	MeetingWeekly   MeetingFrequency = "weekly"
	MeetingBiweekly MeetingFrequency = "biweekly"
	MeetingMonthly  MeetingFrequency = "monthly"
)

type Group struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"-"`
	GroupID     string `gorm:"size:36;uniqueIndex:ux_groups_group_id" json:"group_id"`
	Name        string `gorm:"size:255;index:idx_groups_name" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Location    string `gorm:"size:255" json:"location,omitempty"`

	// DefaultInterestRate applies to loans that do not name their own rate.
	DefaultInterestRate decimal.Decimal `gorm:"type:decimal(5,2);default:5.00" json:"default_interest_rate"`
	// MaxLoanAmount of zero means no group-level cap.
	MaxLoanAmount decimal.Decimal `gorm:"type:decimal(12,2);default:0.00" json:"max_loan_amount"`
	MaxMembers    int             `gorm:"default:30" json:"max_members"`

	MeetingFrequency MeetingFrequency `gorm:"type:enum('weekly','biweekly','monthly');default:'weekly'" json:"meeting_frequency"`
	MeetingDay       string           `gorm:"size:20" json:"meeting_day,omitempty"`

	Status Status `gorm:"type:enum('active','inactive','archived');default:'active'" json:"status"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Group) TableName() string { return "groups" }

// CapsLoanAmount reports whether the group bounds individual loan sizes.
func (g *Group) CapsLoanAmount() bool { return g.MaxLoanAmount.IsPositive() }
