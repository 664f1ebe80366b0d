package contribution

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("contribution not found")
	ErrValidation = errors.New("invalid contribution input")
)

type Contribution struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	ContributionID string          `gorm:"size:36;uniqueIndex:ux_contributions_contribution_id" json:"contribution_id"`
	UserID         string          `gorm:"size:36;index:idx_contributions_user" json:"user_id"`
	GroupID        string          `gorm:"size:36;index:idx_contributions_group" json:"group_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	ContributedOn  time.Time       `gorm:"type:date" json:"contributed_on"`
	RecordedBy     string          `gorm:"size:36" json:"recorded_by"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Contribution) TableName() string { return "contributions" }
