package contribution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"vsla-backend/internal/domain/contribution"
	"vsla-backend/internal/domain/membership"
	"vsla-backend/pkg/id"
)

type Usecase struct {
	contributions contribution.Repository
	memberships   membership.Repository
	now           func() time.Time
}

func NewUsecase(contributions contribution.Repository, memberships membership.Repository) *Usecase {
	return &Usecase{
		contributions: contributions,
		memberships:   memberships,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

type RecordInput struct {
	UserID  string          `json:"user_id"`
	GroupID string          `json:"group_id"`
	Amount  decimal.Decimal `json:"amount"`
}

type ContributionDTO struct {
	ContributionID string          `json:"contribution_id"`
	UserID         string          `json:"user_id"`
	GroupID        string          `json:"group_id"`
	Amount         decimal.Decimal `json:"amount"`
	ContributedOn  time.Time       `json:"contributed_on"`
	RecordedBy     string          `json:"recorded_by"`
}

func toDTO(c *contribution.Contribution) ContributionDTO {
	return ContributionDTO{
		ContributionID: c.ContributionID,
		UserID:         c.UserID,
		GroupID:        c.GroupID,
		Amount:         c.Amount,
		ContributedOn:  c.ContributedOn,
		RecordedBy:     c.RecordedBy,
	}
}

// Record books a savings contribution for an active group member.
func (u *Usecase) Record(ctx context.Context, recordedBy string, in RecordInput) (*ContributionDTO, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than 0", contribution.ErrValidation)
	}
	if in.UserID == "" || in.GroupID == "" {
		return nil, fmt.Errorf("%w: user_id and group_id are required", contribution.ErrValidation)
	}
	if _, err := u.memberships.GetActive(ctx, in.UserID, in.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membership.ErrNotMember
		}
		return nil, err
	}

	c := &contribution.Contribution{
		ContributionID: id.New(),
		UserID:         in.UserID,
		GroupID:        in.GroupID,
		Amount:         in.Amount,
		ContributedOn:  u.now(),
		RecordedBy:     recordedBy,
	}
	if err := u.contributions.Create(ctx, c); err != nil {
		return nil, err
	}
	dto := toDTO(c)
	return &dto, nil
}

func (u *Usecase) ListByGroup(ctx context.Context, groupID string) ([]ContributionDTO, error) {
	rows, err := u.contributions.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	out := make([]ContributionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) ListByUser(ctx context.Context, userID string) ([]ContributionDTO, error) {
	rows, err := u.contributions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]ContributionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}
