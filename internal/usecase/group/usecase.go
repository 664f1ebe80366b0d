package group

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"vsla-backend/internal/domain/group"
	"vsla-backend/pkg/id"
)

type Usecase struct{ repo group.Repository }

func NewUsecase(r group.Repository) *Usecase { return &Usecase{repo: r} }

type CreateGroupInput struct {
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	Location            string           `json:"location"`
	DefaultInterestRate *decimal.Decimal `json:"default_interest_rate,omitempty"`
	MaxLoanAmount       *decimal.Decimal `json:"max_loan_amount,omitempty"`
	MaxMembers          int              `json:"max_members"`
	MeetingFrequency    string           `json:"meeting_frequency"`
	MeetingDay          string           `json:"meeting_day"`
}

type UpdateGroupInput struct {
	Description         *string          `json:"description,omitempty"`
	Location            *string          `json:"location,omitempty"`
	DefaultInterestRate *decimal.Decimal `json:"default_interest_rate,omitempty"`
	MaxLoanAmount       *decimal.Decimal `json:"max_loan_amount,omitempty"`
	MaxMembers          *int             `json:"max_members,omitempty"`
	MeetingFrequency    *string          `json:"meeting_frequency,omitempty"`
	MeetingDay          *string          `json:"meeting_day,omitempty"`
}

type GroupDTO struct {
	GroupID             string          `json:"group_id"`
	Name                string          `json:"name"`
	Description         string          `json:"description,omitempty"`
	Location            string          `json:"location,omitempty"`
	DefaultInterestRate decimal.Decimal `json:"default_interest_rate"`
	MaxLoanAmount       decimal.Decimal `json:"max_loan_amount"`
	MaxMembers          int             `json:"max_members"`
	MeetingFrequency    string          `json:"meeting_frequency"`
	MeetingDay          string          `json:"meeting_day,omitempty"`
	Status              string          `json:"status"`
	CreatedAt           time.Time       `json:"created_at"`
}

func toDTO(g *group.Group) GroupDTO {
	return GroupDTO{
		GroupID:             g.GroupID,
		Name:                g.Name,
		Description:         g.Description,
		Location:            g.Location,
		DefaultInterestRate: g.DefaultInterestRate,
		MaxLoanAmount:       g.MaxLoanAmount,
		MaxMembers:          g.MaxMembers,
		MeetingFrequency:    string(g.MeetingFrequency),
		MeetingDay:          g.MeetingDay,
		Status:              string(g.Status),
		CreatedAt:           g.CreatedAt,
	}
}

// Create registers a new group. Names are unique among active groups.
func (u *Usecase) Create(ctx context.Context, in CreateGroupInput) (*GroupDTO, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", group.ErrValidation)
	}
	if _, err := u.repo.GetByName(ctx, in.Name); err == nil {
		return nil, group.ErrDuplicateName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	g := &group.Group{
		GroupID:             id.New(),
		Name:                in.Name,
		Description:         in.Description,
		Location:            in.Location,
		DefaultInterestRate: decimal.NewFromInt(5),
		MaxLoanAmount:       decimal.Zero,
		MaxMembers:          30,
		MeetingFrequency:    group.MeetingWeekly,
		MeetingDay:          in.MeetingDay,
		Status:              group.StatusActive,
	}
	if in.DefaultInterestRate != nil {
		g.DefaultInterestRate = *in.DefaultInterestRate
	}
	if g.DefaultInterestRate.IsNegative() || g.DefaultInterestRate.GreaterThan(decimal.NewFromInt(50)) {
		return nil, fmt.Errorf("%w: default interest rate must be between 0 and 50", group.ErrValidation)
	}
	if in.MaxLoanAmount != nil {
		if in.MaxLoanAmount.IsNegative() {
			return nil, fmt.Errorf("%w: max loan amount cannot be negative", group.ErrValidation)
		}
		g.MaxLoanAmount = *in.MaxLoanAmount
	}
	if in.MaxMembers > 0 {
		g.MaxMembers = in.MaxMembers
	}
	if in.MeetingFrequency != "" {
		g.MeetingFrequency = group.MeetingFrequency(in.MeetingFrequency)
	}

	if err := u.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	dto := toDTO(g)
	return &dto, nil
}

func (u *Usecase) Get(ctx context.Context, groupID string) (*GroupDTO, error) {
	g, err := u.repo.GetByGroupID(ctx, groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, group.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	dto := toDTO(g)
	return &dto, nil
}

func (u *Usecase) List(ctx context.Context) ([]GroupDTO, error) {
	rows, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]GroupDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) Update(ctx context.Context, groupID string, in UpdateGroupInput) (*GroupDTO, error) {
	g, err := u.repo.GetByGroupID(ctx, groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, group.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if in.Description != nil {
		g.Description = *in.Description
	}
	if in.Location != nil {
		g.Location = *in.Location
	}
	if in.DefaultInterestRate != nil {
		if in.DefaultInterestRate.IsNegative() || in.DefaultInterestRate.GreaterThan(decimal.NewFromInt(50)) {
			return nil, fmt.Errorf("%w: default interest rate must be between 0 and 50", group.ErrValidation)
		}
		g.DefaultInterestRate = *in.DefaultInterestRate
	}
	if in.MaxLoanAmount != nil {
		if in.MaxLoanAmount.IsNegative() {
			return nil, fmt.Errorf("%w: max loan amount cannot be negative", group.ErrValidation)
		}
		g.MaxLoanAmount = *in.MaxLoanAmount
	}
	if in.MaxMembers != nil && *in.MaxMembers > 0 {
		g.MaxMembers = *in.MaxMembers
	}
	if in.MeetingFrequency != nil {
		g.MeetingFrequency = group.MeetingFrequency(*in.MeetingFrequency)
	}
	if in.MeetingDay != nil {
		g.MeetingDay = *in.MeetingDay
	}

	if err := u.repo.Save(ctx, g); err != nil {
		return nil, err
	}
	dto := toDTO(g)
	return &dto, nil
}

// Archive hides the group from active use without destroying its history.
func (u *Usecase) Archive(ctx context.Context, groupID string) (*GroupDTO, error) {
	g, err := u.repo.GetByGroupID(ctx, groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, group.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	g.Status = group.StatusArchived
	if err := u.repo.Save(ctx, g); err != nil {
		return nil, err
	}
	dto := toDTO(g)
	return &dto, nil
}
