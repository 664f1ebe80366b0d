package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"vsla-backend/internal/domain/group"
	"vsla-backend/internal/domain/loan"
	"vsla-backend/internal/domain/membership"
	"vsla-backend/pkg/id"
)

type Usecase struct {
	memberships membership.Repository
	groups      group.Repository
	loans       loan.Repository
	now         func() time.Time
}

func NewUsecase(memberships membership.Repository, groups group.Repository, loans loan.Repository) *Usecase {
	return &Usecase{
		memberships: memberships,
		groups:      groups,
		loans:       loans,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// IsActiveMember reports whether the user holds an active membership in the
// group. Pure read, used as a gate before loan requests.
func (u *Usecase) IsActiveMember(ctx context.Context, userID, groupID string) (bool, error) {
	_, err := u.memberships.GetActive(ctx, userID, groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// HasOutstandingLoan reports whether the user has any loan that is approved,
// disbursed or partially paid.
func (u *Usecase) HasOutstandingLoan(ctx context.Context, userID string) (bool, error) {
	n, err := u.loans.CountByUserAndStatuses(ctx, userID, loan.OutstandingStatuses())
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type JoinInput struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type MembershipDTO struct {
	MembershipID string     `json:"membership_id"`
	UserID       string     `json:"user_id"`
	GroupID      string     `json:"group_id"`
	Role         string     `json:"role"`
	Status       string     `json:"status"`
	JoinedAt     time.Time  `json:"joined_at"`
	LeftAt       *time.Time `json:"left_at,omitempty"`
}

func toDTO(m *membership.Membership) MembershipDTO {
	return MembershipDTO{
		MembershipID: m.MembershipID,
		UserID:       m.UserID,
		GroupID:      m.GroupID,
		Role:         string(m.Role),
		Status:       string(m.Status),
		JoinedAt:     m.JoinedAt,
		LeftAt:       m.LeftAt,
	}
}

// Join adds a user to a group, enforcing the single-active-membership rule
// and the group's member cap.
func (u *Usecase) Join(ctx context.Context, groupID string, in JoinInput) (*MembershipDTO, error) {
	role := membership.Role(in.Role)
	if role == "" {
		role = membership.RoleMember
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", group.ErrValidation, in.Role)
	}

	g, err := u.groups.GetByGroupID(ctx, groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, group.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if g.Status != group.StatusActive {
		return nil, fmt.Errorf("%w: group is not active", group.ErrNotFound)
	}

	if _, err := u.memberships.GetActive(ctx, in.UserID, groupID); err == nil {
		return nil, membership.ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if g.MaxMembers > 0 {
		n, err := u.memberships.CountActiveByGroup(ctx, groupID)
		if err != nil {
			return nil, err
		}
		if n >= int64(g.MaxMembers) {
			return nil, membership.ErrGroupFull
		}
	}

	// A former member keeps their row after leaving, so rejoining must
	// reactivate it rather than insert a second row for the pair.
	m, err := u.memberships.GetByUserAndGroup(ctx, in.UserID, groupID)
	switch {
	case err == nil:
		m.Role = role
		m.Status = membership.StatusActive
		m.JoinedAt = u.now()
		m.LeftAt = nil
		if err := u.memberships.Save(ctx, m); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		m = &membership.Membership{
			MembershipID: id.New(),
			UserID:       in.UserID,
			GroupID:      groupID,
			Role:         role,
			Status:       membership.StatusActive,
			JoinedAt:     u.now(),
		}
		if err := u.memberships.Create(ctx, m); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	dto := toDTO(m)
	return &dto, nil
}

// Leave marks the active membership inactive with a leave timestamp; the row
// is kept for history.
func (u *Usecase) Leave(ctx context.Context, userID, groupID string) (*MembershipDTO, error) {
	m, err := u.memberships.GetActive(ctx, userID, groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, membership.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	now := u.now()
	m.Status = membership.StatusInactive
	m.LeftAt = &now
	if err := u.memberships.Save(ctx, m); err != nil {
		return nil, err
	}
	dto := toDTO(m)
	return &dto, nil
}

// Members lists a group's membership rows.
func (u *Usecase) Members(ctx context.Context, groupID string) ([]MembershipDTO, error) {
	rows, err := u.memberships.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	out := make([]MembershipDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}
