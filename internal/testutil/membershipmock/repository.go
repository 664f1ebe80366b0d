package membershipmock

import (
	"context"
	"errors"

	"vsla-backend/internal/domain/membership"
)

type Repo struct {
	CreateFn                 func(ctx context.Context, m *membership.Membership) error
	SaveFn                   func(ctx context.Context, m *membership.Membership) error
	GetActiveFn              func(ctx context.Context, userID, groupID string) (*membership.Membership, error)
	GetByUserAndGroupFn      func(ctx context.Context, userID, groupID string) (*membership.Membership, error)
	ListByGroupFn            func(ctx context.Context, groupID string) ([]membership.Membership, error)
	CountActiveByGroupFn     func(ctx context.Context, groupID string) (int64, error)
	GroupIDsByUserAndRolesFn func(ctx context.Context, userID string, roles []membership.Role) ([]string, error)
}

func (m *Repo) Create(ctx context.Context, row *membership.Membership) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, row)
	}
	return errors.New("membershipmock: Create not implemented")
}

func (m *Repo) Save(ctx context.Context, row *membership.Membership) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, row)
	}
	return errors.New("membershipmock: Save not implemented")
}

func (m *Repo) GetActive(ctx context.Context, userID, groupID string) (*membership.Membership, error) {
	if m.GetActiveFn != nil {
		return m.GetActiveFn(ctx, userID, groupID)
	}
	return nil, errors.New("membershipmock: GetActive not implemented")
}

func (m *Repo) GetByUserAndGroup(ctx context.Context, userID, groupID string) (*membership.Membership, error) {
	if m.GetByUserAndGroupFn != nil {
		return m.GetByUserAndGroupFn(ctx, userID, groupID)
	}
	return nil, errors.New("membershipmock: GetByUserAndGroup not implemented")
}

func (m *Repo) ListByGroup(ctx context.Context, groupID string) ([]membership.Membership, error) {
	if m.ListByGroupFn != nil {
		return m.ListByGroupFn(ctx, groupID)
	}
	return nil, errors.New("membershipmock: ListByGroup not implemented")
}

func (m *Repo) CountActiveByGroup(ctx context.Context, groupID string) (int64, error) {
	if m.CountActiveByGroupFn != nil {
		return m.CountActiveByGroupFn(ctx, groupID)
	}
	return 0, errors.New("membershipmock: CountActiveByGroup not implemented")
}

func (m *Repo) GroupIDsByUserAndRoles(ctx context.Context, userID string, roles []membership.Role) ([]string, error) {
	if m.GroupIDsByUserAndRolesFn != nil {
		return m.GroupIDsByUserAndRolesFn(ctx, userID, roles)
	}
	return nil, errors.New("membershipmock: GroupIDsByUserAndRoles not implemented")
}
