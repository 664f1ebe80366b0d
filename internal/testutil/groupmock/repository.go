package groupmock

import (
	"context"
	"errors"

	"vsla-backend/internal/domain/group"
)

type Repo struct {
	CreateFn       func(ctx context.Context, g *group.Group) error
	SaveFn         func(ctx context.Context, g *group.Group) error
	GetByGroupIDFn func(ctx context.Context, groupID string) (*group.Group, error)
	GetByNameFn    func(ctx context.Context, name string) (*group.Group, error)
	ListFn         func(ctx context.Context) ([]group.Group, error)
}

func (m *Repo) Create(ctx context.Context, g *group.Group) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, g)
	}
	return errors.New("groupmock: Create not implemented")
}

func (m *Repo) Save(ctx context.Context, g *group.Group) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, g)
	}
	return errors.New("groupmock: Save not implemented")
}

func (m *Repo) GetByGroupID(ctx context.Context, groupID string) (*group.Group, error) {
	if m.GetByGroupIDFn != nil {
		return m.GetByGroupIDFn(ctx, groupID)
	}
	return nil, errors.New("groupmock: GetByGroupID not implemented")
}

func (m *Repo) GetByName(ctx context.Context, name string) (*group.Group, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}
	return nil, errors.New("groupmock: GetByName not implemented")
}

func (m *Repo) List(ctx context.Context) ([]group.Group, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, errors.New("groupmock: List not implemented")
}
