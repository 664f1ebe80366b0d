package usermock

import (
	"context"
	"errors"

	"vsla-backend/internal/domain/user"
)

type Repo struct {
	CreateFn      func(ctx context.Context, u *user.User) error
	SaveFn        func(ctx context.Context, u *user.User) error
	GetByUserIDFn func(ctx context.Context, userID string) (*user.User, error)
	GetByPhoneFn  func(ctx context.Context, phone string) (*user.User, error)
	GetByEmailFn  func(ctx context.Context, email string) (*user.User, error)
	ListFn        func(ctx context.Context) ([]user.User, error)
}

func (m *Repo) Create(ctx context.Context, u *user.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return errors.New("usermock: Create not implemented")
}

func (m *Repo) Save(ctx context.Context, u *user.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return errors.New("usermock: Save not implemented")
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*user.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, errors.New("usermock: GetByUserID not implemented")
}

func (m *Repo) GetByPhone(ctx context.Context, phone string) (*user.User, error) {
	if m.GetByPhoneFn != nil {
		return m.GetByPhoneFn(ctx, phone)
	}
	return nil, errors.New("usermock: GetByPhone not implemented")
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, errors.New("usermock: GetByEmail not implemented")
}

func (m *Repo) List(ctx context.Context) ([]user.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, errors.New("usermock: List not implemented")
}
