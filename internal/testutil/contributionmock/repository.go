package contributionmock

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"vsla-backend/internal/domain/contribution"
)

type Repo struct {
	CreateFn      func(ctx context.Context, c *contribution.Contribution) error
	ListByGroupFn func(ctx context.Context, groupID string) ([]contribution.Contribution, error)
	ListByUserFn  func(ctx context.Context, userID string) ([]contribution.Contribution, error)
	SumByGroupFn  func(ctx context.Context, groupID string) (decimal.Decimal, error)
}

func (m *Repo) Create(ctx context.Context, c *contribution.Contribution) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return errors.New("contributionmock: Create not implemented")
}

func (m *Repo) ListByGroup(ctx context.Context, groupID string) ([]contribution.Contribution, error) {
	if m.ListByGroupFn != nil {
		return m.ListByGroupFn(ctx, groupID)
	}
	return nil, errors.New("contributionmock: ListByGroup not implemented")
}

func (m *Repo) ListByUser(ctx context.Context, userID string) ([]contribution.Contribution, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, errors.New("contributionmock: ListByUser not implemented")
}

func (m *Repo) SumByGroup(ctx context.Context, groupID string) (decimal.Decimal, error) {
	if m.SumByGroupFn != nil {
		return m.SumByGroupFn(ctx, groupID)
	}
	return decimal.Zero, errors.New("contributionmock: SumByGroup not implemented")
}
