// Package loanmock provides hand-rolled test doubles for the loan
// repositories. Only the function fields a test sets are exercised; anything
// else fails loudly.
package loanmock

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"vsla-backend/internal/domain/loan"
)

type Repo struct {
	CreateFn                      func(ctx context.Context, l *loan.Loan) error
	SaveFn                        func(ctx context.Context, l *loan.Loan) error
	GetByLoanIDFn                 func(ctx context.Context, loanID string) (*loan.Loan, error)
	GetByLoanIDForUpdateFn        func(ctx context.Context, loanID string) (*loan.Loan, error)
	ListFn                        func(ctx context.Context, f loan.ListFilter) ([]loan.Loan, int64, error)
	CountByUserAndStatusesFn      func(ctx context.Context, userID string, statuses []loan.Status) (int64, error)
	SumAmountByGroupAndStatusesFn func(ctx context.Context, groupID string, statuses []loan.Status) (decimal.Decimal, error)
	SumAmountByUserAndStatusesFn  func(ctx context.Context, userID string, statuses []loan.Status) (decimal.Decimal, error)
	CountByStatusFn               func(ctx context.Context, groupID string) ([]loan.StatusCount, error)
}

func (m *Repo) Create(ctx context.Context, l *loan.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return errors.New("loanmock: Create not implemented")
}

func (m *Repo) Save(ctx context.Context, l *loan.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return errors.New("loanmock: Save not implemented")
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*loan.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, errors.New("loanmock: GetByLoanID not implemented")
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loan.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, errors.New("loanmock: GetByLoanIDForUpdate not implemented")
}

func (m *Repo) List(ctx context.Context, f loan.ListFilter) ([]loan.Loan, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, errors.New("loanmock: List not implemented")
}

func (m *Repo) CountByUserAndStatuses(ctx context.Context, userID string, statuses []loan.Status) (int64, error) {
	if m.CountByUserAndStatusesFn != nil {
		return m.CountByUserAndStatusesFn(ctx, userID, statuses)
	}
	return 0, errors.New("loanmock: CountByUserAndStatuses not implemented")
}

func (m *Repo) SumAmountByGroupAndStatuses(ctx context.Context, groupID string, statuses []loan.Status) (decimal.Decimal, error) {
	if m.SumAmountByGroupAndStatusesFn != nil {
		return m.SumAmountByGroupAndStatusesFn(ctx, groupID, statuses)
	}
	return decimal.Zero, errors.New("loanmock: SumAmountByGroupAndStatuses not implemented")
}

func (m *Repo) SumAmountByUserAndStatuses(ctx context.Context, userID string, statuses []loan.Status) (decimal.Decimal, error) {
	if m.SumAmountByUserAndStatusesFn != nil {
		return m.SumAmountByUserAndStatusesFn(ctx, userID, statuses)
	}
	return decimal.Zero, errors.New("loanmock: SumAmountByUserAndStatuses not implemented")
}

func (m *Repo) CountByStatus(ctx context.Context, groupID string) ([]loan.StatusCount, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, groupID)
	}
	return nil, errors.New("loanmock: CountByStatus not implemented")
}

type RepaymentRepo struct {
	CreateFn       func(ctx context.Context, r *loan.Repayment) error
	ListByLoanIDFn func(ctx context.Context, loanID string) ([]loan.Repayment, error)
}

func (m *RepaymentRepo) Create(ctx context.Context, r *loan.Repayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return errors.New("loanmock: RepaymentRepo.Create not implemented")
}

func (m *RepaymentRepo) ListByLoanID(ctx context.Context, loanID string) ([]loan.Repayment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, errors.New("loanmock: RepaymentRepo.ListByLoanID not implemented")
}
