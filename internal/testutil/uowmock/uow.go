package uowmock

import (
	"context"
	"errors"

	"vsla-backend/internal/domain/loan"
	"vsla-backend/internal/domain/uow"
)

type UoW struct {
	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errors.New("uowmock: WithinTx not implemented")
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errors.New("uowmock: WithinLoanTx not implemented")
}

// Passthrough returns a UoW whose transactions simply invoke the closure
// with the given repos; loan transactions fetch via GetByLoanIDForUpdate.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(r)
		},
		WithinLoanTxFn: func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
			l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
			if err != nil {
				return err
			}
			return fn(r, l)
		},
	}
}
