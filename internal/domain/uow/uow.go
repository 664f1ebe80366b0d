package uow

import (
	"context"

	"vsla-backend/internal/domain/contribution"
	"vsla-backend/internal/domain/group"
	"vsla-backend/internal/domain/loan"
	"vsla-backend/internal/domain/membership"
	"vsla-backend/internal/domain/user"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Loans         loan.Repository
	Repayments    loan.RepaymentRepository
	Groups        group.Repository
	Memberships   membership.Repository
	Users         user.Repository
	Contributions contribution.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn inside a single transaction; any error rolls the
	// whole unit back.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row up front, then runs fn with the
	// locked snapshot. All state transitions and repayment accounting go
	// through here.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
