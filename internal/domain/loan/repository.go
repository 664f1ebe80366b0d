package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

type ListFilter struct {
	Status   Status
	GroupID  string
	UserID   string
	GroupIDs []string // non-empty restricts to these groups (role scoping)
	Page     int
	Limit    int
}

type StatusCount struct {
	Status Status
	Count  int64
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the transaction the
	// repository is bound to. Outside a transaction it behaves like
	// GetByLoanID.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	List(ctx context.Context, f ListFilter) ([]Loan, int64, error)
	CountByUserAndStatuses(ctx context.Context, userID string, statuses []Status) (int64, error)
	SumAmountByGroupAndStatuses(ctx context.Context, groupID string, statuses []Status) (decimal.Decimal, error)
	SumAmountByUserAndStatuses(ctx context.Context, userID string, statuses []Status) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, groupID string) ([]StatusCount, error)
}

type RepaymentRepository interface {
	Create(ctx context.Context, r *Repayment) error
	ListByLoanID(ctx context.Context, loanID string) ([]Repayment, error)
}
