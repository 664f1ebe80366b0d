package mysql

import (
	"context"

	"gorm.io/gorm"

	loanDomain "vsla-backend/internal/domain/loan"
	"vsla-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Loans:         &LoanRepository{db: tx},
		Repayments:    &RepaymentRepository{db: tx},
		Groups:        &GroupRepository{db: tx},
		Memberships:   &MembershipRepository{db: tx},
		Users:         &UserRepository{db: tx},
		Contributions: &ContributionRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loanDomain.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
