package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "vsla-backend/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

// GetByLoanIDForUpdate takes a row lock; meaningful only when the repository
// is bound to a transaction (see GormUoW). sqlite has no row locks, so the
// clause is skipped there and the whole-file tx lock covers it.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out loanDomain.Loan
	res := q.Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.ListFilter) ([]loanDomain.Loan, int64, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.GroupID != "" {
		q = q.Where("group_id = ?", f.GroupID)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if len(f.GroupIDs) > 0 {
		q = q.Where("group_id IN ?", f.GroupIDs)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []loanDomain.Loan
	err := q.Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&out).Error
	return out, total, err
}

func (r *LoanRepository) CountByUserAndStatuses(ctx context.Context, userID string, statuses []loanDomain.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("user_id = ? AND status IN ?", userID, statuses).
		Count(&n).Error
	return n, err
}

func (r *LoanRepository) SumAmountByGroupAndStatuses(ctx context.Context, groupID string, statuses []loanDomain.Status) (decimal.Decimal, error) {
	return r.sumAmount(ctx, "group_id", groupID, statuses)
}

func (r *LoanRepository) SumAmountByUserAndStatuses(ctx context.Context, userID string, statuses []loanDomain.Status) (decimal.Decimal, error) {
	return r.sumAmount(ctx, "user_id", userID, statuses)
}

func (r *LoanRepository) sumAmount(ctx context.Context, column, value string, statuses []loanDomain.Status) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Select("SUM(amount)").
		Where(column+" = ? AND status IN ?", value, statuses).
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *LoanRepository) CountByStatus(ctx context.Context, groupID string) ([]loanDomain.StatusCount, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Select("status, COUNT(*) AS count").
		Group("status")
	if groupID != "" {
		q = q.Where("group_id = ?", groupID)
	}
	var out []loanDomain.StatusCount
	err := q.Scan(&out).Error
	return out, err
}

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository { return &RepaymentRepository{db: db} }

func (r *RepaymentRepository) Create(ctx context.Context, row *loanDomain.Repayment) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *RepaymentRepository) ListByLoanID(ctx context.Context, loanID string) ([]loanDomain.Repayment, error) {
	var out []loanDomain.Repayment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
