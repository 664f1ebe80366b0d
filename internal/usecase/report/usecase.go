package report

import (
	"context"

	"github.com/shopspring/decimal"

	"vsla-backend/internal/domain/contribution"
	"vsla-backend/internal/domain/loan"
)

// Usecase is a pure read-side reducer over persisted records. Sums see
// whatever is committed at call time; no transactional consistency with
// concurrent writers is promised.
type Usecase struct {
	loans         loan.Repository
	contributions contribution.Repository
}

func NewUsecase(loans loan.Repository, contributions contribution.Repository) *Usecase {
	return &Usecase{loans: loans, contributions: contributions}
}

type GroupSummaryDTO struct {
	GroupID            string          `json:"group_id"`
	TotalContributions decimal.Decimal `json:"total_contributions"`
	TotalLoans         decimal.Decimal `json:"total_loans"`
	AvailableBalance   decimal.Decimal `json:"available_balance"`
}

type LoanStatusReportDTO struct {
	GroupID  string           `json:"group_id,omitempty"`
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

type UserLoanSummaryDTO struct {
	UserID        string          `json:"user_id"`
	TotalBorrowed decimal.Decimal `json:"total_borrowed"`
}

// borrowedStatuses are loans whose principal has left (or is committed to
// leave) the group pot; used for per-user borrowing totals.
var borrowedStatuses = []loan.Status{
	loan.StatusApproved,
	loan.StatusDisbursed,
	loan.StatusPartiallyPaid,
	loan.StatusFullyPaid,
	loan.StatusDefaulted,
}

// GroupFinancialSummary sums the group's contributions against its approved
// loan principal: availableBalance = totalContributions - totalLoans. Only
// status=approved loans count toward totalLoans; disbursement moves a loan
// out of the sum.
func (u *Usecase) GroupFinancialSummary(ctx context.Context, groupID string) (*GroupSummaryDTO, error) {
	contributions, err := u.contributions.SumByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	loans, err := u.loans.SumAmountByGroupAndStatuses(ctx, groupID, []loan.Status{loan.StatusApproved})
	if err != nil {
		return nil, err
	}
	return &GroupSummaryDTO{
		GroupID:            groupID,
		TotalContributions: contributions,
		TotalLoans:         loans,
		AvailableBalance:   contributions.Sub(loans),
	}, nil
}

// LoanStatusReport counts loans per status, optionally scoped to one group.
func (u *Usecase) LoanStatusReport(ctx context.Context, groupID string) (*LoanStatusReportDTO, error) {
	counts, err := u.loans.CountByStatus(ctx, groupID)
	if err != nil {
		return nil, err
	}
	out := &LoanStatusReportDTO{GroupID: groupID, ByStatus: make(map[string]int64, len(counts))}
	for _, c := range counts {
		out.ByStatus[string(c.Status)] = c.Count
		out.Total += c.Count
	}
	return out, nil
}

// UserLoanSummary totals the principal a user has borrowed.
func (u *Usecase) UserLoanSummary(ctx context.Context, userID string) (*UserLoanSummaryDTO, error) {
	total, err := u.loans.SumAmountByUserAndStatuses(ctx, userID, borrowedStatuses)
	if err != nil {
		return nil, err
	}
	return &UserLoanSummaryDTO{UserID: userID, TotalBorrowed: total}, nil
}
