package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"vsla-backend/internal/domain/group"
	"vsla-backend/internal/domain/loan"
	"vsla-backend/internal/domain/membership"
	"vsla-backend/internal/domain/uow"
	"vsla-backend/internal/domain/user"
	"vsla-backend/pkg/id"
)

const (
	minTerm = 1
	maxTerm = 24
)

var maxRate = decimal.NewFromInt(50)

type Usecase struct {
	loans       loan.Repository
	repayments  loan.RepaymentRepository
	groups      group.Repository
	memberships membership.Repository
	uow         uow.UnitOfWork
	now         func() time.Time
}

func NewUsecase(loans loan.Repository, repayments loan.RepaymentRepository, groups group.Repository, memberships membership.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{
		loans:       loans,
		repayments:  repayments,
		groups:      groups,
		memberships: memberships,
		uow:         tx,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Request creates a new pending loan after the eligibility gates pass.
func (u *Usecase) Request(ctx context.Context, actor Actor, in RequestLoanInput) (*LoanDTO, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than 0", loan.ErrValidation)
	}
	if in.Purpose == "" || in.GroupID == "" {
		return nil, fmt.Errorf("%w: purpose and group_id are required", loan.ErrValidation)
	}
	if in.RepaymentTerm < minTerm || in.RepaymentTerm > maxTerm {
		return nil, fmt.Errorf("%w: repayment term must be between %d and %d periods", loan.ErrValidation, minTerm, maxTerm)
	}
	freq := loan.Frequency(in.RepaymentFrequency)
	if freq == "" {
		freq = loan.FrequencyMonthly
	}
	if !freq.Valid() {
		return nil, fmt.Errorf("%w: repayment frequency must be weekly, biweekly or monthly", loan.ErrValidation)
	}
	category := loan.PurposeCategory(in.PurposeCategory)
	if category == "" {
		category = loan.PurposeOther
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown purpose category %q", loan.ErrValidation, in.PurposeCategory)
	}

	g, err := u.groups.GetByGroupID(ctx, in.GroupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, group.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if g.Status != group.StatusActive {
		return nil, fmt.Errorf("%w: group is not active", group.ErrNotFound)
	}

	if _, err := u.memberships.GetActive(ctx, actor.UserID, in.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membership.ErrNotMember
		}
		return nil, err
	}

	outstanding, err := u.loans.CountByUserAndStatuses(ctx, actor.UserID, loan.OutstandingStatuses())
	if err != nil {
		return nil, err
	}
	if outstanding > 0 {
		return nil, fmt.Errorf("%w: repay outstanding loans before requesting a new one", loan.ErrValidation)
	}

	if g.CapsLoanAmount() && in.Amount.GreaterThan(g.MaxLoanAmount) {
		return nil, fmt.Errorf("%w: amount exceeds group maximum of %s", loan.ErrValidation, g.MaxLoanAmount)
	}

	rate := g.DefaultInterestRate
	if in.InterestRate != nil {
		rate = *in.InterestRate
	}
	if rate.IsNegative() || rate.GreaterThan(maxRate) {
		return nil, fmt.Errorf("%w: interest rate must be between 0 and %s", loan.ErrValidation, maxRate)
	}

	now := u.now()
	l := &loan.Loan{
		LoanID:             id.New(),
		UserID:             actor.UserID,
		GroupID:            in.GroupID,
		Amount:             in.Amount,
		Purpose:            in.Purpose,
		Category:           category,
		InterestRate:       rate,
		RepaymentTerm:      in.RepaymentTerm,
		RepaymentFrequency: freq,
		Status:             loan.StatusPending,
		SubmittedAt:        now,
		TotalPaid:          decimal.Zero,
	}
	applyAmortization(l)
	first := freq.AddPeriods(now, 1)
	l.FirstPaymentDate = &first

	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	dto := toDTO(l)
	return &dto, nil
}

// applyAmortization fills the computed money columns:
// totalInterest = amount * rate/100 * term/12, spread evenly over
// term * frequency-multiplier installments.
func applyAmortization(l *loan.Loan) {
	term := decimal.NewFromInt(int64(l.RepaymentTerm))
	l.TotalInterest = l.Amount.Mul(l.InterestRate).Mul(term).Div(decimal.NewFromInt(1200)).Round(2)
	l.TotalAmount = l.Amount.Add(l.TotalInterest)
	l.InstallmentAmount = l.TotalAmount.Div(decimal.NewFromInt(int64(l.InstallmentCount()))).Round(2)
	l.OutstandingBalance = l.TotalAmount
}

// Review moves a pending loan to under_review (approve) or rejected.
func (u *Usecase) Review(ctx context.Context, actor Actor, loanID string, in ReviewInput) (*LoanDTO, error) {
	if in.Action != "approve" && in.Action != "reject" {
		return nil, fmt.Errorf("%w: action must be approve or reject", loan.ErrValidation)
	}
	var dto LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusPending {
			return fmt.Errorf("%w: loan is not pending review", loan.ErrInvalidTransition)
		}
		now := u.now()
		l.ReviewedAt = &now
		l.ReviewedBy = actor.UserID
		if in.Action == "approve" {
			l.Status = loan.StatusUnderReview
		} else {
			l.Status = loan.StatusRejected
			l.RejectedAt = &now
			l.RejectionReason = in.Comments
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapLoanErr(err)
	}
	return &dto, nil
}

// Approve settles a loan under review: approved, or rejected with reason.
func (u *Usecase) Approve(ctx context.Context, actor Actor, loanID string, in ReviewInput) (*LoanDTO, error) {
	if in.Action != "approve" && in.Action != "reject" {
		return nil, fmt.Errorf("%w: action must be approve or reject", loan.ErrValidation)
	}
	var dto LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusUnderReview {
			return fmt.Errorf("%w: loan is not under review", loan.ErrInvalidTransition)
		}
		now := u.now()
		if in.Action == "approve" {
			l.Status = loan.StatusApproved
			l.ApprovedAt = &now
			l.ApprovedBy = actor.UserID
		} else {
			l.Status = loan.StatusRejected
			l.RejectedAt = &now
			l.RejectionReason = in.Comments
			l.ApprovedBy = actor.UserID
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapLoanErr(err)
	}
	return &dto, nil
}

// Disburse pays out an approved loan and starts the repayment clock.
func (u *Usecase) Disburse(ctx context.Context, actor Actor, loanID string, in DisburseInput) (*LoanDTO, error) {
	method := loan.DisbursementMethod(in.Method)
	if !method.Valid() {
		return nil, fmt.Errorf("%w: disbursement method must be cash, mobile_money or bank_transfer", loan.ErrValidation)
	}
	var dto LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if l.Status != loan.StatusApproved {
			return fmt.Errorf("%w: loan is not approved for disbursement", loan.ErrInvalidTransition)
		}
		now := u.now()
		due := l.RepaymentFrequency.AddPeriods(now, l.RepaymentTerm)
		l.Status = loan.StatusDisbursed
		l.DisbursedAt = &now
		l.DisbursedBy = actor.UserID
		l.DisbursementMethod = method
		l.DisbursementReference = in.Reference
		l.IssuedDate = &now
		l.DueDate = &due
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapLoanErr(err)
	}
	return &dto, nil
}

// Repay records a repayment and updates the loan ledger in one transaction.
// The balance check runs against the row-locked snapshot, so two concurrent
// repayments can never drive the outstanding balance negative.
func (u *Usecase) Repay(ctx context.Context, actor Actor, loanID string, in RepayInput) (*RepayResultDTO, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be greater than 0", loan.ErrValidation)
	}
	method := loan.PaymentMethod(in.Method)
	if method == "" {
		method = loan.PaymentCash
	}

	var out RepayResultDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.Status.Repayable() {
			return fmt.Errorf("%w: loan is not eligible for repayment", loan.ErrInvalidTransition)
		}
		if in.Amount.GreaterThan(l.OutstandingBalance) {
			return fmt.Errorf("%w: payment amount exceeds outstanding balance of %s", loan.ErrValidation, l.OutstandingBalance)
		}

		rp := &loan.Repayment{
			RepaymentID:      id.New(),
			LoanID:           l.LoanID,
			Amount:           in.Amount,
			PaymentMethod:    method,
			PaymentReference: in.Reference,
			Notes:            in.Notes,
			RecordedBy:       actor.UserID,
		}
		if err := r.Repayments.Create(ctx, rp); err != nil {
			return err
		}

		l.OutstandingBalance = l.OutstandingBalance.Sub(in.Amount)
		l.TotalPaid = l.TotalPaid.Add(in.Amount)
		if l.OutstandingBalance.IsZero() {
			l.Status = loan.StatusFullyPaid
		} else {
			l.Status = loan.StatusPartiallyPaid
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		out = RepayResultDTO{Repayment: toRepaymentDTO(rp), Loan: toDTO(l)}
		return nil
	})
	if err != nil {
		return nil, mapLoanErr(err)
	}
	return &out, nil
}

// MarkDefaulted is the entry point for the external arrears sweep.
func (u *Usecase) MarkDefaulted(ctx context.Context, actor Actor, loanID string) (*LoanDTO, error) {
	var dto LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.Status.CanTransitionTo(loan.StatusDefaulted) {
			return fmt.Errorf("%w: only disbursed or partially paid loans can default", loan.ErrInvalidTransition)
		}
		l.Status = loan.StatusDefaulted
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapLoanErr(err)
	}
	return &dto, nil
}

// Get returns the loan with its repayment history and derived schedule.
// Members may only see their own loans.
func (u *Usecase) Get(ctx context.Context, actor Actor, loanID string) (*LoanDetailDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, mapLoanErr(err)
	}
	if actor.Role == user.RoleMember && l.UserID != actor.UserID {
		return nil, loan.ErrForbidden
	}

	rows, err := u.repayments.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	repayments := make([]RepaymentDTO, 0, len(rows))
	for i := range rows {
		repayments = append(repayments, toRepaymentDTO(&rows[i]))
	}

	return &LoanDetailDTO{
		LoanDTO:         toDTO(l),
		Repayments:      repayments,
		PaymentSchedule: paymentSchedule(l, u.now()),
	}, nil
}

// List returns loans scoped by the actor's role: members see their own,
// leaders and treasurers see their groups', admins and auditors see all.
func (u *Usecase) List(ctx context.Context, actor Actor, in ListInput) (*LoanListDTO, error) {
	f := loan.ListFilter{
		Status:  loan.Status(in.Status),
		GroupID: in.GroupID,
		UserID:  in.UserID,
		Page:    in.Page,
		Limit:   in.Limit,
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}

	switch actor.Role {
	case user.RoleMember:
		f.UserID = actor.UserID
	case user.RoleLeader, user.RoleTreasurer:
		groupIDs, err := u.memberships.GroupIDsByUserAndRoles(ctx, actor.UserID,
			[]membership.Role{membership.RoleLeader, membership.RoleTreasurer})
		if err != nil {
			return nil, err
		}
		if len(groupIDs) == 0 {
			f.UserID = actor.UserID
		} else {
			f.GroupIDs = groupIDs
		}
	}

	rows, total, err := u.loans.List(ctx, f)
	if err != nil {
		return nil, err
	}
	loans := make([]LoanDTO, 0, len(rows))
	for i := range rows {
		loans = append(loans, toDTO(&rows[i]))
	}
	return &LoanListDTO{Loans: loans, Page: f.Page, Limit: f.Limit, Total: total}, nil
}

// Repayments lists the repayment history, with the same member scoping as Get.
func (u *Usecase) Repayments(ctx context.Context, actor Actor, loanID string) ([]RepaymentDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, mapLoanErr(err)
	}
	if actor.Role == user.RoleMember && l.UserID != actor.UserID {
		return nil, loan.ErrForbidden
	}
	rows, err := u.repayments.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	out := make([]RepaymentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toRepaymentDTO(&rows[i]))
	}
	return out, nil
}

func mapLoanErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loan.ErrNotFound
	}
	return err
}
