package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"vsla-backend/internal/domain/loan"
	"vsla-backend/internal/domain/user"
)

// Actor is the authenticated caller, taken from the bearer token.
type Actor struct {
	UserID string
	Role   user.Role
}

type RequestLoanInput struct {
	GroupID            string          `json:"group_id"`
	Amount             decimal.Decimal `json:"amount"`
	Purpose            string          `json:"purpose"`
	PurposeCategory    string          `json:"purpose_category"`
	RepaymentTerm      int             `json:"repayment_term"`
	RepaymentFrequency string          `json:"repayment_frequency"`
	// InterestRate overrides the group default when present.
	InterestRate *decimal.Decimal `json:"interest_rate,omitempty"`
}

type ReviewInput struct {
	Action   string `json:"action"` // approve | reject
	Comments string `json:"comments,omitempty"`
}

type DisburseInput struct {
	Method    string `json:"disbursement_method"`
	Reference string `json:"disbursement_reference,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type RepayInput struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"payment_method"`
	Reference string          `json:"payment_reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

type ListInput struct {
	Status  string
	GroupID string
	UserID  string
	Page    int
	Limit   int
}

type LoanDTO struct {
	LoanID             string          `json:"loan_id"`
	UserID             string          `json:"user_id"`
	GroupID            string          `json:"group_id"`
	Amount             decimal.Decimal `json:"amount"`
	Purpose            string          `json:"purpose"`
	PurposeCategory    string          `json:"purpose_category"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	RepaymentTerm      int             `json:"repayment_term"`
	RepaymentFrequency string          `json:"repayment_frequency"`
	Status             string          `json:"status"`
	TotalInterest      decimal.Decimal `json:"total_interest"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	InstallmentAmount  decimal.Decimal `json:"installment_amount"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	SubmittedAt        time.Time       `json:"submitted_at"`
	IssuedDate         *time.Time      `json:"issued_date,omitempty"`
	DueDate            *time.Time      `json:"due_date,omitempty"`
	FirstPaymentDate   *time.Time      `json:"first_payment_date,omitempty"`
	RejectionReason    string          `json:"rejection_reason,omitempty"`
}

type RepaymentDTO struct {
	RepaymentID      string          `json:"repayment_id"`
	LoanID           string          `json:"loan_id"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	RecordedBy       string          `json:"recorded_by"`
	CreatedAt        time.Time       `json:"created_at"`
}

type InstallmentDTO struct {
	PaymentNumber int             `json:"payment_number"`
	DueDate       time.Time       `json:"due_date"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"` // pending | overdue
}

type LoanDetailDTO struct {
	LoanDTO
	Repayments      []RepaymentDTO   `json:"repayments"`
	PaymentSchedule []InstallmentDTO `json:"payment_schedule"`
}

type RepayResultDTO struct {
	Repayment RepaymentDTO `json:"repayment"`
	Loan      LoanDTO      `json:"loan"`
}

type LoanListDTO struct {
	Loans []LoanDTO `json:"loans"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Total int64     `json:"total"`
}

func toDTO(l *loan.Loan) LoanDTO {
	return LoanDTO{
		LoanID:             l.LoanID,
		UserID:             l.UserID,
		GroupID:            l.GroupID,
		Amount:             l.Amount,
		Purpose:            l.Purpose,
		PurposeCategory:    string(l.Category),
		InterestRate:       l.InterestRate,
		RepaymentTerm:      l.RepaymentTerm,
		RepaymentFrequency: string(l.RepaymentFrequency),
		Status:             string(l.Status),
		TotalInterest:      l.TotalInterest,
		TotalAmount:        l.TotalAmount,
		InstallmentAmount:  l.InstallmentAmount,
		OutstandingBalance: l.OutstandingBalance,
		TotalPaid:          l.TotalPaid,
		SubmittedAt:        l.SubmittedAt,
		IssuedDate:         l.IssuedDate,
		DueDate:            l.DueDate,
		FirstPaymentDate:   l.FirstPaymentDate,
		RejectionReason:    l.RejectionReason,
	}
}

func toRepaymentDTO(r *loan.Repayment) RepaymentDTO {
	return RepaymentDTO{
		RepaymentID:      r.RepaymentID,
		LoanID:           r.LoanID,
		Amount:           r.Amount,
		PaymentMethod:    string(r.PaymentMethod),
		PaymentReference: r.PaymentReference,
		RecordedBy:       r.RecordedBy,
		CreatedAt:        r.CreatedAt,
	}
}
