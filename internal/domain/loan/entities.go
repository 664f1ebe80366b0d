package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrValidation        = errors.New("invalid loan input")
	ErrInvalidTransition = errors.New("invalid loan state transition")
	ErrForbidden         = errors.New("access denied to this loan")
)

type Status string

const (
	StatusPending       Status = "pending"
	StatusUnderReview   Status = "under_review"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
	StatusDisbursed     Status = "disbursed"
	StatusPartiallyPaid Status = "partially_paid"
	StatusFullyPaid     Status = "fully_paid"
	StatusDefaulted     Status = "defaulted"
)

// transitions is the forward-only state machine. Anything not listed is
// rejected with ErrInvalidTransition.
var transitions = map[Status][]Status{
	StatusPending:       {StatusUnderReview, StatusRejected},
	StatusUnderReview:   {StatusApproved, StatusRejected},
	StatusApproved:      {StatusDisbursed},
	StatusDisbursed:     {StatusPartiallyPaid, StatusFullyPaid, StatusDefaulted},
	StatusPartiallyPaid: {StatusPartiallyPaid, StatusFullyPaid, StatusDefaulted},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal statuses permit no further financial mutation.
func (s Status) Terminal() bool {
	return s == StatusFullyPaid || s == StatusRejected || s == StatusDefaulted
}

// Repayable reports whether a loan in this status may accept a repayment.
func (s Status) Repayable() bool {
	return s == StatusDisbursed || s == StatusPartiallyPaid
}

// Outstanding statuses block a borrower from requesting another loan.
func OutstandingStatuses() []Status {
	return []Status{StatusApproved, StatusDisbursed, StatusPartiallyPaid}
}

type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	return f == FrequencyWeekly || f == FrequencyBiweekly || f == FrequencyMonthly
}

// Multiplier is the number of installments per term period.
func (f Frequency) Multiplier() int {
	switch f {
	case FrequencyWeekly:
		return 4
	case FrequencyBiweekly:
		return 2
	default:
		return 1
	}
}

// AddPeriods advances t by n repayment periods: exact 7/14-day offsets for
// weekly/biweekly, calendar months for monthly.
func (f Frequency) AddPeriods(t time.Time, n int) time.Time {
	switch f {
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7*n)
	case FrequencyBiweekly:
		return t.AddDate(0, 0, 14*n)
	default:
		return t.AddDate(0, n, 0)
	}
}

type PurposeCategory string

const (
	PurposeBusiness    PurposeCategory = "business"
	PurposeEducation   PurposeCategory = "education"
	PurposeHealth      PurposeCategory = "health"
	PurposeAgriculture PurposeCategory = "agriculture"
	PurposeEmergency   PurposeCategory = "emergency"
	PurposeOther       PurposeCategory = "other"
)

func (p PurposeCategory) Valid() bool {
	switch p {
	case PurposeBusiness, PurposeEducation, PurposeHealth, PurposeAgriculture, PurposeEmergency, PurposeOther:
		return true
	}
	return false
}

type DisbursementMethod string

const (
	MethodCash         DisbursementMethod = "cash"
	MethodMobileMoney  DisbursementMethod = "mobile_money"
	MethodBankTransfer DisbursementMethod = "bank_transfer"
)

func (m DisbursementMethod) Valid() bool {
	return m == MethodCash || m == MethodMobileMoney || m == MethodBankTransfer
}

type Loan struct {
	ID       uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID   string `gorm:"size:36;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	UserID   string `gorm:"size:36;index:idx_loans_user" json:"user_id"`
	GroupID  string `gorm:"size:36;index:idx_loans_group" json:"group_id"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Purpose  string          `gorm:"size:500" json:"purpose"`
	Category PurposeCategory `gorm:"type:enum('business','education','health','agriculture','emergency','other');default:'other'" json:"purpose_category"`

	InterestRate       decimal.Decimal `gorm:"type:decimal(5,2)" json:"interest_rate"`
	RepaymentTerm      int             `json:"repayment_term"`
	RepaymentFrequency Frequency       `gorm:"type:enum('weekly','biweekly','monthly');default:'monthly'" json:"repayment_frequency"`

	Status Status `gorm:"type:enum('pending','under_review','approved','rejected','disbursed','partially_paid','fully_paid','defaulted');default:'pending'" json:"status"`

	SubmittedAt     time.Time  `json:"submitted_at"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy      string     `gorm:"size:36" json:"reviewed_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ApprovedBy      string     `gorm:"size:36" json:"approved_by,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`

	DisbursedAt           *time.Time         `json:"disbursed_at,omitempty"`
	DisbursedBy           string             `gorm:"size:36" json:"disbursed_by,omitempty"`
	DisbursementMethod    DisbursementMethod `gorm:"type:enum('cash','mobile_money','bank_transfer')" json:"disbursement_method,omitempty"`
	DisbursementReference string             `gorm:"size:100" json:"disbursement_reference,omitempty"`

	IssuedDate       *time.Time `gorm:"type:date" json:"issued_date,omitempty"`
	DueDate          *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	FirstPaymentDate *time.Time `gorm:"type:date" json:"first_payment_date,omitempty"`

	TotalInterest      decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_interest"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_amount"`
	InstallmentAmount  decimal.Decimal `gorm:"type:decimal(12,2)" json:"installment_amount"`
	OutstandingBalance decimal.Decimal `gorm:"type:decimal(12,2)" json:"outstanding_balance"`
	TotalPaid          decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_paid"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// InstallmentCount is the total number of scheduled payments.
func (l *Loan) InstallmentCount() int {
	return l.RepaymentTerm * l.RepaymentFrequency.Multiplier()
}

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentMobileMoney  PaymentMethod = "mobile_money"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// Repayment rows are immutable once created; a mistaken entry is corrected
// by a compensating entry, never an edit.
type Repayment struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"-"`
	RepaymentID      string          `gorm:"size:36;uniqueIndex:ux_repayments_repayment_id" json:"repayment_id"`
	LoanID           string          `gorm:"size:36;index:idx_repayments_loan" json:"loan_id"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	PaymentMethod    PaymentMethod   `gorm:"type:enum('cash','mobile_money','bank_transfer');default:'cash'" json:"payment_method"`
	PaymentReference string          `gorm:"size:100" json:"payment_reference,omitempty"`
	Notes            string          `gorm:"type:text" json:"notes,omitempty"`
	RecordedBy       string          `gorm:"size:36" json:"recorded_by"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Repayment) TableName() string { return "repayments" }
