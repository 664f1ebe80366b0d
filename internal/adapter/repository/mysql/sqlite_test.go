package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM, plain numeric money) ---

type loanSQLite struct {
	ID                 uint64         `gorm:"primaryKey;column:id"`
	LoanID             string         `gorm:"size:36;column:loan_id"`
	UserID             string         `gorm:"size:36;column:user_id"`
	GroupID            string         `gorm:"size:36;column:group_id"`
	Amount             float64        `gorm:"column:amount"`
	Purpose            string         `gorm:"column:purpose"`
	Category           string         `gorm:"type:text;column:category"`
	InterestRate       float64        `gorm:"column:interest_rate"`
	RepaymentTerm      int            `gorm:"column:repayment_term"`
	RepaymentFrequency string         `gorm:"type:text;column:repayment_frequency"`
	Status             string         `gorm:"type:text;column:status"`
	SubmittedAt        time.Time      `gorm:"column:submitted_at"`
	ReviewedAt         *time.Time     `gorm:"column:reviewed_at"`
	ReviewedBy         string         `gorm:"column:reviewed_by"`
	ApprovedAt         *time.Time     `gorm:"column:approved_at"`
	ApprovedBy         string         `gorm:"column:approved_by"`
	RejectedAt         *time.Time     `gorm:"column:rejected_at"`
	RejectionReason    string         `gorm:"column:rejection_reason"`
	DisbursedAt        *time.Time     `gorm:"column:disbursed_at"`
	DisbursedBy        string         `gorm:"column:disbursed_by"`
	DisbursementMethod string         `gorm:"type:text;column:disbursement_method"`
	DisbursementRef    string         `gorm:"column:disbursement_reference"`
	IssuedDate         *time.Time     `gorm:"column:issued_date"`
	DueDate            *time.Time     `gorm:"column:due_date"`
	FirstPaymentDate   *time.Time     `gorm:"column:first_payment_date"`
	TotalInterest      float64        `gorm:"column:total_interest"`
	TotalAmount        float64        `gorm:"column:total_amount"`
	InstallmentAmount  float64        `gorm:"column:installment_amount"`
	OutstandingBalance float64        `gorm:"column:outstanding_balance"`
	TotalPaid          float64        `gorm:"column:total_paid"`
	CreatedAt          time.Time      `gorm:"column:created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type repaymentSQLite struct {
	ID               uint64         `gorm:"primaryKey;column:id"`
	RepaymentID      string         `gorm:"size:36;column:repayment_id"`
	LoanID           string         `gorm:"size:36;column:loan_id"`
	Amount           float64        `gorm:"column:amount"`
	PaymentMethod    string         `gorm:"type:text;column:payment_method"`
	PaymentReference string         `gorm:"column:payment_reference"`
	Notes            string         `gorm:"column:notes"`
	RecordedBy       string         `gorm:"column:recorded_by"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (repaymentSQLite) TableName() string { return "repayments" }

type groupSQLite struct {
	ID                  uint64         `gorm:"primaryKey;column:id"`
	GroupID             string         `gorm:"size:36;column:group_id"`
	Name                string         `gorm:"column:name"`
	Description         string         `gorm:"column:description"`
	Location            string         `gorm:"column:location"`
	DefaultInterestRate float64        `gorm:"column:default_interest_rate"`
	MaxLoanAmount       float64        `gorm:"column:max_loan_amount"`
	MaxMembers          int            `gorm:"column:max_members"`
	MeetingFrequency    string         `gorm:"type:text;column:meeting_frequency"`
	MeetingDay          string         `gorm:"column:meeting_day"`
	Status              string         `gorm:"type:text;column:status"`
	CreatedAt           time.Time      `gorm:"column:created_at"`
	UpdatedAt           time.Time      `gorm:"column:updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (groupSQLite) TableName() string { return "groups" }

type membershipSQLite struct {
	ID           uint64         `gorm:"primaryKey;column:id"`
	MembershipID string         `gorm:"size:36;column:membership_id"`
	UserID       string         `gorm:"size:36;column:user_id;uniqueIndex:ux_memberships_user_group_active"`
	GroupID      string         `gorm:"size:36;column:group_id;uniqueIndex:ux_memberships_user_group_active"`
	Role         string         `gorm:"type:text;column:role"`
	Status       string         `gorm:"type:text;column:status"`
	JoinedAt     time.Time      `gorm:"column:joined_at"`
	LeftAt       *time.Time     `gorm:"column:left_at"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (membershipSQLite) TableName() string { return "memberships" }

type userSQLite struct {
	ID           uint64         `gorm:"primaryKey;column:id"`
	UserID       string         `gorm:"size:36;column:user_id"`
	Name         string         `gorm:"column:name"`
	Phone        string         `gorm:"column:phone"`
	Email        string         `gorm:"column:email"`
	PasswordHash string         `gorm:"column:password_hash"`
	Role         string         `gorm:"type:text;column:role"`
	Status       string         `gorm:"type:text;column:status"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (userSQLite) TableName() string { return "users" }

type contributionSQLite struct {
	ID             uint64         `gorm:"primaryKey;column:id"`
	ContributionID string         `gorm:"size:36;column:contribution_id"`
	UserID         string         `gorm:"size:36;column:user_id"`
	GroupID        string         `gorm:"size:36;column:group_id"`
	Amount         float64        `gorm:"column:amount"`
	ContributedOn  time.Time      `gorm:"column:contributed_on"`
	RecordedBy     string         `gorm:"column:recorded_by"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (contributionSQLite) TableName() string { return "contributions" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&loanSQLite{}, &repaymentSQLite{}, &groupSQLite{},
		&membershipSQLite{}, &userSQLite{}, &contributionSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
