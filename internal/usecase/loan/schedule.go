package loan

import (
	"time"

	"vsla-backend/internal/domain/loan"
)

// paymentSchedule derives the installment plan from the loan's terms. It is
// a pure read: installment n falls one period after installment n-1,
// starting at the first payment date, and is overdue once its due date has
// passed.
func paymentSchedule(l *loan.Loan, now time.Time) []InstallmentDTO {
	if l.FirstPaymentDate == nil {
		return nil
	}
	first := *l.FirstPaymentDate
	count := l.InstallmentCount()
	out := make([]InstallmentDTO, 0, count)
	for n := 1; n <= count; n++ {
		due := l.RepaymentFrequency.AddPeriods(first, n-1)
		status := "pending"
		if due.Before(now) {
			status = "overdue"
		}
		out = append(out, InstallmentDTO{
			PaymentNumber: n,
			DueDate:       due,
			Amount:        l.InstallmentAmount,
			Status:        status,
		})
	}
	return out
}
