package deduction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deduction is a manual salary deduction. Deductions accumulate for the
// lifetime of the employee and are never reset by a payroll run.
type Deduction struct {
	ID          string
	EmployeeID  string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	RecordedAt  time.Time
}
