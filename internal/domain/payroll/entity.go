package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "Pending"
	StatusPaid    Status = "Paid"
)

// Breakdown is the full payroll calculation for one employee and month.
// All money values are computed exactly with decimals and rounded to two
// places only at presentation time.
type Breakdown struct {
	EmployeeID   string
	EmployeeName string
	Year         int
	Month        time.Month

	WorkingDays int // days the employee actually worked
	AbsentDays  int
	LeaveDays   int
	LateMinutes int // summed across the month

	BaseSalary        decimal.Decimal
	DailySalary       decimal.Decimal
	LateDeduction     decimal.Decimal
	AbsentDeduction   decimal.Decimal
	OtherDeductions   decimal.Decimal
	TotalDeductions   decimal.Decimal
	Bonus             decimal.Decimal
	NetSalary         decimal.Decimal
	AttendancePercent decimal.Decimal

	Status       Status
	CalculatedAt time.Time
}
