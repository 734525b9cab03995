package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                 string
	Name               string
	Shift              Shift
	WorkingDays        int // contractual days per month, salary divisor
	Salary             decimal.Decimal
	PaymentDay         int
	Department         string
	Status             Status
	Phone              *string
	Email              *string
	PhotoURL           *string
	DeactivationReason *string
	DeactivationNotes  *string
	DeactivatedAt      *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Shift string

const (
	ShiftDay   Shift = "day"
	ShiftNight Shift = "night"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
