package leave

import "time"

type Type string

const (
	TypePaid      Type = "paid"
	TypeSick      Type = "sick"
	TypeMaternity Type = "maternity"
	TypePaternity Type = "paternity"
	TypeRestDay   Type = "rest_day"
)

func ValidTypes() []string {
	return []string{string(TypePaid), string(TypeSick), string(TypeMaternity), string(TypePaternity), string(TypeRestDay)}
}

// Record is an approved leave span. StartDate and EndDate are inclusive
// calendar dates at midnight UTC.
type Record struct {
	ID         string
	EmployeeID string
	Type       Type
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Covers reports whether date falls inside the leave span.
func (r Record) Covers(date time.Time) bool {
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}

// Days returns the number of calendar days the span covers.
func (r Record) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}
