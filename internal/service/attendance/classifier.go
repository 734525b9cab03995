package attendance

import (
	"math"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

// Shift schedule boundaries. The night shift spans midnight: it starts at
// 21:30 and ends at 05:30 the next calendar day.
const (
	dayArrivalHour     = 9
	dayArrivalMinute   = 30
	dayDepartureHour   = 17
	dayDepartureMinute = 30

	nightArrivalHour     = 21
	nightArrivalMinute   = 30
	nightDepartureHour   = 5
	nightDepartureMinute = 30
)

// Classify determines whether an arrival is on time or late for the given
// shift and date, and by how many minutes. It is a pure function.
func Classify(date time.Time, arrivalTime string, shift employee.Shift) (attendance.Status, int, error) {
	arrival, err := composeInstant(date, arrivalTime, shift)
	if err != nil {
		return "", 0, err
	}

	var expected time.Time
	switch shift {
	case employee.ShiftNight:
		expected = at(date, nightArrivalHour, nightArrivalMinute)
	default:
		expected = at(date, dayArrivalHour, dayArrivalMinute)
	}

	if !arrival.After(expected) {
		return attendance.StatusOnTime, 0, nil
	}
	minutes := roundMinutes(arrival.Sub(expected))
	if minutes <= 0 {
		return attendance.StatusOnTime, 0, nil
	}
	return attendance.StatusLate, minutes, nil
}

// Overstay returns the minutes worked past the expected departure, net of
// approved overtime, floored at zero. It does not affect lateness status.
func Overstay(date time.Time, departureTime string, shift employee.Shift, approvedOvertimeMinutes int) (int, error) {
	departure, err := composeInstant(date, departureTime, shift)
	if err != nil {
		return 0, err
	}

	var expected time.Time
	switch shift {
	case employee.ShiftNight:
		expected = at(date.AddDate(0, 0, 1), nightDepartureHour, nightDepartureMinute)
	default:
		expected = at(date, dayDepartureHour, dayDepartureMinute)
	}

	over := roundMinutes(departure.Sub(expected)) - approvedOvertimeMinutes
	if over < 0 {
		return 0, nil
	}
	return over, nil
}

// composeInstant builds the instant for a time-of-day on the shift's date.
// For night shifts, times of day before noon belong to the morning after the
// shift started.
func composeInstant(date time.Time, timeOfDay string, shift employee.Shift) (time.Time, error) {
	hour, minute, ok := validator.ParseTimeOfDay(timeOfDay)
	if !ok {
		return time.Time{}, attendance.ErrInvalidTime
	}
	instant := at(date, hour, minute)
	if shift == employee.ShiftNight && hour < 12 {
		instant = instant.AddDate(0, 0, 1)
	}
	return instant, nil
}

func at(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

func roundMinutes(d time.Duration) int {
	return int(math.Round(d.Seconds() / 60))
}
