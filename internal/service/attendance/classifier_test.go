package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestClassifyDayShift(t *testing.T) {
	tests := []struct {
		name        string
		arrival     string
		wantStatus  attendance.Status
		wantMinutes int
	}{
		{"well before start", "08:00", attendance.StatusOnTime, 0},
		{"exactly on time", "09:30", attendance.StatusOnTime, 0},
		{"one minute late", "09:31", attendance.StatusLate, 1},
		{"forty five late", "10:15", attendance.StatusLate, 45},
		{"hours late", "13:30", attendance.StatusLate, 240},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, minutes, err := Classify(day("2025-03-10"), tc.arrival, employee.ShiftDay)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantMinutes, minutes)
		})
	}
}

func TestClassifyNightShift(t *testing.T) {
	tests := []struct {
		name        string
		arrival     string
		wantStatus  attendance.Status
		wantMinutes int
	}{
		{"early evening", "21:00", attendance.StatusOnTime, 0},
		{"exactly on time", "21:30", attendance.StatusOnTime, 0},
		{"late same evening", "22:00", attendance.StatusLate, 30},
		{"after midnight counts from the evening start", "00:30", attendance.StatusLate, 180},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, minutes, err := Classify(day("2025-03-10"), tc.arrival, employee.ShiftNight)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantMinutes, minutes)
		})
	}
}

func TestClassifyLateImpliesPositiveMinutes(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 15, 29, 30, 31, 59} {
			arrival := timeString(hour, minute)
			status, minutes, err := Classify(day("2025-03-10"), arrival, employee.ShiftDay)
			require.NoError(t, err)
			assert.Equal(t, minutes > 0, status == attendance.StatusLate, "arrival %s", arrival)
		}
	}
}

func TestClassifyInvalidTime(t *testing.T) {
	for _, bad := range []string{"", "9:3", "25:00", "09:61", "noon", "09-30"} {
		_, _, err := Classify(day("2025-03-10"), bad, employee.ShiftDay)
		assert.ErrorIs(t, err, attendance.ErrInvalidTime, "input %q", bad)
	}
}

func TestOverstayDayShift(t *testing.T) {
	d := day("2025-03-10")

	over, err := Overstay(d, "17:30", employee.ShiftDay, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, over)

	over, err = Overstay(d, "18:45", employee.ShiftDay, 0)
	require.NoError(t, err)
	assert.Equal(t, 75, over)

	// Approved overtime is subtracted, floored at zero.
	over, err = Overstay(d, "18:45", employee.ShiftDay, 60)
	require.NoError(t, err)
	assert.Equal(t, 15, over)

	over, err = Overstay(d, "18:00", employee.ShiftDay, 120)
	require.NoError(t, err)
	assert.Equal(t, 0, over)
}

func TestOverstayNightShiftEndsNextMorning(t *testing.T) {
	d := day("2025-03-10")

	// Leaving before midnight is always before the 05:30 next-day end.
	over, err := Overstay(d, "23:00", employee.ShiftNight, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, over)

	over, err = Overstay(d, "05:30", employee.ShiftNight, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, over)

	over, err = Overstay(d, "06:15", employee.ShiftNight, 0)
	require.NoError(t, err)
	assert.Equal(t, 45, over)
}

func timeString(hour, minute int) string {
	const digits = "0123456789"
	return string([]byte{digits[hour/10], digits[hour%10], ':', digits[minute/10], digits[minute%10]})
}
