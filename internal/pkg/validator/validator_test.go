package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmployeeID(t *testing.T) {
	valid := []string{"EMP-001", "john.doe", "A 12", "x_9"}
	invalid := []string{"", "   ", "emp#1", "a;b", "id@x", "emp/1"}
	for _, id := range valid {
		if !IsValidEmployeeID(id) {
			t.Errorf("IsValidEmployeeID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidEmployeeID(id) {
			t.Errorf("IsValidEmployeeID(%q) = true, want false", id)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:30", "21:30", "23:59"}
	invalid := []string{"24:00", "9:30", "09:60", "0930", "09:3", "", "ab:cd"}
	for _, s := range valid {
		if !IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidTimeOfDay(s) {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", s)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	h, m, ok := ParseTimeOfDay("21:30")
	if !ok || h != 21 || m != 30 {
		t.Errorf("ParseTimeOfDay(21:30) = (%d, %d, %v)", h, m, ok)
	}
	if _, _, ok := ParseTimeOfDay("25:00"); ok {
		t.Error("ParseTimeOfDay(25:00) accepted, want rejected")
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-06-10"); !ok {
		t.Error("IsValidDate(2024-06-10) = false, want true")
	}
	for _, s := range []string{"2024-13-01", "2024-06-32", "06/10/2024", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}
