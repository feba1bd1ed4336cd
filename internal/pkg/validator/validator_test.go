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

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-02-30", "01-01-2023", "", "2023/01/01"}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidTime(t *testing.T) {
	valid := []string{"00:00", "08:00", "12:30", "23:59"}
	invalid := []string{"24:00", "8:00", "12:60", "12:3", "12:30:00", "", "noon"}
	for _, s := range valid {
		if !IsValidTime(s) {
			t.Errorf("IsValidTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidTime(s) {
			t.Errorf("IsValidTime(%q) = true, want false", s)
		}
	}
}

func TestParsePositiveInt64(t *testing.T) {
	cases := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, c := range cases {
		got, ok := ParsePositiveInt64(c.input)
		if got != c.want || ok != c.ok {
			t.Errorf("ParsePositiveInt64(%q) = (%d, %v), want (%d, %v)", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"scheduled", "completed"}
	if !IsInSlice("completed", slice) {
		t.Error("IsInSlice(completed) = false, want true")
	}
	if IsInSlice("missed", slice) {
		t.Error("IsInSlice(missed) = true, want false")
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123Z"}
	invalid := []string{"2024-01-15 10:30:00", "2024-01-15", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "date is required"},
		{Field: "end_time", Message: "end_time must be after start_time"},
	}
	if got, want := errs.Error(), "date: date is required; end_time: end_time must be after start_time"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	m := errs.ToMap()
	if len(m) != 2 || m["date"] != "date is required" {
		t.Errorf("ToMap() = %v", m)
	}
}
