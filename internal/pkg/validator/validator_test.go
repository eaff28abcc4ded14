package validator

import (
	"testing"
	"time"
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

func TestParseDay(t *testing.T) {
	want := time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		input string
		ok    bool
	}{
		{"2023-07-15", true},
		{"2023-07-15T00:00:00Z", true},
		{"2023-07-15T09:30:00.123Z", true},
		{"2023-07-15T23:30:00-00:00", true},
		{"15/07/2023", false},
		{"", false},
	}
	for _, c := range cases {
		got, ok := ParseDay(c.input)
		if ok != c.ok {
			t.Errorf("ParseDay(%q) ok = %v, want %v", c.input, ok, c.ok)
			continue
		}
		if ok && !got.Equal(want) {
			t.Errorf("ParseDay(%q) = %v, want %v", c.input, got, want)
		}
	}
}

type sample struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=admin employee"`
	Count *int   `json:"count" validate:"omitempty,gte=1"`
	Skip  string `json:"-" validate:"omitempty"`
}

func TestStruct(t *testing.T) {
	zero := 0
	errs := Struct(sample{Name: "toolong", Email: "nope", Role: "boss", Count: &zero})
	got := errs.ToMap()

	want := map[string]string{
		"name":  "name must be at most 5 characters",
		"email": "invalid email format",
		"role":  "role must be one of: admin, employee",
		"count": "count must be greater than or equal to 1",
	}
	if len(got) != len(want) {
		t.Fatalf("Struct() reported %d fields, want %d: %v", len(got), len(want), got)
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("field %q = %q, want %q", field, got[field], msg)
		}
	}

	if errs := Struct(sample{Name: "ok", Email: "a@b.cd"}); errs.Err() != nil {
		t.Errorf("Struct(valid) = %v, want nil", errs)
	}
}

func TestValidationErrors_FirstMessageWins(t *testing.T) {
	var errs ValidationErrors
	errs.Add("endDate", "endDate is required")
	errs.Add("endDate", "endDate must not be before startDate")

	if !errs.Has("endDate") {
		t.Fatal("Has(endDate) = false, want true")
	}
	if got := errs.ToMap()["endDate"]; got != "endDate is required" {
		t.Errorf("ToMap()[endDate] = %q", got)
	}
	if errs.Err() == nil {
		t.Error("Err() = nil, want error")
	}
}
