package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date layout used by every date field.
const DateLayout = "2006-01-02"

// Field identifies one of the editable business fields of an employee.
type Field string

const (
	FieldFirstName        Field = "firstName"
	FieldLastName         Field = "lastName"
	FieldDateOfEmployment Field = "dateOfEmployment"
	FieldDateOfBirth      Field = "dateOfBirth"
	FieldPhone            Field = "phone"
	FieldEmail            Field = "email"
	FieldDepartment       Field = "department"
	FieldPosition         Field = "position"
)

var fieldOrder = []Field{
	FieldFirstName,
	FieldLastName,
	FieldDateOfEmployment,
	FieldDateOfBirth,
	FieldPhone,
	FieldEmail,
	FieldDepartment,
	FieldPosition,
}

// Fields returns the editable fields in form order.
func Fields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// ParseField resolves a field identifier.
func ParseField(raw string) (Field, error) {
	for _, f := range fieldOrder {
		if string(f) == raw {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", raw)
}

// Employee is the canonical record held by the store.
type Employee struct {
	ID               int    `json:"id" yaml:"id" validate:"gt=0"`
	FirstName        string `json:"firstName" yaml:"firstName" validate:"required"`
	LastName         string `json:"lastName" yaml:"lastName" validate:"required"`
	DateOfEmployment string `json:"dateOfEmployment" yaml:"dateOfEmployment" validate:"required"`
	DateOfBirth      string `json:"dateOfBirth" yaml:"dateOfBirth" validate:"required"`
	Phone            string `json:"phone" yaml:"phone" validate:"required"`
	Email            string `json:"email" yaml:"email" validate:"required"`
	Department       string `json:"department" yaml:"department" validate:"required"`
	Position         string `json:"position" yaml:"position" validate:"required"`
}

// Value returns the raw value of a business field.
func (e Employee) Value(f Field) string {
	switch f {
	case FieldFirstName:
		return e.FirstName
	case FieldLastName:
		return e.LastName
	case FieldDateOfEmployment:
		return e.DateOfEmployment
	case FieldDateOfBirth:
		return e.DateOfBirth
	case FieldPhone:
		return e.Phone
	case FieldEmail:
		return e.Email
	case FieldDepartment:
		return e.Department
	case FieldPosition:
		return e.Position
	}
	panic(fmt.Sprintf("domain: unknown field %q", f))
}

// With returns a copy of the employee with one field replaced.
func (e Employee) With(f Field, value string) Employee {
	switch f {
	case FieldFirstName:
		e.FirstName = value
	case FieldLastName:
		e.LastName = value
	case FieldDateOfEmployment:
		e.DateOfEmployment = value
	case FieldDateOfBirth:
		e.DateOfBirth = value
	case FieldPhone:
		e.Phone = value
	case FieldEmail:
		e.Email = value
	case FieldDepartment:
		e.Department = value
	case FieldPosition:
		e.Position = value
	default:
		panic(fmt.Sprintf("domain: unknown field %q", f))
	}
	return e
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Age is the calendar-year difference between now and the birth date.
// It returns false when the birth date cannot be parsed.
func (e Employee) Age(now time.Time) (int, bool) {
	return YearsSince(e.DateOfBirth, now)
}

// YearsOfService is the calendar-year difference between now and the
// employment date.
func (e Employee) YearsOfService(now time.Time) (int, bool) {
	return YearsSince(e.DateOfEmployment, now)
}

// ParseDate parses an ISO calendar date.
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(raw))
}

// YearsSince subtracts calendar years only; month and day are ignored.
func YearsSince(raw string, now time.Time) (int, bool) {
	t, err := ParseDate(raw)
	if err != nil {
		return 0, false
	}
	return now.Year() - t.Year(), true
}
