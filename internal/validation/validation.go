// Package validation holds the field-level rules applied to employee input.
//
// Every rule is a pure function of the field, the raw value and the injected
// clock. Rules of a field run in order and the first failure wins; the
// required check always runs first.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/spec-kit/employee-directory/internal/domain"
)

const (
	minNameLength  = 2
	minPhoneDigits = 10
	minAge         = 18
	maxAge         = 70
)

var (
	namePattern  = regexp.MustCompile(`^[a-zA-ZğĞıİöÖüÜşŞçÇ\s]+$`)
	phonePattern = regexp.MustCompile(`^[0-9\s\-()+]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// FieldError is a recoverable, per-field validation failure.
type FieldError struct {
	Field domain.Field
	// ID is the translation message ID.
	ID string
	// Message is the English default text.
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func newFieldError(f domain.Field, rule, message string) *FieldError {
	return &FieldError{
		Field:   f,
		ID:      fmt.Sprintf("Employee.Validation.%s.%s", f, rule),
		Message: message,
	}
}

// Validator evaluates field rules against a clock.
type Validator struct {
	now func() time.Time
}

// Option customises a Validator.
type Option func(*Validator)

// WithClock overrides the time source used by date rules.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// New constructs a Validator using the wall clock unless overridden.
func New(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate returns the first failing rule for the field, or nil.
// It panics on a field identifier outside the employee model.
func (v *Validator) Validate(f domain.Field, raw string) *FieldError {
	trimmed := strings.TrimSpace(raw)
	switch f {
	case domain.FieldFirstName:
		return v.name(f, "First name", raw, trimmed)
	case domain.FieldLastName:
		return v.name(f, "Last name", raw, trimmed)
	case domain.FieldDateOfEmployment:
		return v.employmentDate(raw, trimmed)
	case domain.FieldDateOfBirth:
		return v.birthDate(raw, trimmed)
	case domain.FieldPhone:
		return v.phone(raw, trimmed)
	case domain.FieldEmail:
		if trimmed == "" {
			return newFieldError(f, "Required", "Email address is required")
		}
		if !emailPattern.MatchString(raw) {
			return newFieldError(f, "Invalid", "Please enter a valid email address")
		}
		return nil
	case domain.FieldDepartment:
		if trimmed == "" {
			return newFieldError(f, "Required", "Department selection is required")
		}
		return nil
	case domain.FieldPosition:
		if trimmed == "" {
			return newFieldError(f, "Required", "Position selection is required")
		}
		return nil
	}
	panic(fmt.Sprintf("validation: unknown field %q", f))
}

// ValidateAll runs Validate for every field present in values. Fields
// without errors are omitted from the result.
func (v *Validator) ValidateAll(values map[domain.Field]string) map[domain.Field]*FieldError {
	errs := make(map[domain.Field]*FieldError)
	for _, f := range domain.Fields() {
		if err := v.Validate(f, values[f]); err != nil {
			errs[f] = err
		}
	}
	return errs
}

// ValidateCatalog reports the first select field whose value is not offered
// by the catalog.
func ValidateCatalog(c domain.Catalog, e domain.Employee) *FieldError {
	if err := ValidateCatalogField(c, domain.FieldDepartment, e.Department); err != nil {
		return err
	}
	return ValidateCatalogField(c, domain.FieldPosition, e.Position)
}

// ValidateCatalogField checks one select field. Free-text fields always pass.
func ValidateCatalogField(c domain.Catalog, f domain.Field, value string) *FieldError {
	switch f {
	case domain.FieldDepartment:
		if !c.HasDepartment(value) {
			return newFieldError(f, "Unknown", "Please select a department from the list")
		}
	case domain.FieldPosition:
		if !c.HasPosition(value) {
			return newFieldError(f, "Unknown", "Please select a position from the list")
		}
	}
	return nil
}

func (v *Validator) name(f domain.Field, label, raw, trimmed string) *FieldError {
	if trimmed == "" {
		return newFieldError(f, "Required", label+" is required")
	}
	if utf8.RuneCountInString(trimmed) < minNameLength {
		return newFieldError(f, "TooShort", fmt.Sprintf("%s must be at least %d characters", label, minNameLength))
	}
	if !namePattern.MatchString(raw) {
		return newFieldError(f, "Letters", label+" should only contain letters")
	}
	return nil
}

func (v *Validator) employmentDate(raw, trimmed string) *FieldError {
	f := domain.FieldDateOfEmployment
	if trimmed == "" {
		return newFieldError(f, "Required", "Employment date is required")
	}
	t, err := domain.ParseDate(raw)
	if err != nil {
		return newFieldError(f, "Invalid", "Please enter a valid employment date")
	}
	if t.After(v.now()) {
		return newFieldError(f, "Future", "Employment date cannot be in the future")
	}
	return nil
}

func (v *Validator) birthDate(raw, trimmed string) *FieldError {
	f := domain.FieldDateOfBirth
	if trimmed == "" {
		return newFieldError(f, "Required", "Date of birth is required")
	}
	age, ok := domain.YearsSince(raw, v.now())
	if !ok {
		return newFieldError(f, "Invalid", "Please enter a valid date of birth")
	}
	if age < minAge || age > maxAge {
		return newFieldError(f, "AgeRange", fmt.Sprintf("Age must be between %d-%d years", minAge, maxAge))
	}
	return nil
}

func (v *Validator) phone(raw, trimmed string) *FieldError {
	f := domain.FieldPhone
	if trimmed == "" {
		return newFieldError(f, "Required", "Phone number is required")
	}
	if !phonePattern.MatchString(raw) {
		return newFieldError(f, "Invalid", "Please enter a valid phone number")
	}
	if countDigits(raw) < minPhoneDigits {
		return newFieldError(f, "TooShort", fmt.Sprintf("Phone number must be at least %d digits", minPhoneDigits))
	}
	return nil
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
