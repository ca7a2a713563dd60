package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-directory/internal/domain"
)

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestValidator() *Validator {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func TestValidate(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		field   domain.Field
		value   string
		wantErr string
	}{
		{"first name ok", domain.FieldFirstName, "Gizem", ""},
		{"first name turkish letters", domain.FieldFirstName, "Çağrı İlkşen", ""},
		{"first name blank", domain.FieldFirstName, "   ", "First name is required"},
		{"first name short", domain.FieldFirstName, "A", "First name must be at least 2 characters"},
		{"first name digits", domain.FieldFirstName, "Ab1", "First name should only contain letters"},
		{"last name short", domain.FieldLastName, " B ", "Last name must be at least 2 characters"},
		{"employment past", domain.FieldDateOfEmployment, "2023-01-01", ""},
		{"employment today", domain.FieldDateOfEmployment, "2025-06-15", ""},
		{"employment future", domain.FieldDateOfEmployment, "2025-06-16", "Employment date cannot be in the future"},
		{"employment garbage", domain.FieldDateOfEmployment, "yesterday", "Please enter a valid employment date"},
		{"birth exactly 18", domain.FieldDateOfBirth, "2007-12-31", ""},
		{"birth 17", domain.FieldDateOfBirth, "2008-01-01", "Age must be between 18-70 years"},
		{"birth exactly 70", domain.FieldDateOfBirth, "1955-01-01", ""},
		{"birth 71", domain.FieldDateOfBirth, "1954-12-31", "Age must be between 18-70 years"},
		{"birth required", domain.FieldDateOfBirth, "", "Date of birth is required"},
		{"phone ok", domain.FieldPhone, "+90 (555) 111-22-33", ""},
		{"phone letters", domain.FieldPhone, "555-CALL-NOW", "Please enter a valid phone number"},
		{"phone short", domain.FieldPhone, "+90 555 11", "Phone number must be at least 10 digits"},
		{"email ok", domain.FieldEmail, "a@b.co", ""},
		{"email invalid", domain.FieldEmail, "invalid-email", "Please enter a valid email address"},
		{"email required", domain.FieldEmail, "", "Email address is required"},
		{"department required", domain.FieldDepartment, " ", "Department selection is required"},
		{"position ok", domain.FieldPosition, "Senior", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(tt.field, tt.value)
			if tt.wantErr == "" {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.Equal(t, tt.wantErr, got.Message)
			require.Equal(t, tt.field, got.Field)
			require.NotEmpty(t, got.ID)
		})
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	v := newTestValidator()
	for _, f := range domain.Fields() {
		for _, value := range []string{"", "x", "invalid-email", "1990-01-01", "+905551112233"} {
			require.Equal(t, v.Validate(f, value), v.Validate(f, value))
		}
	}
}

func TestValidateUnknownFieldPanics(t *testing.T) {
	require.Panics(t, func() { newTestValidator().Validate(domain.Field("salary"), "1") })
}

func TestValidateAll(t *testing.T) {
	errs := newTestValidator().ValidateAll(map[domain.Field]string{
		domain.FieldFirstName: "Gizem",
		domain.FieldEmail:     "nope",
	})
	require.NotContains(t, errs, domain.FieldFirstName)
	require.Contains(t, errs, domain.FieldEmail)
	require.Contains(t, errs, domain.FieldPhone)
	require.Len(t, errs, 7)
}

func TestValidateCatalog(t *testing.T) {
	c := domain.Catalog{
		Departments: []domain.Option{{Value: "IT", Label: "IT"}},
		Positions:   []domain.Option{{Value: "Senior", Label: "Senior"}},
	}
	require.Nil(t, ValidateCatalog(c, domain.Employee{Department: "IT", Position: "Senior"}))

	err := ValidateCatalog(c, domain.Employee{Department: "Sales", Position: "Senior"})
	require.NotNil(t, err)
	require.Equal(t, domain.FieldDepartment, err.Field)

	err = ValidateCatalog(c, domain.Employee{Department: "IT", Position: "Lead"})
	require.NotNil(t, err)
	require.Equal(t, domain.FieldPosition, err.Field)
}
