package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEmployeeValueWith(t *testing.T) {
	var e Employee
	for _, f := range Fields() {
		e = e.With(f, string(f)+"-v")
	}
	for _, f := range Fields() {
		require.Equal(t, string(f)+"-v", e.Value(f))
	}
}

func TestParseField(t *testing.T) {
	f, err := ParseField("email")
	require.NoError(t, err)
	require.Equal(t, FieldEmail, f)

	_, err = ParseField("salary")
	require.Error(t, err)
}

func TestYearsSinceIgnoresMonthAndDay(t *testing.T) {
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	years, ok := YearsSince("2007-12-31", now)
	require.True(t, ok)
	require.Equal(t, 18, years)

	_, ok = YearsSince("not-a-date", now)
	require.False(t, ok)
}

func TestFullName(t *testing.T) {
	require.Equal(t, "Gizem Candemir", Employee{FirstName: "Gizem", LastName: "Candemir"}.FullName())
}

func TestViewModeToggle(t *testing.T) {
	require.Equal(t, ViewModeGrid, ViewModeList.Toggle())
	require.Equal(t, ViewModeList, ViewModeGrid.Toggle())

	_, err := ParseViewMode("table")
	require.Error(t, err)
}

func TestCatalogMembership(t *testing.T) {
	c := Catalog{
		Departments: []Option{{Value: "IT", Label: "Information Technology"}},
		Positions:   []Option{{Value: "Senior", Label: "Senior"}},
	}
	require.True(t, c.HasDepartment("IT"))
	require.False(t, c.HasDepartment("Senior"))
	require.True(t, c.HasPosition("Senior"))
	require.Len(t, c.Options(FieldDepartment), 1)
	require.Nil(t, c.Options(FieldEmail))
}
