package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/validation"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestBuiltinSeedIsValid(t *testing.T) {
	repo := NewSeedRepository("", "")
	list, err := repo.Employees()
	require.NoError(t, err)
	require.NotEmpty(t, list)

	catalog, err := repo.Catalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"IT", "Tasarım", "İK", "Pazarlama"}, values(catalog.Departments))
	assert.Equal(t, []string{"Junior", "Middle", "Senior"}, values(catalog.Positions))

	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	v := validation.New(validation.WithClock(func() time.Time { return now }))
	for _, e := range list {
		for _, f := range domain.Fields() {
			assert.Nil(t, v.Validate(f, e.Value(f)), "employee %d field %s", e.ID, f)
			assert.Nil(t, validation.ValidateCatalogField(catalog, f, e.Value(f)), "employee %d field %s", e.ID, f)
		}
	}
}

func values(opts []domain.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

func TestSeedFromJSONFile(t *testing.T) {
	path := writeFile(t, "seed.json", `[{"id":7,"firstName":"Gizem","lastName":"Candemir",
		"dateOfEmployment":"2020-01-01","dateOfBirth":"1990-01-01","phone":"+90 555 123 45 67",
		"email":"gizem@example.com","department":"Engineering","position":"Staff Frontend Engineer"}]`)

	list, err := NewSeedRepository(path, "").Employees()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 7, list[0].ID)
	assert.Equal(t, "Staff Frontend Engineer", list[0].Position)
}

func TestSeedRejectsBadRecords(t *testing.T) {
	dup := writeFile(t, "dup.yaml", `
- {id: 1, firstName: A, lastName: B, dateOfEmployment: "2020-01-01", dateOfBirth: "1990-01-01", phone: "1", email: a@b.c, department: IT, position: Junior}
- {id: 1, firstName: C, lastName: D, dateOfEmployment: "2020-01-01", dateOfBirth: "1990-01-01", phone: "1", email: c@d.e, department: IT, position: Junior}
`)
	_, err := NewSeedRepository(dup, "").Employees()
	require.ErrorIs(t, err, ErrDuplicateID)

	missing := writeFile(t, "missing.yaml", `- {id: 0, firstName: A}`)
	_, err = NewSeedRepository(missing, "").Employees()
	require.Error(t, err)

	_, err = NewSeedRepository(filepath.Join(t.TempDir(), "nope.yaml"), "").Employees()
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCatalogOverride(t *testing.T) {
	path := writeFile(t, "catalog.yaml", `
departments:
  - {value: Engineering, label: Engineering}
positions:
  - {value: Staff Frontend Engineer, label: Staff Frontend Engineer}
`)
	c, err := NewSeedRepository("", path).Catalog()
	require.NoError(t, err)
	assert.True(t, c.HasDepartment("Engineering"))
	assert.False(t, c.HasDepartment("IT"))

	empty := writeFile(t, "empty.yaml", `departments: []`)
	_, err = NewSeedRepository("", empty).Catalog()
	require.Error(t, err)
}
