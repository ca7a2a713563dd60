package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/store"
	"github.com/spec-kit/employee-directory/internal/validation"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func gizem() map[domain.Field]string {
	return map[domain.Field]string{
		domain.FieldFirstName:        "Gizem",
		domain.FieldLastName:         "Candemir",
		domain.FieldDateOfEmployment: "2023-01-01",
		domain.FieldDateOfBirth:      "1993-04-01",
		domain.FieldPhone:            "+905551112233",
		domain.FieldEmail:            "gizem@example.com",
		domain.FieldDepartment:       "Engineering",
		domain.FieldPosition:         "Staff Frontend Engineer",
	}
}

func catalog() domain.Catalog {
	return domain.Catalog{
		Departments: []domain.Option{{Value: "Engineering", Label: "Engineering"}, {Value: "Analytics", Label: "Analytics"}},
		Positions:   []domain.Option{{Value: "Staff Frontend Engineer", Label: "Staff Frontend Engineer"}, {Value: "Junior", Label: "Junior"}},
	}
}

func newController(t *testing.T, s *store.Store, opts ...Option) *Controller {
	t.Helper()
	v := validation.New(validation.WithClock(func() time.Time { return fixedNow }))
	opts = append([]Option{WithWork(func(context.Context) error { return nil }), WithCatalog(catalog())}, opts...)
	return New(s, v, opts...)
}

func fill(t *testing.T, c *Controller, values map[domain.Field]string) {
	t.Helper()
	for f, v := range values {
		require.NoError(t, c.Change(f, v))
	}
}

func TestSubmitCreateAgainstEmptyStore(t *testing.T) {
	s := store.New(nil)
	require.Equal(t, store.Applied, s.Dispatch(store.ShowAddNew{}))

	c := newController(t, s)
	require.NoError(t, c.Mount(nil))
	fill(t, c, gizem())
	require.True(t, c.CanSubmit())

	got, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)

	want := domain.Employee{
		ID:               1,
		FirstName:        "Gizem",
		LastName:         "Candemir",
		DateOfEmployment: "2023-01-01",
		DateOfBirth:      "1993-04-01",
		Phone:            "+905551112233",
		Email:            "gizem@example.com",
		Department:       "Engineering",
		Position:         "Staff Frontend Engineer",
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("created employee mismatch (-want +got):\n%s", diff)
	}

	state := s.GetState()
	require.Len(t, state.Employees, 1)
	assert.Equal(t, want, state.Employees[0])
	assert.Equal(t, domain.ViewEmployeeList, state.CurrentView)

	snap := c.Snapshot()
	assert.Equal(t, ModeCreate, snap.Mode)
	assert.Empty(t, snap.Data[domain.FieldFirstName].Value)
	assert.False(t, snap.Submitting)
}

func TestSubmitEditReplacesOnlyTarget(t *testing.T) {
	first := FormDataToEmployee(EmployeeToFormData(domain.Employee{}), 1)
	for f, v := range gizem() {
		first = first.With(f, v)
	}
	other := first
	other.ID = 2
	other.FirstName = "Mert"
	s := store.New([]domain.Employee{first, other})
	require.Equal(t, store.Applied, s.Dispatch(store.ShowEditEmployee{ID: 1}))

	c := newController(t, s)
	id := 1
	require.NoError(t, c.Mount(&id))
	assert.Equal(t, "Gizem", c.Snapshot().Data[domain.FieldFirstName].Value)
	assert.False(t, c.Snapshot().Data[domain.FieldFirstName].Touched)

	require.NoError(t, c.Change(domain.FieldFirstName, "Updated Gizem"))
	got, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)

	state := s.GetState()
	require.Len(t, state.Employees, 2)
	assert.Equal(t, "Updated Gizem", state.Employees[0].FirstName)
	assert.Equal(t, other, state.Employees[1])
	assert.Equal(t, domain.ViewEmployeeList, state.CurrentView)
}

func TestEditRoundTripIsLossless(t *testing.T) {
	e := domain.Employee{ID: 7}
	for f, v := range gizem() {
		e = e.With(f, v)
	}
	if diff := cmp.Diff(e, FormDataToEmployee(EmployeeToFormData(e), e.ID)); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMountMissingEmployeeIsNoOpOnSubmit(t *testing.T) {
	s := store.New(nil)
	c := newController(t, s)
	id := 42
	require.NoError(t, c.Mount(&id))

	snap := c.Snapshot()
	assert.Equal(t, ModeEdit, snap.Mode)
	assert.False(t, snap.Found)

	fill(t, c, gizem())
	got, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, s.GetState().Employees)
}

func TestSubmitInvalidTouchesEveryField(t *testing.T) {
	s := store.New(nil)
	c := newController(t, s)
	require.NoError(t, c.Mount(nil))
	require.NoError(t, c.Change(domain.FieldEmail, "invalid-email"))

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrInvalid)
	assert.Empty(t, s.GetState().Employees)

	snap := c.Snapshot()
	for _, f := range domain.Fields() {
		assert.True(t, snap.Data[f].ShowError(), "field %s", f)
	}
	assert.Equal(t, "Employee.Validation.email.Invalid", snap.Data[domain.FieldEmail].Error.ID)
}

func TestChangeRevalidatesOnlyThatField(t *testing.T) {
	c := newController(t, store.New(nil))
	require.NoError(t, c.Mount(nil))
	require.NoError(t, c.Change(domain.FieldEmail, "a@b.co"))

	snap := c.Snapshot()
	assert.Nil(t, snap.Data[domain.FieldEmail].Error)
	assert.False(t, snap.Data[domain.FieldFirstName].Touched)
	assert.False(t, snap.Data[domain.FieldFirstName].ShowError())

	require.NoError(t, c.Blur(domain.FieldFirstName))
	assert.True(t, c.Snapshot().Data[domain.FieldFirstName].ShowError())
}

func TestCatalogMembershipIsEnforced(t *testing.T) {
	c := newController(t, store.New(nil))
	require.NoError(t, c.Mount(nil))
	values := gizem()
	values[domain.FieldDepartment] = "Sales"
	fill(t, c, values)

	v := c.Validation()
	assert.False(t, v.Valid)
	require.Contains(t, v.Errors, domain.FieldDepartment)
	assert.Equal(t, "Employee.Validation.department.Unknown", v.Errors[domain.FieldDepartment].ID)
}

func TestWhitespaceOnlyFieldsDisableSubmit(t *testing.T) {
	c := newController(t, store.New(nil))
	require.NoError(t, c.Mount(nil))
	values := gizem()
	values[domain.FieldLastName] = "   "
	fill(t, c, values)
	assert.False(t, c.CanSubmit())
}

func TestSubmitCommitsValuesAsEntered(t *testing.T) {
	s := store.New(nil)
	c := newController(t, s)
	require.NoError(t, c.Mount(nil))
	values := gizem()
	values[domain.FieldFirstName] = "  Gizem "
	values[domain.FieldLastName] = "Candemir "
	fill(t, c, values)

	got, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "  Gizem ", got.FirstName)

	stored, ok := s.GetState().FindEmployee(got.ID)
	require.True(t, ok)
	assert.Equal(t, "  Gizem ", stored.FirstName)
	assert.Equal(t, "Candemir ", stored.LastName)
}

func TestCatalogMembershipUsesValueAsEntered(t *testing.T) {
	c := newController(t, store.New(nil))
	require.NoError(t, c.Mount(nil))
	values := gizem()
	values[domain.FieldDepartment] = " Engineering"
	fill(t, c, values)

	v := c.Validation()
	assert.False(t, v.Valid)
	require.Contains(t, v.Errors, domain.FieldDepartment)
	assert.Equal(t, "Employee.Validation.department.Unknown", v.Errors[domain.FieldDepartment].ID)
}

func TestWorkFailureResetsSubmitting(t *testing.T) {
	boom := errors.New("boom")
	s := store.New(nil)
	c := newController(t, s, WithWork(func(context.Context) error { return boom }))
	require.NoError(t, c.Mount(nil))
	fill(t, c, gizem())

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, boom)
	assert.False(t, c.Snapshot().Submitting)
	assert.Empty(t, s.GetState().Employees)
	assert.Equal(t, "Gizem", c.Snapshot().Data[domain.FieldFirstName].Value)
}

func TestWorkPanicIsRecovered(t *testing.T) {
	c := newController(t, store.New(nil), WithWork(func(context.Context) error { panic("kaboom") }))
	require.NoError(t, c.Mount(nil))
	fill(t, c, gizem())

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.False(t, c.Snapshot().Submitting)
}

type submitResult struct {
	employee *domain.Employee
	err      error
}

func submitInBackground(ctx context.Context, c *Controller) <-chan submitResult {
	out := make(chan submitResult, 1)
	go func() {
		defer close(out)
		e, err := c.Submit(ctx)
		out <- submitResult{employee: e, err: err}
	}()
	return out
}

func TestSubmitInFlightBlocksConcurrentSubmission(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	s := store.New(nil)
	c := newController(t, s, WithWork(func(ctx context.Context) error {
		close(started)
		select {
		case <-release:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}))
	require.NoError(t, c.Mount(nil))
	fill(t, c, gizem())

	out := submitInBackground(context.Background(), c)
	<-started
	assert.True(t, c.Snapshot().Submitting)
	assert.False(t, c.CanSubmit())

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmitting)
	require.ErrorIs(t, c.Change(domain.FieldFirstName, "x"), ErrSubmitting)
	require.ErrorIs(t, c.Cancel(), ErrSubmitting)

	close(release)
	res := <-out
	require.NoError(t, res.err)
	require.NotNil(t, res.employee)
	assert.Equal(t, 1, res.employee.ID)
	assert.False(t, c.Snapshot().Submitting)
}

func TestSubmitCancelledBeforeCommit(t *testing.T) {
	started := make(chan struct{})
	s := store.New(nil)
	c := newController(t, s, WithWork(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}))
	require.NoError(t, c.Mount(nil))
	fill(t, c, gizem())

	ctx, cancel := context.WithCancel(context.Background())
	out := submitInBackground(ctx, c)
	<-started
	cancel()

	res := <-out
	require.ErrorIs(t, res.err, context.Canceled)
	assert.Empty(t, s.GetState().Employees)
	assert.False(t, c.Snapshot().Submitting)
}

func TestResetAndCancel(t *testing.T) {
	e := domain.Employee{ID: 1}
	for f, v := range gizem() {
		e = e.With(f, v)
	}
	s := store.New([]domain.Employee{e})
	require.Equal(t, store.Applied, s.Dispatch(store.ShowEditEmployee{ID: 1}))

	c := newController(t, s)
	require.NoError(t, c.Mount(&e.ID))
	require.NoError(t, c.Change(domain.FieldFirstName, "Changed"))
	require.NoError(t, c.Reset())
	assert.Equal(t, "Gizem", c.Snapshot().Data[domain.FieldFirstName].Value)

	require.NoError(t, c.Change(domain.FieldFirstName, "Changed"))
	require.NoError(t, c.Cancel())
	assert.Equal(t, "Gizem", c.Snapshot().Data[domain.FieldFirstName].Value)
	assert.Equal(t, domain.ViewEmployeeList, s.GetState().CurrentView)
	assert.Equal(t, "Gizem", s.GetState().Employees[0].FirstName)
}

func TestDelayHonorsContext(t *testing.T) {
	require.NoError(t, Delay(0)(context.Background()))
	require.NoError(t, Delay(time.Millisecond)(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, Delay(time.Hour)(ctx), context.Canceled)
}
