package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-directory/internal/domain"
)

func seed() []domain.Employee {
	return []domain.Employee{
		{ID: 1, FirstName: "Ahmet", LastName: "Sourtimes", Department: "IT", Position: "Senior"},
		{ID: 2, FirstName: "Ayşe", LastName: "Yılmaz", Department: "İK", Position: "Junior"},
		{ID: 5, FirstName: "Mehmet", LastName: "Demir", Department: "Tasarım", Position: "Middle"},
	}
}

type recorder struct {
	calls []string
}

func (r *recorder) RecordDispatch(action, result string) {
	r.calls = append(r.calls, action+":"+result)
}

func TestNewCopiesSeed(t *testing.T) {
	data := seed()
	s := New(data)
	data[0].FirstName = "changed"

	require.Equal(t, "Ahmet", s.GetState().Employees[0].FirstName)
	require.Equal(t, domain.ViewModeList, s.GetState().ViewMode)
	require.Equal(t, domain.ViewEmployeeList, s.GetState().CurrentView)
	require.Nil(t, s.GetState().SelectedEmployeeID)
}

func TestNavigationActions(t *testing.T) {
	s := New(seed())

	require.Equal(t, Applied, s.Dispatch(SetViewMode{Mode: domain.ViewModeGrid}))
	require.Equal(t, domain.ViewModeGrid, s.GetState().ViewMode)
	require.Equal(t, Unchanged, s.Dispatch(SetViewMode{Mode: domain.ViewModeGrid}))
	require.Equal(t, Rejected, s.Dispatch(SetViewMode{Mode: "table"}))

	require.Equal(t, Applied, s.Dispatch(ToggleViewMode{}))
	require.Equal(t, domain.ViewModeList, s.GetState().ViewMode)

	require.Equal(t, Applied, s.Dispatch(ShowEditEmployee{ID: 2}))
	st := s.GetState()
	require.Equal(t, domain.ViewAddNew, st.CurrentView)
	require.Equal(t, 2, *st.SelectedEmployeeID)

	require.Equal(t, Applied, s.Dispatch(ShowEmployeeList{}))
	require.Equal(t, Applied, s.Dispatch(ShowAddNew{}))
	require.Equal(t, 2, *s.GetState().SelectedEmployeeID, "showAddNew keeps the edit target")

	require.Equal(t, Applied, s.Dispatch(ClearSelectedEmployee{}))
	require.Nil(t, s.GetState().SelectedEmployeeID)
	require.Equal(t, Unchanged, s.Dispatch(ClearSelectedEmployee{}))
}

func TestAddEmployeeAppends(t *testing.T) {
	s := New(seed())
	before := s.GetState()

	e := domain.Employee{ID: GenerateID(before.Employees), FirstName: "Gizem"}
	require.Equal(t, Applied, s.Dispatch(AddEmployee{Employee: e}))

	after := s.GetState()
	require.Len(t, after.Employees, 4)
	require.Equal(t, 6, after.Employees[3].ID)
	require.Len(t, before.Employees, 3, "previous snapshot is not mutated")
	require.True(t, EmployeesChanged(before, after))

	require.Equal(t, Rejected, s.Dispatch(AddEmployee{Employee: e}), "duplicate id")
	require.Equal(t, Rejected, s.Dispatch(AddEmployee{Employee: domain.Employee{}}), "missing id")
}

func TestUpdateEmployeeInPlace(t *testing.T) {
	s := New(seed())
	before := s.GetState()

	updated := before.Employees[1]
	updated.FirstName = "Updated Ayşe"
	require.Equal(t, Applied, s.Dispatch(UpdateEmployee{Employee: updated}))

	after := s.GetState()
	require.Equal(t, "Updated Ayşe", after.Employees[1].FirstName)
	require.Equal(t, before.Employees[0], after.Employees[0])
	require.Equal(t, before.Employees[2], after.Employees[2])
	require.Equal(t, "Ayşe", before.Employees[1].FirstName)

	require.Equal(t, Unchanged, s.Dispatch(UpdateEmployee{Employee: updated}))
	require.Equal(t, NotFound, s.Dispatch(UpdateEmployee{Employee: domain.Employee{ID: 42}}))
	if diff := cmp.Diff(after, s.GetState()); diff != "" {
		t.Fatalf("state changed on missing id (-want +got):\n%s", diff)
	}
}

func TestDeleteEmployeeIsIdempotent(t *testing.T) {
	once := New(seed())
	twice := New(seed())

	require.Equal(t, Applied, once.Dispatch(DeleteEmployee{ID: 2}))
	require.Equal(t, Applied, twice.Dispatch(DeleteEmployee{ID: 2}))
	require.Equal(t, NotFound, twice.Dispatch(DeleteEmployee{ID: 2}))

	if diff := cmp.Diff(once.GetState(), twice.GetState()); diff != "" {
		t.Fatalf("second delete changed state (-once +twice):\n%s", diff)
	}
	require.Equal(t, []int{1, 5}, ids(once.GetState().Employees))
}

func TestGenerateID(t *testing.T) {
	require.Equal(t, 1, GenerateID(nil))
	require.Equal(t, 6, GenerateID(seed()))
	require.Equal(t, 11, GenerateID([]domain.Employee{{ID: 10}, {ID: 3}}))
}

func TestSubscribeNotifiesOnlyOnChange(t *testing.T) {
	s := New(seed())
	var order []string
	unsubA := s.Subscribe(func(c Change) { order = append(order, "a:"+c.Action.Name()) })
	s.Subscribe(func(c Change) {
		order = append(order, "b:"+c.Action.Name())
		require.Equal(t, c.Next, s.GetState())
	})

	s.Dispatch(ShowAddNew{})
	s.Dispatch(ShowAddNew{})
	s.Dispatch(DeleteEmployee{ID: 99})
	require.Equal(t, []string{"a:showAddNew", "b:showAddNew"}, order)

	unsubA()
	unsubA()
	s.Dispatch(ShowEmployeeList{})
	require.Equal(t, []string{"a:showAddNew", "b:showAddNew", "b:showEmployeeList"}, order)
}

func TestListenerSeesSubtreeIdentity(t *testing.T) {
	s := New(seed())
	var navOnly, listOnly int
	s.Subscribe(func(c Change) {
		if NavigationChanged(c.Prev, c.Next) {
			navOnly++
		}
		if EmployeesChanged(c.Prev, c.Next) {
			listOnly++
		}
	})

	s.Dispatch(ToggleViewMode{})
	s.Dispatch(DeleteEmployee{ID: 1})
	require.Equal(t, 1, navOnly)
	require.Equal(t, 1, listOnly)
}

func TestListenerPanicDoesNotStopOthers(t *testing.T) {
	s := New(seed())
	called := false
	s.Subscribe(func(Change) { panic("boom") })
	s.Subscribe(func(Change) { called = true })

	require.NotPanics(t, func() { s.Dispatch(ToggleViewMode{}) })
	require.True(t, called)
}

func TestDispatchRecordsMetrics(t *testing.T) {
	r := &recorder{}
	s := New(seed(), WithRecorder(r))
	s.Dispatch(DeleteEmployee{ID: 1})
	s.Dispatch(DeleteEmployee{ID: 1})
	require.Equal(t, []string{"deleteEmployee:applied", "deleteEmployee:not_found"}, r.calls)
}

func ids(employees []domain.Employee) []int {
	out := make([]int, 0, len(employees))
	for _, e := range employees {
		out = append(out, e.ID)
	}
	return out
}
