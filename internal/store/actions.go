package store

import (
	"github.com/spec-kit/employee-directory/internal/domain"
)

// Result reports what a dispatch did to the state.
type Result int

const (
	// Unchanged means the action was valid but produced an identical state.
	Unchanged Result = iota
	// Applied means a new state was committed and listeners were notified.
	Applied
	// NotFound means the action targeted an employee id absent from the list.
	NotFound
	// Rejected means the action was malformed (duplicate id, unknown view
	// mode, reducer failure); the state is untouched.
	Rejected
)

func (r Result) String() string {
	switch r {
	case Applied:
		return "applied"
	case NotFound:
		return "not_found"
	case Rejected:
		return "rejected"
	default:
		return "unchanged"
	}
}

// Action is a state transition request. The set of actions is closed.
type Action interface {
	Name() string
	reduce(State) (State, Result)
}

// SetViewMode switches between the list and grid renderings.
type SetViewMode struct {
	Mode domain.ViewMode
}

func (SetViewMode) Name() string { return "setViewMode" }

func (a SetViewMode) reduce(s State) (State, Result) {
	if _, err := domain.ParseViewMode(string(a.Mode)); err != nil {
		return s, Rejected
	}
	if s.ViewMode == a.Mode {
		return s, Unchanged
	}
	s.ViewMode = a.Mode
	return s, Applied
}

// ToggleViewMode flips list and grid.
type ToggleViewMode struct{}

func (ToggleViewMode) Name() string { return "toggleViewMode" }

func (ToggleViewMode) reduce(s State) (State, Result) {
	s.ViewMode = s.ViewMode.Toggle()
	return s, Applied
}

// ShowEmployeeList shows the list panel.
type ShowEmployeeList struct{}

func (ShowEmployeeList) Name() string { return "showEmployeeList" }

func (ShowEmployeeList) reduce(s State) (State, Result) {
	if s.CurrentView == domain.ViewEmployeeList {
		return s, Unchanged
	}
	s.CurrentView = domain.ViewEmployeeList
	return s, Applied
}

// ShowAddNew shows the form panel. The edit target is left as is; dispatch
// ClearSelectedEmployee first for a blank form.
type ShowAddNew struct{}

func (ShowAddNew) Name() string { return "showAddNew" }

func (ShowAddNew) reduce(s State) (State, Result) {
	if s.CurrentView == domain.ViewAddNew {
		return s, Unchanged
	}
	s.CurrentView = domain.ViewAddNew
	return s, Applied
}

// ShowEditEmployee opens the form panel on an existing employee. The id is
// not checked against the list; the form degrades when it is missing.
type ShowEditEmployee struct {
	ID int
}

func (ShowEditEmployee) Name() string { return "showEditEmployee" }

func (a ShowEditEmployee) reduce(s State) (State, Result) {
	if s.CurrentView == domain.ViewAddNew && s.SelectedEmployeeID != nil && *s.SelectedEmployeeID == a.ID {
		return s, Unchanged
	}
	id := a.ID
	s.CurrentView = domain.ViewAddNew
	s.SelectedEmployeeID = &id
	return s, Applied
}

// ClearSelectedEmployee drops the edit target so the form opens in create mode.
type ClearSelectedEmployee struct{}

func (ClearSelectedEmployee) Name() string { return "clearSelectedEmployee" }

func (ClearSelectedEmployee) reduce(s State) (State, Result) {
	if s.SelectedEmployeeID == nil {
		return s, Unchanged
	}
	s.SelectedEmployeeID = nil
	return s, Applied
}

// AddEmployee appends a record to the end of the list.
type AddEmployee struct {
	Employee domain.Employee
}

func (AddEmployee) Name() string { return "addEmployee" }

func (a AddEmployee) reduce(s State) (State, Result) {
	if a.Employee.ID <= 0 {
		return s, Rejected
	}
	if _, exists := s.FindEmployee(a.Employee.ID); exists {
		return s, Rejected
	}
	next := make([]domain.Employee, len(s.Employees), len(s.Employees)+1)
	copy(next, s.Employees)
	s.Employees = append(next, a.Employee)
	return s, Applied
}

// UpdateEmployee replaces the record with the same id, keeping list order.
type UpdateEmployee struct {
	Employee domain.Employee
}

func (UpdateEmployee) Name() string { return "updateEmployee" }

func (a UpdateEmployee) reduce(s State) (State, Result) {
	idx := indexOf(s.Employees, a.Employee.ID)
	if idx < 0 {
		return s, NotFound
	}
	if s.Employees[idx] == a.Employee {
		return s, Unchanged
	}
	next := make([]domain.Employee, len(s.Employees))
	copy(next, s.Employees)
	next[idx] = a.Employee
	s.Employees = next
	return s, Applied
}

// DeleteEmployee removes the record with the given id. Deleting an absent id
// leaves the state as it was.
type DeleteEmployee struct {
	ID int
}

func (DeleteEmployee) Name() string { return "deleteEmployee" }

func (a DeleteEmployee) reduce(s State) (State, Result) {
	idx := indexOf(s.Employees, a.ID)
	if idx < 0 {
		return s, NotFound
	}
	next := make([]domain.Employee, 0, len(s.Employees)-1)
	next = append(next, s.Employees[:idx]...)
	next = append(next, s.Employees[idx+1:]...)
	s.Employees = next
	return s, Applied
}

func indexOf(employees []domain.Employee, id int) int {
	for i, e := range employees {
		if e.ID == id {
			return i
		}
	}
	return -1
}
