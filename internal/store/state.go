package store

import (
	"github.com/spec-kit/employee-directory/internal/domain"
)

// State is the whole tree held by the store. A State obtained from the store
// is shared with every other reader and must be treated as read-only;
// reducers always build a new State instead of editing one.
type State struct {
	ViewMode           domain.ViewMode
	CurrentView        domain.CurrentView
	SelectedEmployeeID *int
	Employees          []domain.Employee
}

// InitialState is the state of a freshly created store before seeding.
func InitialState() State {
	return State{
		ViewMode:    domain.ViewModeList,
		CurrentView: domain.ViewEmployeeList,
	}
}

// FindEmployee looks an employee up by id.
func (s State) FindEmployee(id int) (domain.Employee, bool) {
	for _, e := range s.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Employee{}, false
}

// EmployeesChanged reports whether the employee list branch was replaced.
// Reducers reuse the previous slice when the list is untouched, so identity
// is enough.
func EmployeesChanged(prev, next State) bool {
	return !sameEmployees(prev.Employees, next.Employees)
}

// NavigationChanged reports whether the view mode, panel or edit target moved.
func NavigationChanged(prev, next State) bool {
	return prev.ViewMode != next.ViewMode ||
		prev.CurrentView != next.CurrentView ||
		!sameID(prev.SelectedEmployeeID, next.SelectedEmployeeID)
}

// GenerateID returns max(ids, 0) + 1. It has no memory: gaps left by deletions
// stay empty, while deleting the highest id makes that id available again.
func GenerateID(employees []domain.Employee) int {
	maxID := 0
	for _, e := range employees {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}

func sameEmployees(a, b []domain.Employee) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

func sameID(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
