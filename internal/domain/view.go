package domain

import "fmt"

// ViewMode selects the read-only rendering of the employee list.
type ViewMode string

const (
	ViewModeList ViewMode = "list"
	ViewModeGrid ViewMode = "grid"
)

// ParseViewMode validates a view mode identifier.
func ParseViewMode(raw string) (ViewMode, error) {
	switch ViewMode(raw) {
	case ViewModeList, ViewModeGrid:
		return ViewMode(raw), nil
	}
	return "", fmt.Errorf("unknown view mode %q", raw)
}

// Toggle flips list and grid.
func (m ViewMode) Toggle() ViewMode {
	if m == ViewModeGrid {
		return ViewModeList
	}
	return ViewModeGrid
}

// CurrentView selects the top-level panel.
type CurrentView string

const (
	ViewEmployeeList CurrentView = "employeeList"
	ViewAddNew       CurrentView = "addNew"
)
