package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/store"
)

// FromChange derives the employee events of one committed store transition.
// Navigation-only transitions yield nothing.
func FromChange(sessionID string, change store.Change, at time.Time) []Event {
	if !store.EmployeesChanged(change.Prev, change.Next) {
		return nil
	}
	newEvent := func(t EventType, id int, payload interface{}) Event {
		return Event{
			ID:         uuid.NewString(),
			Type:       t,
			SessionID:  sessionID,
			EmployeeID: id,
			Timestamp:  at,
			Payload:    payload,
		}
	}

	switch a := change.Action.(type) {
	case store.AddEmployee:
		return []Event{newEvent(EventEmployeeAdded, a.Employee.ID, EmployeeAddedPayload{Employee: a.Employee})}
	case store.UpdateEmployee:
		before, _ := change.Prev.FindEmployee(a.Employee.ID)
		return []Event{newEvent(EventEmployeeUpdated, a.Employee.ID, EmployeeUpdatedPayload{
			Before:        before,
			After:         a.Employee,
			ChangedFields: changedFields(before, a.Employee),
		})}
	case store.DeleteEmployee:
		before, _ := change.Prev.FindEmployee(a.ID)
		return []Event{newEvent(EventEmployeeDeleted, a.ID, EmployeeDeletedPayload{Employee: before})}
	}
	return nil
}

func changedFields(before, after domain.Employee) []domain.Field {
	var out []domain.Field
	for _, f := range domain.Fields() {
		if before.Value(f) != after.Value(f) {
			out = append(out, f)
		}
	}
	return out
}
