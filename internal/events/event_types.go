package events

import (
	"time"

	"github.com/spec-kit/employee-directory/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeAdded   EventType = "employee_added"
	EventEmployeeUpdated EventType = "employee_updated"
	EventEmployeeDeleted EventType = "employee_deleted"
)

// Event represents a change to the employee list of one session.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	SessionID  string      `json:"session_id"`
	EmployeeID int         `json:"employee_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// EmployeeAddedPayload payload.
type EmployeeAddedPayload struct {
	Employee domain.Employee `json:"employee"`
}

// EmployeeUpdatedPayload payload.
type EmployeeUpdatedPayload struct {
	Before        domain.Employee `json:"before"`
	After         domain.Employee `json:"after"`
	ChangedFields []domain.Field  `json:"changed_fields"`
}

// EmployeeDeletedPayload payload.
type EmployeeDeletedPayload struct {
	Employee domain.Employee `json:"employee"`
}
