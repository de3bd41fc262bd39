package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a domain event that occurred.
// Events are immutable facts about something that happened.
type Event struct {
	ID         uuid.UUID
	Type       string
	Timestamp  time.Time
	EmployeeID int64
	Data       map[string]any
}

// Event type constants
const (
	EventEmployeeCreated  = "employee.created"
	EventEmployeeUpdated  = "employee.updated"
	EventEmployeeDeleted  = "employee.deleted"
	EventEmployeeLoggedIn = "employee.logged_in"
)

// NewEvent creates a new domain event.
func NewEvent(eventType string, employeeID int64, data map[string]any) Event {
	if data == nil {
		data = make(map[string]any)
	}
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		EmployeeID: employeeID,
		Data:       data,
	}
}

func EmployeeCreatedEvent(e *Employee, certifications int) Event {
	return NewEvent(EventEmployeeCreated, e.ID, map[string]any{
		"username":       e.Username,
		"department_id":  e.DepartmentID,
		"certifications": certifications,
	})
}

func EmployeeUpdatedEvent(e *Employee, passwordChanged, certificationsReplaced bool) Event {
	return NewEvent(EventEmployeeUpdated, e.ID, map[string]any{
		"username":                e.Username,
		"password_changed":        passwordChanged,
		"certifications_replaced": certificationsReplaced,
	})
}

func EmployeeDeletedEvent(employeeID int64) Event {
	return NewEvent(EventEmployeeDeleted, employeeID, nil)
}

func EmployeeLoggedInEvent(employeeID int64, ipAddress, userAgent string) Event {
	return NewEvent(EventEmployeeLoggedIn, employeeID, map[string]any{
		"ip_address": ipAddress,
		"user_agent": userAgent,
	})
}
