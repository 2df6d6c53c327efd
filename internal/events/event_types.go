package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDepartmentCreated EventType = "department.created"
	EventDepartmentUpdated EventType = "department.updated"
	EventDepartmentDeleted EventType = "department.deleted"
	EventEmployeeCreated   EventType = "employee.created"
	EventEmployeeUpdated   EventType = "employee.updated"
	EventEmployeeDeleted   EventType = "employee.deleted"
)

// AllTypes lists every lifecycle event in publication order.
var AllTypes = []EventType{
	EventDepartmentCreated,
	EventDepartmentUpdated,
	EventDepartmentDeleted,
	EventEmployeeCreated,
	EventEmployeeUpdated,
	EventEmployeeDeleted,
}

// Event represents a domain event emitted by services. ActorID is zero for
// changes made outside an authenticated request (seed, CLI).
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  int64       `json:"entity_id"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, entityID, actorID int64, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  entityID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// DepartmentPayload payload.
type DepartmentPayload struct {
	Name string `json:"name"`
}

// EmployeePayload payload.
type EmployeePayload struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	DepartmentID int64  `json:"department_id"`
	Salary       string `json:"salary"`
}
