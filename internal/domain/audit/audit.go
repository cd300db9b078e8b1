package audit

import (
	"time"

	"github.com/google/uuid"
)

// Category represents the type of audit event.
type Category string

const (
	CategoryRegistration Category = "registration"
	CategoryAccount      Category = "account"
	CategorySecurity     Category = "security"
	CategorySystem       Category = "system"
)

// Action represents the action that occurred.
type Action string

const (
	ActionCreate         Action = "create"
	ActionDelete         Action = "delete"
	ActionLogin          Action = "login"
	ActionLogout         Action = "logout"
	ActionPartialFailure Action = "partial_failure"
)

// Severity represents the severity level of an audit event.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Event represents a single audit log entry. Warning events double as the
// reconciliation report for accepted partial writes: a hospital row without
// an admin login, or a deleted login with orphaned contact rows, always has
// a matching partial_failure event.
type Event struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Category     Category  `json:"category"`
	Action       Action    `json:"action"`
	Severity     Severity  `json:"severity"`
	ActorID      string    `json:"actor_id"`
	ResourceID   string    `json:"resource_id"`
	ResourceType string    `json:"resource_type"`
	Description  string    `json:"description"`
}

// NewEvent creates a new audit event with the current timestamp.
// PRE: category and action are valid constants
// POST: Returns an Event with a fresh ID and SeverityInfo
func NewEvent(actorID string, category Category, action Action) Event {
	return Event{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Category:  category,
		Action:    action,
		Severity:  SeverityInfo,
		ActorID:   actorID,
	}
}

// WithSeverity sets the severity level.
func (e Event) WithSeverity(s Severity) Event {
	e.Severity = s
	return e
}

// WithResource sets the resource the event concerns.
func (e Event) WithResource(resourceType, resourceID string) Event {
	e.ResourceType = resourceType
	e.ResourceID = resourceID
	return e
}

// WithDescription sets the human-readable description.
func (e Event) WithDescription(desc string) Event {
	e.Description = desc
	return e
}
