// Package audit records the actions that matter for a compliance product:
// property lifecycle changes, checklist materialization, and completion
// toggles. Publishing is best-effort and never fails the request that
// produced the event.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action identifies what happened.
type Action string

const (
	ActionPropertyCreated       Action = "property_created"
	ActionPropertyUpdated       Action = "property_updated"
	ActionPropertyDeleted       Action = "property_deleted"
	ActionChecklistMaterialized Action = "checklist_materialized"
	ActionTaskToggled           Action = "task_toggled"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	Action     Action    `json:"action"`
	PropertyID uuid.UUID `json:"property_id,omitempty"`
	TaskID     uuid.UUID `json:"task_id,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	Detail     string    `json:"detail,omitempty"`
}

// Publisher delivers audit events to a sink.
type Publisher interface {
	Emit(ctx context.Context, event Event)
	Close()
}
