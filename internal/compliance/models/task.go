package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is one item on a property's compliance checklist.
//
// Invariants:
//   - PropertyID references an existing property; tasks never outlive it
//   - Rule is non-empty and immutable once persisted
//   - ID is assigned at persistence time and never changes
//   - Only Completed mutates after creation
type Task struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	Category   string    `json:"category"`
	Rule       string    `json:"rule"`
	Completed  bool      `json:"is_completed"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}
