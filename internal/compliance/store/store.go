// Package store persists compliance checklists. Implementations come in
// in-memory and postgres twins behind one interface so the materializer and
// its tests never care which is wired.
package store

import (
	"context"

	"github.com/google/uuid"

	"rentcheck/internal/compliance/models"
)

// Store is the durable source of truth for "has this property been
// materialized". There is no in-process cache in front of it.
type Store interface {
	// ListTasks returns the property's checklist ordered by position. An
	// unknown or un-materialized property yields an empty slice, never an
	// error.
	ListTasks(ctx context.Context, propertyID uuid.UUID) ([]models.Task, error)

	// InsertBatch writes the whole batch atomically and returns the created
	// tasks with assigned IDs. If the property already has tasks the batch is
	// discarded in full and sentinel.ErrConflict is returned; the caller
	// re-reads the winner's rows. This is the storage-level guard that keeps
	// materialization to at most one stored batch per property.
	InsertBatch(ctx context.Context, propertyID uuid.UUID, rules []models.CandidateRule) ([]models.Task, error)

	// Toggle flips a task's completion flag and returns the new value.
	// Returns sentinel.ErrNotFound for unknown IDs.
	Toggle(ctx context.Context, taskID uuid.UUID) (bool, error)

	// DeleteForProperty removes every task owned by the property.
	DeleteForProperty(ctx context.Context, propertyID uuid.UUID) error
}
