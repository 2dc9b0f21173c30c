// Package store persists property records behind one interface with
// in-memory and postgres twins.
package store

import (
	"context"

	"github.com/google/uuid"

	"rentcheck/internal/property/models"
)

// Store is the property repository the rest of the system consumes.
type Store interface {
	Create(ctx context.Context, property *models.Property) error
	// Get returns sentinel.ErrNotFound for unknown IDs.
	Get(ctx context.Context, id uuid.UUID) (*models.Property, error)
	// List returns all properties, newest first.
	List(ctx context.Context) ([]*models.Property, error)
	// Update replaces the mutable fields of an existing property.
	Update(ctx context.Context, property *models.Property) error
	// Delete removes the property row. Unknown IDs return sentinel.ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}
