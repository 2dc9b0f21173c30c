package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "rentcheck/pkg/domain-errors"
)

// Status is the occupancy state of a property.
type Status string

const (
	StatusVacant      Status = "vacant"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

// ParseStatus validates a client-supplied status string.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusVacant:
		return StatusVacant, nil
	case StatusOccupied:
		return StatusOccupied, nil
	case StatusMaintenance:
		return StatusMaintenance, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "status must be vacant, occupied, or maintenance")
	}
}

// Property is a rental unit under management. Compliance tasks reference it
// by ID only; the property itself knows nothing about its checklist.
//
// Invariants:
//   - Address is non-empty
//   - MonthlyRent is non-negative (stored in the smallest currency unit)
//   - CreatedAt is immutable after construction
type Property struct {
	ID          uuid.UUID `json:"id"`
	Address     string    `json:"address"`
	Type        string    `json:"type"`
	MonthlyRent int64     `json:"monthly_rent"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// New validates and constructs a property.
func New(id uuid.UUID, address, propertyType string, monthlyRent int64, status Status, now time.Time) (*Property, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "address is required")
	}
	if monthlyRent < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "monthly_rent must not be negative")
	}
	return &Property{
		ID:          id,
		Address:     address,
		Type:        strings.TrimSpace(propertyType),
		MonthlyRent: monthlyRent,
		Status:      status,
		CreatedAt:   now,
	}, nil
}
