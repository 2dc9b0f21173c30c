package handler

import (
	"strings"

	"rentcheck/internal/property/models"
	dErrors "rentcheck/pkg/domain-errors"
)

// PropertyRequest is the HTTP request body for creating or updating a
// property.
type PropertyRequest struct {
	Address     string `json:"address"`
	Type        string `json:"type"`
	MonthlyRent int64  `json:"monthly_rent"`
	Status      string `json:"status"`

	// Parsed values (populated by Validate)
	parsedStatus models.Status
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *PropertyRequest) Validate() error {
	r.Address = strings.TrimSpace(r.Address)
	if r.Address == "" {
		return dErrors.New(dErrors.CodeValidation, "address is required")
	}
	if r.MonthlyRent < 0 {
		return dErrors.New(dErrors.CodeValidation, "monthly_rent must not be negative")
	}
	status, err := models.ParseStatus(r.Status)
	if err != nil {
		return err
	}
	r.parsedStatus = status
	return nil
}

// ParsedStatus returns the validated status.
func (r *PropertyRequest) ParsedStatus() models.Status {
	return r.parsedStatus
}
