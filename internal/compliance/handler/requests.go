package handler

import (
	"strings"

	"github.com/google/uuid"

	dErrors "rentcheck/pkg/domain-errors"
)

// ToggleRequest is the HTTP request body for POST /compliance/toggle.
type ToggleRequest struct {
	TaskID string `json:"task_id"`

	// Parsed values (populated by Validate)
	parsedTaskID uuid.UUID
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ToggleRequest) Validate() error {
	r.TaskID = strings.TrimSpace(r.TaskID)
	if r.TaskID == "" {
		return dErrors.New(dErrors.CodeValidation, "task_id is required")
	}
	taskID, err := uuid.Parse(r.TaskID)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "task_id must be a valid UUID")
	}
	r.parsedTaskID = taskID
	return nil
}

// ParsedTaskID returns the validated task ID.
func (r *ToggleRequest) ParsedTaskID() uuid.UUID {
	return r.parsedTaskID
}
