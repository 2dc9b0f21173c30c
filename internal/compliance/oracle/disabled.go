package oracle

import (
	"context"

	"rentcheck/internal/compliance/models"
)

// Disabled stands in when no API key is configured. Every generation yields
// nothing, so properties render with empty checklists until a key is
// provided, and materialize on first access after that.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) ([]models.CandidateRule, error) {
	return nil, nil
}

var _ Client = Disabled{}
