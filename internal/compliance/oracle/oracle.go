// Package oracle wraps the external rule-generation service that turns a
// property address into candidate compliance rules. The oracle is untrusted
// and unreliable: every response is decoded and filtered before use, and any
// failure degrades to an empty candidate list so callers never distinguish
// "oracle down" from "oracle had nothing to say".
package oracle

import (
	"context"

	"rentcheck/internal/compliance/models"
)

// MaxRules bounds how many rules the oracle is asked for per property.
const MaxRules = 5

// Client generates candidate compliance rules for a property address.
// Implementations must be fail-soft: transport errors, timeouts, and
// undecodable payloads yield an empty slice with a nil error. The returned
// error is reserved for context cancellation.
type Client interface {
	Generate(ctx context.Context, address string) ([]models.CandidateRule, error)
}
