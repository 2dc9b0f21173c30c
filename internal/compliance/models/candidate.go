package models

import (
	"encoding/json"
	"strings"
)

// CandidateRule is an oracle suggestion that survived validation. Only these
// reach the store.
type CandidateRule struct {
	Category string
	Rule     string
}

// RejectedRule records why an oracle entry was discarded, for diagnostics.
type RejectedRule struct {
	Reason string
	Raw    json.RawMessage
}

// rawRule mirrors the shape the oracle is asked for. Fields are optional
// because the payload is untrusted.
type rawRule struct {
	Category string `json:"category"`
	Rule     string `json:"rule"`
}

// DecodeCandidates parses an untrusted oracle payload into validated
// candidates plus per-entry rejections. A payload that is not a JSON array at
// all yields zero candidates and a single rejection covering the whole body.
// Entries without a non-empty rule text are dropped rather than failing the
// batch; a partially useful checklist beats none.
func DecodeCandidates(payload []byte) ([]CandidateRule, []RejectedRule) {
	var entries []json.RawMessage
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, []RejectedRule{{Reason: "payload is not a JSON array", Raw: compactRaw(payload)}}
	}

	var (
		valid    []CandidateRule
		rejected []RejectedRule
	)
	for _, entry := range entries {
		var raw rawRule
		if err := json.Unmarshal(entry, &raw); err != nil {
			rejected = append(rejected, RejectedRule{Reason: "entry is not an object", Raw: entry})
			continue
		}
		rule := strings.TrimSpace(raw.Rule)
		if rule == "" {
			rejected = append(rejected, RejectedRule{Reason: "missing rule text", Raw: entry})
			continue
		}
		valid = append(valid, CandidateRule{
			Category: strings.TrimSpace(raw.Category),
			Rule:     rule,
		})
	}
	return valid, rejected
}

func compactRaw(payload []byte) json.RawMessage {
	const max = 256
	if len(payload) > max {
		payload = payload[:max]
	}
	return json.RawMessage(payload)
}
