package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"rentcheck/internal/compliance/models"
)

const promptTemplate = `Analyze the property address: %q.
Based on its state/city, generate a JSON array of the top %d rental compliance tasks.
The output must be a valid JSON array of objects. Each object must have "category" and "rule" keys.
IMPORTANT: The "rule" description must be a very brief, actionable point, under 10 words.

Example for Mumbai:
[
    {"category": "Verification", "rule": "Submit tenant police verification online."},
    {"category": "Agreement", "rule": "Register leave and license agreement."},
    {"category": "Society", "rule": "Obtain society NOC for the tenant."}
]`

// GeminiClient asks Gemini for a compliance checklist in JSON response mode,
// so the model returns a machine-readable array instead of prose.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewGemini constructs the Gemini-backed oracle.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration, logger *slog.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiClient{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Generate asks the oracle for candidate rules. Transport errors, timeouts,
// and malformed payloads all degrade to an empty slice; the property stays
// un-materialized and the next access retries.
func (c *GeminiClient) Generate(ctx context.Context, address string) ([]models.CandidateRule, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf(promptTemplate, address, MaxRules)
	resp, err := c.client.Models.GenerateContent(callCtx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.WarnContext(ctx, "oracle call failed", "error", err)
		return nil, nil
	}

	valid, rejected := models.DecodeCandidates([]byte(resp.Text()))
	for _, r := range rejected {
		c.logger.WarnContext(ctx, "oracle entry rejected", "reason", r.Reason, "raw", string(r.Raw))
	}
	if len(valid) > MaxRules {
		valid = valid[:MaxRules]
	}
	return valid, nil
}
