// Package provider implements the structured extraction stage: it sends
// normalized text plus heuristic candidates to a generation backend with a
// fixed extraction schema, parses and shape-checks the reply, and derives a
// confidence score. All failures come back as typed errors, never panics, so
// the orchestrator can decide to fall back.
package provider

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	"github.com/hireoo/extraction-service/internal/jobinfo"
	"github.com/hireoo/extraction-service/internal/llm"
)

// responseSchema is the shape contract for the model reply. Optional fields
// may be null; skills may arrive as an array or a comma-delimited string
// (reconciliation coerces it either way).
const responseSchema = `{
	"type": "object",
	"properties": {
		"job_title": {"type": ["string", "null"]},
		"company": {"type": ["string", "null"]},
		"location": {"type": ["string", "null"]},
		"skills": {"type": ["array", "string", "null"]},
		"experience_required": {"type": ["string", "null"]},
		"salary_range": {"type": ["string", "null"]},
		"job_type": {"type": ["string", "null"]},
		"hr_name": {"type": ["string", "null"]},
		"hr_email": {"type": ["string", "null"]},
		"application_deadline": {"type": ["string", "null"]},
		"description": {"type": ["string", "null"]},
		"confidence_score": {"type": ["number", "null"]}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(responseSchema)

// Field-presence weights for the derived confidence score.
var (
	requiredFields = []string{"job_title", "company"}
	optionalFields = []string{"location", "skills", "experience_required", "hr_name", "hr_email"}
)

// Extraction is the untyped field map produced by one structured extraction
// call, together with its confidence score.
type Extraction struct {
	Fields     map[string]any
	Confidence float64
}

// Provider runs structured extraction against an injected generation client.
type Provider struct {
	client llm.Client
	params llm.Params
	log    zerolog.Logger
}

// New creates a Provider with the default deterministic-leaning generation
// parameters.
func New(client llm.Client) *Provider {
	return &Provider{
		client: client,
		params: llm.DefaultParams(),
		log:    log.With().Str("component", "provider").Logger(),
	}
}

// Model returns the backing model name for health reporting.
func (p *Provider) Model() string {
	return p.client.Model()
}

// Extract sends the extraction prompt and parses the structured reply.
// Network, auth and malformed-response failures are returned as typed
// errors; the caller owns the fallback decision.
func (p *Provider) Extract(ctx context.Context, text string, candidates jobinfo.Candidates) (*Extraction, error) {
	prompt := BuildPrompt(text, candidates)

	raw, err := p.client.GenerateJSON(ctx, prompt, p.params)
	if err != nil {
		p.log.Warn().Err(err).Str("model", p.client.Model()).Msg("structured generation failed")
		return nil, &GenerateError{Message: "structured generation call failed", Cause: err}
	}

	fields, err := parseResponse(llm.CleanJSONBlock(raw))
	if err != nil {
		p.log.Warn().Err(err).Msg("model reply could not be parsed")
		return nil, err
	}

	return &Extraction{
		Fields:     fields,
		Confidence: deriveConfidence(fields),
	}, nil
}

// parseResponse validates the reply against the response schema and
// unmarshals it into an untyped field map.
func parseResponse(raw string) (map[string]any, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, &ParseError{Message: "reply is not valid JSON", Cause: err}
	}
	if !result.Valid() {
		var reasons []string
		for _, desc := range result.Errors() {
			reasons = append(reasons, desc.String())
		}
		return nil, &ParseError{Message: "reply does not match extraction schema: " + strings.Join(reasons, "; ")}
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, &ParseError{Message: "failed to unmarshal reply", Cause: err}
	}
	return fields, nil
}

// deriveConfidence scores the extraction. A model-supplied confidence_score
// in (0, 1] takes precedence; otherwise the score is derived from field
// completeness: 0.7 weight on the required fields, 0.3 on the optional ones.
func deriveConfidence(fields map[string]any) float64 {
	if v, ok := fields["confidence_score"]; ok {
		if f, ok := asFloat(v); ok && f > 0 && f <= 1 {
			return round2(f)
		}
	}

	requiredPresent := 0
	for _, name := range requiredFields {
		if present(fields[name]) {
			requiredPresent++
		}
	}
	optionalPresent := 0
	for _, name := range optionalFields {
		if present(fields[name]) {
			optionalPresent++
		}
	}

	requiredScore := float64(requiredPresent) / float64(len(requiredFields))
	optionalScore := float64(optionalPresent) / float64(len(optionalFields))
	return round2(0.7*requiredScore + 0.3*optionalScore)
}

// present reports whether a field value carries usable data.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case []any:
		return len(t) > 0
	default:
		return true
	}
}

func asFloat(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
