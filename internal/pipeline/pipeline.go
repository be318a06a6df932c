// Package pipeline sequences the extraction stages and reconciles their
// outputs into the canonical result. Its external contract is "always
// produces a best-effort structured result": every failure inside a stage is
// absorbed into a degraded-but-valid JobInfo, with quality signaled through
// the confidence score rather than errors.
package pipeline

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hireoo/extraction-service/internal/heuristics"
	"github.com/hireoo/extraction-service/internal/jobinfo"
	"github.com/hireoo/extraction-service/internal/normalize"
	"github.com/hireoo/extraction-service/internal/provider"
)

// FallbackConfidence is the fixed score attached to results synthesized from
// heuristic candidates alone, reflecting degraded quality.
const FallbackConfidence = 0.3

// StructuredExtractor is the provider seam. The concrete *provider.Provider
// satisfies it; tests substitute doubles to force the fallback path.
type StructuredExtractor interface {
	Extract(ctx context.Context, text string, candidates jobinfo.Candidates) (*provider.Extraction, error)
}

// Pipeline runs one extraction per call. It holds no mutable state across
// runs; concurrent Run calls are independent.
type Pipeline struct {
	normalizer *normalize.Normalizer
	heuristics *heuristics.Extractor
	provider   StructuredExtractor
	log        zerolog.Logger
}

// New assembles a pipeline. Nil normalizer or heuristics select the package
// defaults; the structured extractor is required.
func New(n *normalize.Normalizer, h *heuristics.Extractor, p StructuredExtractor) *Pipeline {
	if n == nil {
		n = normalize.New(nil)
	}
	if h == nil {
		h = heuristics.New(nil)
	}
	return &Pipeline{
		normalizer: n,
		heuristics: h,
		provider:   p,
		log:        log.With().Str("component", "pipeline").Logger(),
	}
}

// Run executes the linear stage sequence: normalize, heuristics, structured
// extraction, reconciliation. It never returns an error; a failed or unusable
// structured extraction produces the heuristic fallback result instead.
func (p *Pipeline) Run(ctx context.Context, post jobinfo.Post) jobinfo.JobInfo {
	text := p.normalizer.Normalize(post.HTML, post.Text)

	candidates := p.heuristics.Extract(text)
	p.log.Debug().
		Int("text_length", len(text)).
		Int("entities", candidates.EntityCount()).
		Float64("heuristic_confidence", candidates.Confidence).
		Msg("heuristic pass complete")

	extraction, err := p.provider.Extract(ctx, text, candidates)
	if err != nil || extraction == nil || len(extraction.Fields) == 0 {
		if err != nil {
			p.log.Warn().Err(err).Msg("structured extraction unavailable, falling back to heuristics")
		} else {
			p.log.Warn().Msg("structured extraction returned no usable data, falling back to heuristics")
		}
		return fallbackResult(candidates)
	}

	return reconcile(extraction, candidates)
}

// reconcile takes the structured field map as primary, coerces skills into a
// list, and backfills hr_email from heuristics when the model omitted it.
// Heuristic values never overwrite provider-supplied ones.
func reconcile(extraction *provider.Extraction, candidates jobinfo.Candidates) jobinfo.JobInfo {
	info := jobinfo.Empty()

	info.JobTitle = stringField(extraction.Fields, "job_title")
	info.Company = stringField(extraction.Fields, "company")
	info.Location = stringField(extraction.Fields, "location")
	info.ExperienceRequired = stringField(extraction.Fields, "experience_required")
	info.HRName = stringField(extraction.Fields, "hr_name")
	info.HREmail = stringField(extraction.Fields, "hr_email")
	info.SalaryRange = stringField(extraction.Fields, "salary_range")
	info.JobType = stringField(extraction.Fields, "job_type")
	info.ApplicationDeadline = stringField(extraction.Fields, "application_deadline")
	info.Description = stringField(extraction.Fields, "description")
	info.Skills = coerceSkills(extraction.Fields["skills"])

	if info.HREmail == nil && len(candidates.Emails) > 0 {
		info.HREmail = ptr(candidates.Emails[0])
	}

	info.ConfidenceScore = clamp01(extraction.Confidence)
	return info
}

// fallbackResult synthesizes a reduced result directly from heuristic
// candidates: best organization as company, best location entity, first
// email, first experience phrase. Everything else stays absent.
func fallbackResult(candidates jobinfo.Candidates) jobinfo.JobInfo {
	info := jobinfo.Empty()

	if best := bestEntity(candidates.Organizations); best != nil {
		info.Company = ptr(best.Text)
	}
	if best := bestEntity(candidates.Locations); best != nil {
		info.Location = ptr(best.Text)
	}
	if len(candidates.Emails) > 0 {
		info.HREmail = ptr(candidates.Emails[0])
	}
	if len(candidates.ExperiencePhrases) > 0 {
		info.ExperienceRequired = ptr(candidates.ExperiencePhrases[0])
	}

	info.ConfidenceScore = FallbackConfidence
	return info
}

// bestEntity picks the highest-confidence entity, earliest occurrence on ties.
func bestEntity(entities []jobinfo.Entity) *jobinfo.Entity {
	var best *jobinfo.Entity
	for i := range entities {
		if best == nil || entities[i].Confidence > best.Confidence {
			best = &entities[i]
		}
	}
	return best
}

// stringField returns a pointer to the trimmed string value of the field, or
// nil when the field is absent, null, empty, or not a string.
func stringField(fields map[string]any, name string) *string {
	v, ok := fields[name]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// coerceSkills normalizes the skills field into a string list: JSON arrays
// keep their element order, a single delimited string is split on commas, and
// anything else becomes the empty list.
func coerceSkills(v any) []string {
	switch t := v.(type) {
	case []any:
		skills := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					skills = append(skills, s)
				}
			}
		}
		return skills
	case string:
		parts := strings.Split(t, ",")
		skills := make([]string, 0, len(parts))
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				skills = append(skills, part)
			}
		}
		return skills
	default:
		return []string{}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func ptr(s string) *string {
	return &s
}
