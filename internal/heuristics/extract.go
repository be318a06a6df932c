// Package heuristics runs lightweight deterministic entity and pattern
// detection over normalized post text, producing best-effort candidates for
// the structured extraction provider and its fallback path.
package heuristics

import (
	"math"
	"regexp"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hireoo/extraction-service/internal/jobinfo"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)

	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d+\+?\s*years?\s*(?:of\s*)?experience`),
		regexp.MustCompile(`(?i)entry[- ]level`),
		regexp.MustCompile(`(?i)\b(?:junior|mid|senior|lead|principal)\b`),
		regexp.MustCompile(`(?i)experienced?\s+in`),
	}

	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:senior|junior|lead|principal|staff)\s+(?:software|frontend|backend|full.?stack|devops|product|data|machine learning|ai|ux|ui)\s+(?:engineer|developer|manager|scientist|designer)\b`),
		regexp.MustCompile(`(?i)\b(?:software|frontend|backend|full.?stack|devops|product|data|machine learning|ai|ux|ui)\s+(?:engineer|developer|manager|scientist|designer)\b`),
	}

	salaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\$[\d,]+(?:\.\d{2})?(?:\s*(?:-|to|–)\s*\$[\d,]+(?:\.\d{2})?)?(?:\s*(?:per|/)\s*(?:year|month|hour|hr))?`),
		regexp.MustCompile(`(?i)[\d,]+(?:\.\d{2})?\s*(?:-|to|–)\s*[\d,]+(?:\.\d{2})?\s*(?:per|/)\s*(?:year|month|hour|hr)`),
	}
)

// Extractor produces heuristic candidates from normalized text. It never
// fails: a recognizer error yields all-empty candidates with zero confidence.
type Extractor struct {
	recognizer Recognizer
	log        zerolog.Logger
}

// New creates an Extractor backed by the given recognizer. A nil recognizer
// selects the lexicon default.
func New(recognizer Recognizer) *Extractor {
	if recognizer == nil {
		recognizer = NewLexiconRecognizer()
	}
	return &Extractor{
		recognizer: recognizer,
		log:        log.With().Str("component", "heuristics").Logger(),
	}
}

// Recognizer returns the backing entity recognizer.
func (e *Extractor) Recognizer() Recognizer {
	return e.recognizer
}

// Extract runs the named-entity pass and the independent pattern pass over
// the text and summarizes entity density into a scalar confidence.
func (e *Extractor) Extract(text string) jobinfo.Candidates {
	candidates := jobinfo.Candidates{}

	entities, err := e.recognizer.Recognize(text)
	if err != nil {
		e.log.Warn().Err(err).Str("recognizer", e.recognizer.Name()).
			Msg("entity recognition failed, returning empty candidates")
		return candidates
	}

	for _, ent := range entities {
		if ent.Confidence == 0 {
			ent.Confidence = 1.0
		}
		switch ent.Label {
		case jobinfo.LabelPerson:
			candidates.Persons = append(candidates.Persons, ent)
		case jobinfo.LabelOrg:
			candidates.Organizations = append(candidates.Organizations, ent)
		case jobinfo.LabelGPE, jobinfo.LabelLocation:
			candidates.Locations = append(candidates.Locations, ent)
		case jobinfo.LabelMoney:
			candidates.Money = append(candidates.Money, ent)
		case jobinfo.LabelDate:
			candidates.Dates = append(candidates.Dates, ent)
		}
	}

	candidates.Emails = uniqueMatches(text, emailPattern)
	candidates.PhoneNumbers = uniqueMatches(text, phonePattern)
	candidates.ExperiencePhrases = uniqueMultiMatches(text, experiencePatterns)
	candidates.TitlePhrases = uniqueMultiMatches(text, titlePatterns)
	candidates.SalaryPhrases = uniqueMultiMatches(text, salaryPatterns)

	candidates.Confidence = densityConfidence(candidates.EntityCount(), len(text))
	return candidates
}

// uniqueMatches returns the pattern's matches deduplicated by exact value,
// first occurrence order preserved.
func uniqueMatches(text string, re *regexp.Regexp) []string {
	return dedupe(re.FindAllString(text, -1))
}

// uniqueMultiMatches collects and deduplicates matches across an alternation
// of patterns.
func uniqueMultiMatches(text string, patterns []*regexp.Regexp) []string {
	var all []string
	for _, re := range patterns {
		all = append(all, re.FindAllString(text, -1)...)
	}
	return dedupe(all)
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// densityConfidence scores entity coverage: entities per 100 characters,
// scaled and capped at 1.0, rounded to two decimals.
func densityConfidence(entityCount, textLength int) float64 {
	if entityCount == 0 {
		return 0.0
	}
	denom := math.Max(float64(textLength)/100, 1)
	return round2(math.Min(2*float64(entityCount)/denom, 1.0))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
