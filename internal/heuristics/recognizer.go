package heuristics

import (
	"regexp"

	"github.com/hireoo/extraction-service/internal/jobinfo"
)

// Recognizer classifies named-entity spans in plain text. Implementations
// must recognize at least the PERSON, ORG, GPE/LOC, MONEY and DATE labels.
// A zero Confidence on a returned entity means the capability does not score
// its matches; the extractor substitutes 1.0.
type Recognizer interface {
	Recognize(text string) ([]jobinfo.Entity, error)

	// Name returns the recognizer type for logging and health reporting.
	Name() string
}

// entityPattern ties a compiled expression to the label and confidence it
// produces. Patterns with a capture group report the group span; patterns
// without report the whole match.
type entityPattern struct {
	re         *regexp.Regexp
	label      string
	confidence float64
	group      bool
}

var lexiconPatterns = []entityPattern{
	// Currency amounts.
	{
		re:         regexp.MustCompile(`\$[0-9][0-9,]*(?:\.[0-9]{2})?[kK]?`),
		label:      jobinfo.LabelMoney,
		confidence: 1.0,
	},
	// Month-name and numeric dates.
	{
		re:         regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sept?|Oct|Nov|Dec)\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s*\d{4})?\b`),
		label:      jobinfo.LabelDate,
		confidence: 1.0,
	},
	{
		re:         regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
		label:      jobinfo.LabelDate,
		confidence: 1.0,
	},
	// Organizations introduced by hiring phrasing ("at Google", "join Stripe").
	{
		re:         regexp.MustCompile(`(?:\bat|\bjoin(?:ing)?)\s+([A-Z][A-Za-z0-9&.]*(?:\s+[A-Z][A-Za-z0-9&.]*)*)`),
		label:      jobinfo.LabelOrg,
		confidence: 0.8,
		group:      true,
	},
	// Organizations with a corporate suffix.
	{
		re:         regexp.MustCompile(`\b([A-Z][A-Za-z0-9]*(?:\s+[A-Z][A-Za-z0-9]*)*\s+(?:Inc|LLC|Ltd|Corp|Technologies|Labs|Solutions)\.?)`),
		label:      jobinfo.LabelOrg,
		confidence: 0.9,
		group:      true,
	},
	// People named after a contact verb ("Contact Sarah Johnson").
	{
		re:         regexp.MustCompile(`(?i:contact|reach out to|email|message|dm)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`),
		label:      jobinfo.LabelPerson,
		confidence: 0.8,
		group:      true,
	},
	// Locations introduced by a place preposition.
	{
		re:         regexp.MustCompile(`(?:\bbased in|\blocated in|\bposition in)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*(?:,\s*(?:[A-Z]{2}|[A-Z][a-z]+))?)`),
		label:      jobinfo.LabelGPE,
		confidence: 0.8,
		group:      true,
	},
	// Work-mode keywords.
	{
		re:         regexp.MustCompile(`(?i)\b(remote|hybrid|on-?site)\b`),
		label:      jobinfo.LabelLocation,
		confidence: 0.9,
		group:      true,
	},
}

// LexiconRecognizer is the shipped deterministic recognizer: a fixed set of
// pattern rules over hiring-post phrasing. It exists so the service runs with
// no external NLP model; any richer backend can replace it through the
// Recognizer seam.
type LexiconRecognizer struct{}

// NewLexiconRecognizer returns the default recognizer.
func NewLexiconRecognizer() *LexiconRecognizer {
	return &LexiconRecognizer{}
}

// Name returns the recognizer type.
func (r *LexiconRecognizer) Name() string {
	return "lexicon"
}

// Recognize runs every lexicon pattern over the text and returns the matched
// spans with their labels and rule confidences.
func (r *LexiconRecognizer) Recognize(text string) ([]jobinfo.Entity, error) {
	var entities []jobinfo.Entity

	for _, p := range lexiconPatterns {
		for _, idx := range p.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := idx[0], idx[1]
			if p.group && len(idx) >= 4 && idx[2] >= 0 {
				start, end = idx[2], idx[3]
			}
			entities = append(entities, jobinfo.Entity{
				Text:       text[start:end],
				Label:      p.label,
				Start:      start,
				End:        end,
				Confidence: p.confidence,
			})
		}
	}

	return entities, nil
}
