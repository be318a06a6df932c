package heuristics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireoo/extraction-service/internal/jobinfo"
)

const samplePost = "We're hiring a Senior Software Engineer at Google! " +
	"Must have 5+ years experience with Python and React. " +
	"Contact sarah.johnson@google.com"

func TestExtract_Emails(t *testing.T) {
	e := New(nil)

	c := e.Extract("Contact john.doe@company.com or jane@startup.io for more info.")

	assert.Contains(t, c.Emails, "john.doe@company.com")
	assert.Contains(t, c.Emails, "jane@startup.io")
}

func TestExtract_EmailsDeduplicated(t *testing.T) {
	e := New(nil)

	c := e.Extract("Email hr@corp.com today. Again: hr@corp.com")

	assert.Equal(t, []string{"hr@corp.com"}, c.Emails)
}

func TestExtract_PhoneNumbers(t *testing.T) {
	e := New(nil)

	c := e.Extract("Call 415-555-1234 or 212.555.9876 to apply.")

	assert.Contains(t, c.PhoneNumbers, "415-555-1234")
	assert.Contains(t, c.PhoneNumbers, "212.555.9876")
}

func TestExtract_ExperiencePhrases(t *testing.T) {
	e := New(nil)

	c := e.Extract("Must have 5+ years experience. Entry-level candidates welcome for the junior track.")

	assert.Contains(t, c.ExperiencePhrases, "5+ years experience")
	assert.Contains(t, c.ExperiencePhrases, "Entry-level")
	assert.Contains(t, c.ExperiencePhrases, "junior")
}

func TestExtract_TitlePhrases(t *testing.T) {
	e := New(nil)

	c := e.Extract(samplePost)

	assert.Contains(t, c.TitlePhrases, "Senior Software Engineer")
}

func TestExtract_SalaryPhrases(t *testing.T) {
	e := New(nil)

	c := e.Extract("Compensation: $120,000 - $150,000 per year plus equity.")

	require.NotEmpty(t, c.SalaryPhrases)
	assert.Contains(t, c.SalaryPhrases[0], "$120,000")
}

func TestExtract_SampleScenario(t *testing.T) {
	e := New(nil)

	c := e.Extract(samplePost)

	assert.Equal(t, []string{"sarah.johnson@google.com"}, c.Emails)

	require.NotEmpty(t, c.Organizations)
	assert.Equal(t, "Google", c.Organizations[0].Text)
	assert.Contains(t, c.ExperiencePhrases, "5+ years experience")
}

func TestExtract_ConfidenceBounds(t *testing.T) {
	e := New(nil)

	empty := e.Extract("nothing of interest here")
	assert.Equal(t, 0.0, empty.Confidence)

	dense := e.Extract(samplePost)
	assert.Greater(t, dense.Confidence, 0.0)
	assert.LessOrEqual(t, dense.Confidence, 1.0)
}

func TestExtract_EmptyText(t *testing.T) {
	e := New(nil)

	c := e.Extract("")

	assert.Zero(t, c.EntityCount())
	assert.Equal(t, 0.0, c.Confidence)
	assert.Empty(t, c.Emails)
}

type failingRecognizer struct{}

func (failingRecognizer) Recognize(string) ([]jobinfo.Entity, error) {
	return nil, errors.New("model unavailable")
}

func (failingRecognizer) Name() string { return "failing" }

func TestExtract_RecognizerFailureYieldsEmptyCandidates(t *testing.T) {
	e := New(failingRecognizer{})

	c := e.Extract(samplePost)

	assert.Zero(t, c.EntityCount())
	assert.Equal(t, 0.0, c.Confidence)
	assert.Empty(t, c.Emails)
}

type unscoredRecognizer struct{}

func (unscoredRecognizer) Recognize(text string) ([]jobinfo.Entity, error) {
	return []jobinfo.Entity{{Text: "Acme", Label: jobinfo.LabelOrg, Start: 0, End: 4}}, nil
}

func (unscoredRecognizer) Name() string { return "unscored" }

func TestExtract_DefaultsMissingEntityConfidenceToOne(t *testing.T) {
	e := New(unscoredRecognizer{})

	c := e.Extract("Acme")

	require.Len(t, c.Organizations, 1)
	assert.Equal(t, 1.0, c.Organizations[0].Confidence)
}
