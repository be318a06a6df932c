package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireoo/extraction-service/internal/jobinfo"
	"github.com/hireoo/extraction-service/internal/llm"
)

// stubClient is a generation double that records the prompt and parameters
// it was called with.
type stubClient struct {
	reply      string
	err        error
	lastPrompt string
	lastParams llm.Params
}

func (c *stubClient) GenerateJSON(_ context.Context, prompt string, params llm.Params) (string, error) {
	c.lastPrompt = prompt
	c.lastParams = params
	return c.reply, c.err
}

func (c *stubClient) Model() string { return "stub-model" }
func (c *stubClient) Close() error  { return nil }

func TestExtract_ParsesStructuredReply(t *testing.T) {
	stub := &stubClient{reply: `{"job_title": "Senior Software Engineer", "company": "Google", "skills": ["Python", "React"], "confidence_score": 0.92}`}
	p := New(stub)

	ext, err := p.Extract(context.Background(), "some post text", jobinfo.Candidates{})

	require.NoError(t, err)
	assert.Equal(t, "Senior Software Engineer", ext.Fields["job_title"])
	assert.Equal(t, 0.92, ext.Confidence)
}

func TestExtract_StripsCodeFences(t *testing.T) {
	stub := &stubClient{reply: "```json\n{\"job_title\": \"Developer\", \"company\": \"Acme\"}\n```"}
	p := New(stub)

	ext, err := p.Extract(context.Background(), "text", jobinfo.Candidates{})

	require.NoError(t, err)
	assert.Equal(t, "Developer", ext.Fields["job_title"])
}

func TestExtract_GenerateFailureReturnsTypedError(t *testing.T) {
	stub := &stubClient{err: errors.New("quota exceeded")}
	p := New(stub)

	_, err := p.Extract(context.Background(), "text", jobinfo.Candidates{})

	var genErr *GenerateError
	require.ErrorAs(t, err, &genErr)
}

func TestExtract_MalformedReplyReturnsParseError(t *testing.T) {
	stub := &stubClient{reply: "I could not find any job information in this post."}
	p := New(stub)

	_, err := p.Extract(context.Background(), "text", jobinfo.Candidates{})

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestExtract_SchemaViolationReturnsParseError(t *testing.T) {
	stub := &stubClient{reply: `{"job_title": 42}`}
	p := New(stub)

	_, err := p.Extract(context.Background(), "text", jobinfo.Candidates{})

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestExtract_UsesDeterministicParams(t *testing.T) {
	stub := &stubClient{reply: `{}`}
	p := New(stub)

	_, err := p.Extract(context.Background(), "text", jobinfo.Candidates{})

	require.NoError(t, err)
	assert.InDelta(t, 0.1, stub.lastParams.Temperature, 0.001)
	assert.EqualValues(t, 1024, stub.lastParams.MaxOutputTokens)
}

func TestBuildPrompt_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("a", maxPromptTextChars+500)

	prompt := BuildPrompt(long, jobinfo.Candidates{})

	assert.Contains(t, prompt, truncationMarker)
	assert.Less(t, len(prompt), len(long)+2000)
}

func TestBuildPrompt_IncludesCandidatesForContext(t *testing.T) {
	cands := jobinfo.Candidates{Emails: []string{"hr@acme.com"}}

	prompt := BuildPrompt("We're hiring.", cands)

	assert.Contains(t, prompt, "hr@acme.com")
	assert.Contains(t, prompt, "for context only")
	assert.Contains(t, prompt, "job_title")
	assert.Contains(t, prompt, "confidence_score")
}

func TestDeriveConfidence_ModelScoreTakesPrecedence(t *testing.T) {
	fields := map[string]any{
		"job_title":        "Engineer",
		"company":          "Acme",
		"confidence_score": 0.55,
	}

	assert.Equal(t, 0.55, deriveConfidence(fields))
}

func TestDeriveConfidence_OutOfRangeModelScoreIgnored(t *testing.T) {
	fields := map[string]any{
		"job_title":        "Engineer",
		"company":          "Acme",
		"confidence_score": 1.5,
	}

	// Falls back to field presence: both required, no optional.
	assert.Equal(t, 0.7, deriveConfidence(fields))
}

func TestDeriveConfidence_FieldPresenceFormula(t *testing.T) {
	fields := map[string]any{
		"job_title": "Engineer",
		"company":   "Acme",
		"location":  "Remote",
		"skills":    []any{"Go"},
		"hr_email":  "hr@acme.com",
	}

	// 0.7*(2/2) + 0.3*(3/5) = 0.88
	assert.Equal(t, 0.88, deriveConfidence(fields))
}

func TestDeriveConfidence_EmptyValuesNotCounted(t *testing.T) {
	fields := map[string]any{
		"job_title": "  ",
		"company":   nil,
		"skills":    []any{},
	}

	assert.Equal(t, 0.0, deriveConfidence(fields))
}
