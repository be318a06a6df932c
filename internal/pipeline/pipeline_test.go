package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireoo/extraction-service/internal/jobinfo"
	"github.com/hireoo/extraction-service/internal/provider"
)

// stubExtractor returns a canned extraction or error regardless of input.
type stubExtractor struct {
	ext *provider.Extraction
	err error
}

func (s *stubExtractor) Extract(context.Context, string, jobinfo.Candidates) (*provider.Extraction, error) {
	return s.ext, s.err
}

const samplePost = "We're hiring a Senior Software Engineer at Google! " +
	"Must have 5+ years experience with Python and React. " +
	"Contact sarah.johnson@google.com"

func TestRun_ReconcilesStructuredResult(t *testing.T) {
	stub := &stubExtractor{ext: &provider.Extraction{
		Fields: map[string]any{
			"job_title": "Senior Software Engineer",
			"company":   "Google",
			"skills":    []any{"Python", "React"},
		},
		Confidence: 0.88,
	}}
	p := New(nil, nil, stub)

	info := p.Run(context.Background(), jobinfo.Post{Text: samplePost})

	require.NotNil(t, info.JobTitle)
	assert.Equal(t, "Senior Software Engineer", *info.JobTitle)
	require.NotNil(t, info.Company)
	assert.Equal(t, "Google", *info.Company)
	assert.Equal(t, []string{"Python", "React"}, info.Skills)
	assert.Equal(t, 0.88, info.ConfidenceScore)
}

func TestRun_ExtractionErrorFallsBackToHeuristics(t *testing.T) {
	stub := &stubExtractor{err: errors.New("model unavailable")}
	p := New(nil, nil, stub)

	info := p.Run(context.Background(), jobinfo.Post{Text: samplePost})

	require.NotNil(t, info.Company)
	assert.Equal(t, "Google", *info.Company)
	require.NotNil(t, info.HREmail)
	assert.Equal(t, "sarah.johnson@google.com", *info.HREmail)
	require.NotNil(t, info.ExperienceRequired)
	assert.Equal(t, FallbackConfidence, info.ConfidenceScore)
	assert.Nil(t, info.JobTitle)
	assert.NotNil(t, info.Skills)
	assert.Empty(t, info.Skills)
}

func TestRun_EmptyExtractionFallsBack(t *testing.T) {
	stub := &stubExtractor{ext: &provider.Extraction{Fields: map[string]any{}}}
	p := New(nil, nil, stub)

	info := p.Run(context.Background(), jobinfo.Post{Text: samplePost})

	assert.Equal(t, FallbackConfidence, info.ConfidenceScore)
}

func TestRun_BackfillsEmailFromHeuristics(t *testing.T) {
	stub := &stubExtractor{ext: &provider.Extraction{
		Fields:     map[string]any{"job_title": "Engineer", "hr_email": nil},
		Confidence: 0.7,
	}}
	p := New(nil, nil, stub)

	info := p.Run(context.Background(), jobinfo.Post{Text: samplePost})

	require.NotNil(t, info.HREmail)
	assert.Equal(t, "sarah.johnson@google.com", *info.HREmail)
}

func TestRun_ModelEmailWinsOverHeuristics(t *testing.T) {
	stub := &stubExtractor{ext: &provider.Extraction{
		Fields:     map[string]any{"job_title": "Engineer", "hr_email": "careers@google.com"},
		Confidence: 0.7,
	}}
	p := New(nil, nil, stub)

	info := p.Run(context.Background(), jobinfo.Post{Text: samplePost})

	require.NotNil(t, info.HREmail)
	assert.Equal(t, "careers@google.com", *info.HREmail)
}

func TestRun_CoercesSkillStringIntoList(t *testing.T) {
	stub := &stubExtractor{ext: &provider.Extraction{
		Fields:     map[string]any{"job_title": "Engineer", "skills": "Python, React, Node.js"},
		Confidence: 0.7,
	}}
	p := New(nil, nil, stub)

	info := p.Run(context.Background(), jobinfo.Post{Text: "hiring"})

	assert.Equal(t, []string{"Python", "React", "Node.js"}, info.Skills)
}

func TestRun_ClampsConfidenceScore(t *testing.T) {
	stub := &stubExtractor{ext: &provider.Extraction{
		Fields:     map[string]any{"job_title": "Engineer"},
		Confidence: 1.7,
	}}
	p := New(nil, nil, stub)

	info := p.Run(context.Background(), jobinfo.Post{Text: "hiring"})

	assert.Equal(t, 1.0, info.ConfidenceScore)
}

func TestFallbackResult_PrefersHighestConfidenceEntity(t *testing.T) {
	candidates := jobinfo.Candidates{
		Organizations: []jobinfo.Entity{
			{Text: "Acme", Label: jobinfo.LabelOrg, Confidence: 0.8},
			{Text: "Globex Corp", Label: jobinfo.LabelOrg, Confidence: 0.9},
		},
	}

	info := fallbackResult(candidates)

	require.NotNil(t, info.Company)
	assert.Equal(t, "Globex Corp", *info.Company)
}

func TestFallbackResult_EmptyCandidates(t *testing.T) {
	info := fallbackResult(jobinfo.Candidates{})

	assert.Nil(t, info.Company)
	assert.Nil(t, info.Location)
	assert.Nil(t, info.HREmail)
	assert.Equal(t, FallbackConfidence, info.ConfidenceScore)
	assert.NotNil(t, info.Skills)
}
