package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hireoo/extraction-service/internal/jobinfo"
)

// maxPromptTextChars caps how much normalized text is sent to the model.
const maxPromptTextChars = 15000

// truncationMarker is appended when the text exceeds the cap.
const truncationMarker = "...(truncated)"

// SchemaField describes one field of the extraction output for the model.
type SchemaField struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// promptPreamble frames the extraction task.
const promptPreamble = `You are an expert HR data analyst. Your task is to extract structured job information from the raw text of a social media job post.
You are given the raw text and potential entities identified by heuristic rules.`

// jobInfoFields is the fixed extraction field list with per-field semantics.
var jobInfoFields = []SchemaField{
	{Name: "job_title", Type: "string", Description: `The specific job title (e.g. "Senior React Developer"). If not explicitly stated, INFER it from the context. Do not use "Unknown".`, Required: true},
	{Name: "company", Type: "string", Description: "The hiring company name. If not explicitly stated, check for email domains or mentions.", Required: true},
	{Name: "location", Type: "string", Description: `The job location (City, Country or "Remote").`},
	{Name: "skills", Type: "[string]", Description: "A list of specific technical and soft skills required."},
	{Name: "experience_required", Type: "string", Description: `Years of experience or level (e.g. "3-5 years", "Senior").`},
	{Name: "salary_range", Type: "string", Description: `Salary information if available (e.g. "$120k - $150k" or "Competitive"), else null.`},
	{Name: "job_type", Type: "string", Description: `"Full-time", "Part-time", "Contract", "Internship".`},
	{Name: "hr_name", Type: "string", Description: "Name of the hiring manager/recruiter if mentioned, else null."},
	{Name: "hr_email", Type: "string", Description: "Email address of the recruiter/company if mentioned, else null."},
	{Name: "application_deadline", Type: "string", Description: "Application deadline date if mentioned, else null."},
	{Name: "description", Type: "string", Description: "A clean Markdown summary of the job description, under 500 words. Join sentences split across lines."},
	{Name: "confidence_score", Type: "number", Description: "A float between 0.0 and 1.0 indicating your confidence in the extraction."},
}

// BuildPrompt constructs the fixed-schema extraction instruction from the
// normalized text and the heuristic candidates. Text beyond the cap is
// truncated with a marker; candidates are serialized for context only and
// the model is told to verify them against the actual text.
func BuildPrompt(text string, candidates jobinfo.Candidates) string {
	if len(text) > maxPromptTextChars {
		text = text[:maxPromptTextChars] + truncationMarker
	}

	entities, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		entities = []byte("{}")
	}

	var sb strings.Builder
	sb.WriteString(promptPreamble)
	sb.WriteString("\n\nExtract the following fields in strict JSON format:\n")
	for _, field := range jobInfoFields {
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("- %s (%s)%s: %s\n", field.Name, field.Type, requiredHint, field.Description))
	}

	sb.WriteString("\nRaw text:\n\"\"\"\n")
	sb.WriteString(text)
	sb.WriteString("\n\"\"\"\n\n")

	sb.WriteString("Potential entities (for context only, verify against the actual text):\n")
	sb.Write(entities)
	sb.WriteString("\n\nReturn ONLY the valid JSON object. Do not include any explanation or markdown formatting outside the JSON.\n")

	return sb.String()
}
