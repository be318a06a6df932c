// Package jobinfo defines the canonical data model shared by the extraction pipeline.
package jobinfo

// MaxContentLength is the upper bound for either input field of a Post.
// Oversized content is rejected at the transport layer before a pipeline run starts.
const MaxContentLength = 50000

// Post is the raw input unit for one pipeline run. HTML may be empty;
// Text is the plain-text fallback and must be non-empty.
type Post struct {
	HTML string `json:"raw_html"`
	Text string `json:"raw_text"`
}

// Entity is a single named-entity span found in normalized text.
type Entity struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Entity labels recognized by the heuristic pass. GPE and LOC both map
// into the Locations bucket of Candidates.
const (
	LabelPerson   = "PERSON"
	LabelOrg      = "ORG"
	LabelGPE      = "GPE"
	LabelLocation = "LOC"
	LabelMoney    = "MONEY"
	LabelDate     = "DATE"
)

// Candidates holds the heuristic extraction output for one run: named-entity
// buckets, regex pattern matches (deduplicated by exact value), and a scalar
// confidence summarizing overall entity density. Produced once per run and
// never mutated afterwards.
type Candidates struct {
	Persons       []Entity `json:"persons"`
	Organizations []Entity `json:"organizations"`
	Locations     []Entity `json:"locations"`
	Money         []Entity `json:"money"`
	Dates         []Entity `json:"dates"`

	Emails            []string `json:"emails"`
	PhoneNumbers      []string `json:"phone_numbers"`
	ExperiencePhrases []string `json:"experience_patterns"`
	TitlePhrases      []string `json:"job_titles"`
	SalaryPhrases     []string `json:"salary_patterns"`

	Confidence float64 `json:"confidence"`
}

// EntityCount returns the total number of named entities across all buckets.
// Pattern matches are not counted; they feed the structured provider directly.
func (c Candidates) EntityCount() int {
	return len(c.Persons) + len(c.Organizations) + len(c.Locations) + len(c.Money) + len(c.Dates)
}

// JobInfo is the canonical extraction result. Every optional field may
// independently be nil, but the record itself is always fully constructed:
// Skills is never nil and ConfidenceScore is always within [0, 1].
type JobInfo struct {
	JobTitle            *string  `json:"job_title"`
	Company             *string  `json:"company"`
	Location            *string  `json:"location"`
	Skills              []string `json:"skills"`
	ExperienceRequired  *string  `json:"experience_required"`
	HRName              *string  `json:"hr_name"`
	HREmail             *string  `json:"hr_email"`
	SalaryRange         *string  `json:"salary_range"`
	JobType             *string  `json:"job_type"`
	ApplicationDeadline *string  `json:"application_deadline"`
	Description         *string  `json:"description"`
	ConfidenceScore     float64  `json:"confidence_score"`
}

// Empty returns a structurally complete JobInfo with every optional field
// absent and zero confidence.
func Empty() JobInfo {
	return JobInfo{Skills: []string{}}
}

// PostMetadata describes media and text statistics of the raw HTML,
// reported alongside the extraction result.
type PostMetadata struct {
	HasImages      bool `json:"has_images"`
	HasLinks       bool `json:"has_links"`
	HasVideo       bool `json:"has_video"`
	WordCount      int  `json:"word_count"`
	CharacterCount int  `json:"character_count"`
}
