package server

import "github.com/hireoo/extraction-service/internal/jobinfo"

// ExtractRequest is the request body for POST /api/v1/extract and each item
// of a batch request.
type ExtractRequest struct {
	RawHTML string `json:"raw_html" validate:"omitempty"`
	RawText string `json:"raw_text" validate:"required"`
}

// ExtractResponse is the success/error envelope around one extraction.
type ExtractResponse struct {
	Success        bool                  `json:"success"`
	Data           *jobinfo.JobInfo      `json:"data,omitempty"`
	Error          string                `json:"error,omitempty"`
	ProcessingTime float64               `json:"processing_time"`
	RequestID      string                `json:"request_id,omitempty"`
	IsJobPost      bool                  `json:"is_job_post"`
	Metadata       *jobinfo.PostMetadata `json:"metadata,omitempty"`
}

// BatchResult is the per-item outcome inside a batch response.
type BatchResult struct {
	Index   int              `json:"index"`
	Success bool             `json:"success"`
	Data    *jobinfo.JobInfo `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// BatchResponse aggregates the outcomes of a batch extraction.
type BatchResponse struct {
	TotalProcessed      int           `json:"total_processed"`
	Successful          int           `json:"successful"`
	Failed              int           `json:"failed"`
	Results             []BatchResult `json:"results"`
	TotalProcessingTime float64       `json:"total_processing_time"`
}

// HealthResponse reports service status and loaded capabilities.
type HealthResponse struct {
	Status       string   `json:"status"`
	Version      string   `json:"version"`
	ModelsLoaded []string `json:"models_loaded"`
	Uptime       float64  `json:"uptime"`
}
