package server

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hireoo/extraction-service/internal/jobinfo"
	"github.com/hireoo/extraction-service/internal/normalize"
)

// batchConcurrency bounds how many pipeline runs a batch request may execute
// at once. Each run is independent and side-effect-free on shared state.
const batchConcurrency = 4

// handleExtract runs one extraction and wraps the always-valid pipeline
// result in the response envelope.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, start, &ErrValidation{Message: "invalid request body: " + err.Error()})
		return
	}
	if err := s.validateRequest(&req); err != nil {
		s.errorResponse(w, start, err)
		return
	}

	requestID := uuid.New().String()
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	info := s.pipeline.Run(ctx, jobinfo.Post{HTML: req.RawHTML, Text: req.RawText})

	resp := ExtractResponse{
		Success:        true,
		Data:           &info,
		ProcessingTime: secondsSince(start),
		RequestID:      requestID,
		IsJobPost:      normalize.IsJobPost(req.RawText),
	}
	if req.RawHTML != "" {
		meta := normalize.ExtractMetadata(req.RawHTML)
		resp.Metadata = &meta
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleExtractBatch runs up to BatchLimit extractions with bounded
// concurrency and reports per-item outcomes.
func (s *Server) handleExtractBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var reqs []ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		s.errorResponse(w, start, &ErrValidation{Message: "invalid request body: " + err.Error()})
		return
	}
	if len(reqs) == 0 {
		s.errorResponse(w, start, &ErrValidation{Message: "batch must contain at least one post"})
		return
	}
	if len(reqs) > s.cfg.BatchLimit {
		s.errorResponse(w, start, &ErrBatchTooLarge{Limit: s.cfg.BatchLimit})
		return
	}

	results := make([]BatchResult, len(reqs))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(batchConcurrency)

	for i, req := range reqs {
		g.Go(func() error {
			if err := s.validateRequest(&req); err != nil {
				results[i] = BatchResult{Index: i, Error: err.Error()}
				return nil
			}
			runCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
			defer cancel()

			info := s.pipeline.Run(runCtx, jobinfo.Post{HTML: req.RawHTML, Text: req.RawText})
			results[i] = BatchResult{Index: i, Success: true, Data: &info}
			return nil
		})
	}
	_ = g.Wait()

	resp := BatchResponse{
		TotalProcessed:      len(results),
		Results:             results,
		TotalProcessingTime: secondsSince(start),
	}
	for _, res := range results {
		if res.Success {
			resp.Successful++
		} else {
			resp.Failed++
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleHealth reports service status and the loaded capabilities.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:       "healthy",
		Version:      Version,
		ModelsLoaded: s.capabilities,
		Uptime:       time.Since(s.startTime).Seconds(),
	})
}

// validateRequest applies struct tags plus the configured size bound.
// Oversized or empty content never reaches the pipeline.
func (s *Server) validateRequest(req *ExtractRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return &ErrValidation{Field: "raw_text", Message: "content cannot be empty"}
	}
	if len(req.RawText) > s.cfg.MaxTextLength {
		return &ErrValidation{Field: "raw_text", Message: fmt.Sprintf("content too large (max %d chars)", s.cfg.MaxTextLength)}
	}
	if len(req.RawHTML) > s.cfg.MaxTextLength {
		return &ErrValidation{Field: "raw_html", Message: fmt.Sprintf("content too large (max %d chars)", s.cfg.MaxTextLength)}
	}
	return nil
}

func (s *Server) errorResponse(w http.ResponseWriter, start time.Time, err error) {
	s.writeJSON(w, HTTPStatus(err), ExtractResponse{
		Success:        false,
		Error:          err.Error(),
		ProcessingTime: secondsSince(start),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

// secondsSince reports elapsed time in seconds rounded to two decimals.
func secondsSince(start time.Time) float64 {
	return math.Round(time.Since(start).Seconds()*100) / 100
}
