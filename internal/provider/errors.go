package provider

import "fmt"

// GenerateError represents a failed generation call: network, auth, quota,
// or an empty model reply. It is the orchestrator's signal to fall back.
type GenerateError struct {
	Message string
	Cause   error
}

func (e *GenerateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed: %s", e.Message)
}

func (e *GenerateError) Unwrap() error {
	return e.Cause
}

// ParseError represents a model reply that could not be interpreted as the
// expected JSON object.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
