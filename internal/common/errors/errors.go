// Package errors provides standardized error handling for the pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeFetchFailed          ErrorCode = "FETCH_FAILED"
	ErrCodeProviderCallFailed   ErrorCode = "PROVIDER_CALL_FAILED"
	ErrCodeJSONExtractionFailed ErrorCode = "JSON_EXTRACTION_FAILED"
	ErrCodeQueryExecutionFailed ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeConfigurationInvalid ErrorCode = "CONFIGURATION_INVALID"
	ErrCodeExportFailed         ErrorCode = "EXPORT_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is lets errors.Is match two StandardErrors by code.
func (e *StandardError) Is(target error) bool {
	var se *StandardError
	if errors.As(target, &se) {
		return se.Code == e.Code
	}
	return false
}

// CodeOf returns the error code of err, or empty when err is not a
// StandardError.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// NewFetchFailedError wraps a network/HTTP failure while retrieving a page.
func NewFetchFailedError(url string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFetchFailed,
		Message:   "failed to fetch page content",
		Details:   fmt.Sprintf("url: %s, error: %s", url, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderCallFailedError wraps a backend call that threw, was unreachable
// or returned an unusable response. The backend's original message is kept.
func NewProviderCallFailedError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderCallFailed,
		Message:   "generation backend call failed",
		Details:   fmt.Sprintf("provider: %s, error: %s", provider, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewJSONExtractionFailedError reports a model reply that could not be
// coerced into structured data. rawPrefix carries at most the first 200
// characters of the reply for diagnostics.
func NewJSONExtractionFailedError(rawPrefix string) *StandardError {
	return &StandardError{
		Code:      ErrCodeJSONExtractionFailed,
		Message:   "could not extract JSON from model response",
		Details:   rawPrefix,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError wraps an ad-platform reporting query failure.
func NewQueryExecutionFailedError(tool string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "ad platform query failed",
		Details:   fmt.Sprintf("tool: %s, error: %s", tool, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationInvalidError is fatal at construction time: unknown
// provider, missing credential, unreadable credentials file.
func NewConfigurationInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationInvalid,
		Message:   "invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExportFailedError wraps a spreadsheet write failure.
func NewExportFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExportFailed,
		Message:   "spreadsheet export failed",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns how many local retries a failure class is worth.
// Generation and fetch failures get the single retry the pipeline defines;
// everything else is not retried.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProviderCallFailed, ErrCodeFetchFailed:
		return 1
	default:
		return 0
	}
}

// GetErrorCategory groups codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeFetchFailed:
		return "network"
	case ErrCodeProviderCallFailed, ErrCodeJSONExtractionFailed:
		return "generation"
	case ErrCodeQueryExecutionFailed:
		return "ads_platform"
	case ErrCodeConfigurationInvalid:
		return "configuration"
	case ErrCodeExportFailed:
		return "export"
	default:
		return "internal"
	}
}
