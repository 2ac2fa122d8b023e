package github

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
)

// ErrorType classifies GitHub API failures at the granularity the resolution
// pipeline cares about: not-found versus everything else, plus what is safe to
// retry.
type ErrorType string

const (
	// ErrorTypeNotFound marks 404-class responses
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeRateLimit marks primary or secondary rate limit responses
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeNetwork marks connection failures and 5xx responses
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeUnknown marks everything else
	ErrorTypeUnknown ErrorType = "unknown"
)

// APIError is a structured error from GitHub operations
type APIError struct {
	Type      ErrorType
	Message   string
	Resource  string
	Cause     error
	Retryable bool
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Type, e.Resource, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err represents a 404-class response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrorTypeNotFound
}

// WrapError wraps an error returned by the go-github client into an APIError,
// classifying it by status code.
func WrapError(err error, resource string) *APIError {
	if err == nil {
		return nil
	}

	// Already classified, just attach the resource
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Resource == "" {
			apiErr.Resource = resource
		}
		return apiErr
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &APIError{
			Type:      ErrorTypeRateLimit,
			Message:   fmt.Sprintf("rate limit exceeded, resets at %v", rateErr.Rate.Reset.Time),
			Resource:  resource,
			Cause:     err,
			Retryable: true,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &APIError{
			Type:      ErrorTypeRateLimit,
			Message:   "secondary rate limit exceeded",
			Resource:  resource,
			Cause:     err,
			Retryable: true,
		}
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return classifyErrorResponse(ghErr, resource)
	}

	if isNetworkError(err) {
		return &APIError{
			Type:      ErrorTypeNetwork,
			Message:   err.Error(),
			Resource:  resource,
			Cause:     err,
			Retryable: true,
		}
	}

	return &APIError{
		Type:     ErrorTypeUnknown,
		Message:  err.Error(),
		Resource: resource,
		Cause:    err,
	}
}

// classifyErrorResponse maps a GitHub API error response onto an APIError by
// status code
func classifyErrorResponse(ghErr *github.ErrorResponse, resource string) *APIError {
	baseErr := &APIError{
		Message:  ghErr.Message,
		Resource: resource,
		Cause:    ghErr,
	}

	switch ghErr.Response.StatusCode {
	case http.StatusNotFound:
		baseErr.Type = ErrorTypeNotFound

	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(ghErr.Message), "rate limit") {
			baseErr.Type = ErrorTypeRateLimit
			baseErr.Retryable = true
		} else {
			baseErr.Type = ErrorTypeUnknown
		}

	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		baseErr.Type = ErrorTypeNetwork
		baseErr.Message = fmt.Sprintf("GitHub API is temporarily unavailable (HTTP %d)", ghErr.Response.StatusCode)
		baseErr.Retryable = true

	default:
		baseErr.Type = ErrorTypeUnknown
		baseErr.Retryable = ghErr.Response.StatusCode >= 500
	}

	return baseErr
}

// isNetworkError checks if an error is a network-related error
func isNetworkError(err error) bool {
	errStr := strings.ToLower(err.Error())
	networkKeywords := []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no such host",
		"timeout",
		"dial tcp",
	}

	for _, keyword := range networkKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}
