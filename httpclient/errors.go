package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeRequestFailed indicates the server answered with a non-2xx status.
	ErrCodeRequestFailed ErrorCode = iota
	// ErrCodeInvalidRequest indicates the request could not be built
	// (unencodable body, malformed URL).
	ErrCodeInvalidRequest
	// ErrCodeReadBody indicates the response body could not be read.
	ErrCodeReadBody
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeRequestFailed:
		return "request_failed"
	case ErrCodeInvalidRequest:
		return "invalid_request"
	case ErrCodeReadBody:
		return "read_body"
	default:
		return "unknown"
	}
}

// Error is a structured HTTP client error with classification.
type Error struct {
	// StatusCode is the HTTP status code (0 when no response was received).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Retryable reports whether repeating the request could succeed.
	// The adapter itself never retries.
	Retryable bool
	// Body is the raw response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewInvalidRequestError creates an error for a request that could not be built.
func NewInvalidRequestError(msg string, err error) *Error {
	return &Error{
		Code:    ErrCodeInvalidRequest,
		Message: msg,
		Err:     err,
	}
}

// NewReadBodyError creates an error for a response body that could not be read.
func NewReadBodyError(statusCode int, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeReadBody,
		Message:    err.Error(),
		Retryable:  true,
		Err:        err,
	}
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	msg := http.StatusText(statusCode)
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", statusCode)
	}
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeRequestFailed,
		Message:    msg,
		Retryable:  statusCode == http.StatusTooManyRequests || statusCode >= 500,
		Body:       body,
	}
}

// IsRequestFailed checks if an error is a non-2xx response.
func IsRequestFailed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeRequestFailed
}

// IsInvalidRequest checks if an error comes from building the request.
func IsInvalidRequest(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeInvalidRequest
}

// IsNotFound checks if an error is a 404 response.
func IsNotFound(err error) bool {
	return StatusCodeOf(err) == http.StatusNotFound
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// StatusCodeOf returns the HTTP status carried by err, or 0.
func StatusCodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
