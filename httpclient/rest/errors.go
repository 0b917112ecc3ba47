package rest

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	apperrors "github.com/kbukum/picoview/errors"
	"github.com/kbukum/picoview/httpclient"
)

var (
	// ErrNotInitialized is returned by every operation before Initialize succeeds.
	ErrNotInitialized = errors.New("rest: client not initialized")

	// ErrInvalidBaseAddress is returned by Initialize for an unusable base address.
	ErrInvalidBaseAddress = errors.New("rest: invalid base address")
)

// DecodeError reports a 2xx response whose body could not be decoded into
// the requested type.
type DecodeError struct {
	StatusCode int
	Body       []byte
	// Target is the Go type the body was decoded into.
	Target string
	// Reason is set for empty and null bodies, Err for parser failures.
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rest: decode %s (HTTP %d): %v", e.Target, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("rest: decode %s (HTTP %d): %s", e.Target, e.StatusCode, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Kind is the failure category of an operation error.
type Kind int

const (
	// KindNone means the error is nil.
	KindNone Kind = iota
	KindNotInitialized
	KindRequestFailed
	KindDecodeFailed
	KindTransport
	// KindInvalidRequest means the request could not be built, e.g. the body
	// is not JSON-encodable.
	KindInvalidRequest
	KindUnknown
)

// String returns the category name used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindNotInitialized:
		return "not_initialized"
	case KindRequestFailed:
		return "request_failed"
	case KindDecodeFailed:
		return "decode_failed"
	case KindTransport:
		return "transport"
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

// Category classifies an error returned by Fetch, Create, Replace or Remove.
//
// Failures below HTTP arrive as the *url.Error from net/http and are
// KindTransport. A response whose body breaks off mid-read is KindTransport
// as well: it arrives as an *httpclient.Error with ErrCodeReadBody that
// wraps the read error, so errors.Is still reaches the cause.
func Category(err error) Kind {
	var (
		decodeErr *DecodeError
		httpErr   *httpclient.Error
		urlErr    *url.Error
	)
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotInitialized):
		return KindNotInitialized
	case errors.As(err, &decodeErr):
		return KindDecodeFailed
	case httpclient.IsRequestFailed(err):
		return KindRequestFailed
	case httpclient.IsInvalidRequest(err):
		return KindInvalidRequest
	case errors.As(err, &httpErr):
		return KindTransport
	case errors.As(err, &urlErr):
		return KindTransport
	default:
		return KindUnknown
	}
}

// IsNotInitialized reports whether err is ErrNotInitialized.
func IsNotInitialized(err error) bool { return Category(err) == KindNotInitialized }

// IsRequestFailed reports whether the backend answered with a non-2xx status.
func IsRequestFailed(err error) bool { return Category(err) == KindRequestFailed }

// IsDecodeFailed reports whether a 2xx body could not be decoded.
func IsDecodeFailed(err error) bool { return Category(err) == KindDecodeFailed }

// IsTransport reports whether the request failed below HTTP (DNS, refused
// connection, TLS, timeout, cancellation).
func IsTransport(err error) bool { return Category(err) == KindTransport }

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool { return IsRequestFailed(err) && httpclient.IsNotFound(err) }

// StatusCode returns the HTTP status carried by a RequestFailed or
// DecodeFailed error, or 0.
func StatusCode(err error) int {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr.StatusCode
	}
	return httpclient.StatusCodeOf(err)
}

// Body returns the raw response body carried by err, or nil.
func Body(err error) []byte {
	var (
		decodeErr *DecodeError
		httpErr   *httpclient.Error
	)
	switch {
	case errors.As(err, &decodeErr):
		return decodeErr.Body
	case errors.As(err, &httpErr):
		return httpErr.Body
	}
	return nil
}

// ToAppError maps an operation error onto the shared application error type
// so hosts can render it uniformly. Backend 404s become NOT_FOUND.
func ToAppError(err error) *apperrors.AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	switch Category(err) {
	case KindNotInitialized:
		return apperrors.NotInitialized("rest").WithCause(err)
	case KindRequestFailed:
		if IsNotFound(err) {
			return apperrors.NotFound("resource", "").WithCause(err).
				WithDetail("body", string(Body(err)))
		}
		appErr := apperrors.RequestFailed(StatusCode(err), Body(err)).WithCause(err)
		appErr.Retryable = httpclient.IsRetryable(err)
		return appErr
	case KindDecodeFailed:
		var decodeErr *DecodeError
		errors.As(err, &decodeErr)
		return apperrors.DecodeFailed(decodeErr.Target, err)
	case KindTransport:
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return apperrors.Timeout("rest").WithCause(err)
		}
		return apperrors.ConnectionFailed("pico backend").WithCause(err)
	case KindInvalidRequest:
		return apperrors.InvalidInput("body", err.Error()).WithCause(err)
	default:
		return apperrors.Internal(err)
	}
}

func isTimeout(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
