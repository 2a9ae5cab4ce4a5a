package api

// errors.go defines the error codes returned by the Connect receiver API

import "fmt"

// Error represents a structured error returned by the receiver handlers.
type Error struct {
	// code is the API error code
	code ErrorCode

	// message is a human-readable error message
	message string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *Error) Code() ErrorCode { return e.code }
func (e *Error) Unwrap() error   { return e.wrapped }

// ErrorCode is used in the errors returned by the receiver API.
//
//   - 7000-7999 for technical errors - the request could not be processed because of the supplied data or a server issue.
//   - 8000-8999 for functional errors - the request is valid but refers to something that does not exist.
type ErrorCode int

const (

	// ErrCodeBadSignature is used when a Connect notification has no valid X-DocuSign-Signature-N header
	ErrCodeBadSignature ErrorCode = 7001

	// ErrCodeInternalError is used when an internal server error occurs
	ErrCodeInternalError ErrorCode = 7005

	// ErrCodeMalformedRequest is used when the notification XML cannot be parsed
	// or carries an unknown status
	ErrCodeMalformedRequest ErrorCode = 7006

	// ErrCodeRateLimitExceeded is used when the rate limit is exceeded
	// - this is only used in the middleware
	ErrCodeRateLimitExceeded ErrorCode = 7009

	// ErrCodeRequestTooLarge is used when the request body is too large
	// - this is only used in the middleware
	ErrCodeRequestTooLarge ErrorCode = 7010

	// ErrCodeNotFound is used when no notification was received for the requested envelope
	ErrCodeNotFound ErrorCode = 8004
)

// NewMalformedRequestError creates an error for malformed requests.
func NewMalformedRequestError(msg string) error {
	return &Error{code: ErrCodeMalformedRequest, message: msg}
}

// WrapMalformedRequestError wraps an existing error as a malformed request error.
func WrapMalformedRequestError(err error, msg string) error {
	return &Error{code: ErrCodeMalformedRequest, message: msg, wrapped: err}
}

// NewBadSignatureError creates an error for notifications failing the HMAC check.
func NewBadSignatureError(msg string) error {
	return &Error{code: ErrCodeBadSignature, message: msg}
}

func NewNotFoundError(msg string) error {
	return &Error{code: ErrCodeNotFound, message: msg}
}

// NewInternalError creates an internal error for unexpected failures.
//
// The returned error will have code ErrCodeInternalError.
func NewInternalError(msg string) error {
	return &Error{code: ErrCodeInternalError, message: msg}
}

// WrapInternalError wraps an existing error (typically a database error) as an internal error.
// The wrapped message is logged but not returned to the client.
func WrapInternalError(err error, msg string) error {
	return &Error{code: ErrCodeInternalError, message: msg, wrapped: err}
}

// NewRateLimitError creates a rate limit exceeded error.
func NewRateLimitError(msg string) error {
	return &Error{code: ErrCodeRateLimitExceeded, message: msg}
}

// NewRequestTooLargeError creates a request too large error.
// Use this when the request body exceeds the maximum allowed size.
func NewRequestTooLargeError(msg string) error {
	return &Error{code: ErrCodeRequestTooLarge, message: msg}
}
