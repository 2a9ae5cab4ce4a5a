package docusign

// errors.go defines the errors returned by the DocuSign client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorCode string

const (
	// ErrCodeTransport is used when the HTTP request could not be performed (DNS, TLS, timeouts, etc)
	ErrCodeTransport ErrorCode = "transport"

	// ErrCodeUnexpectedStatus is used when DocuSign answered with a status code other than the expected one
	ErrCodeUnexpectedStatus ErrorCode = "unexpected_status"

	// ErrCodeDecode is used when a DocuSign response could not be decoded
	ErrCodeDecode ErrorCode = "decode"

	// ErrCodeValidation is used when the caller supplied invalid input (bad config, missing envelope id, etc)
	ErrCodeValidation ErrorCode = "validation"

	// ErrCodeInternal is used for unexpected failures, such as a request body that can't be encoded
	ErrCodeInternal ErrorCode = "internal"
)

// Error represents a structured error from the docusign package.
//
// For ErrCodeUnexpectedStatus errors the HTTP details of the failed call are populated,
// including the errorCode and message fields of the DocuSign error payload when present.
type Error struct {
	code    ErrorCode
	message string
	wrapped error

	StatusCode     int
	ExpectedStatus int
	Method         string
	URL            string
	Body           string

	// APIErrorCode and APIMessage are parsed from the DocuSign error body, e.g
	// {"errorCode": "ENVELOPE_DOES_NOT_EXIST", "message": "The envelope specified..."}
	APIErrorCode string
	APIMessage   string
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *Error) Code() ErrorCode { return e.code }
func (e *Error) Unwrap() error   { return e.wrapped }

// OAuth2Error is returned by the OAuth2 endpoints, e.g
// {"error": "invalid_client", "error_description": "..."}
type OAuth2Error struct {
	StatusCode  int    `json:"-"`
	ErrorType   string `json:"error"`
	Description string `json:"error_description"`
}

func (e *OAuth2Error) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("DocuSign OAuth2 error: %s (%s)", e.ErrorType, e.Description)
	}
	return fmt.Sprintf("DocuSign OAuth2 error: %s", e.ErrorType)
}

// NewValidationError creates an error for invalid caller input.
func NewValidationError(msg string) error {
	return &Error{code: ErrCodeValidation, message: msg}
}

// WrapValidationError wraps an existing error as a validation error.
func WrapValidationError(err error, msg string) error {
	return &Error{code: ErrCodeValidation, message: msg, wrapped: err}
}

// WrapTransportError wraps a failure to perform the HTTP request.
func WrapTransportError(err error, method, url string) error {
	return &Error{
		code:    ErrCodeTransport,
		message: fmt.Sprintf("DocuSign request error: %s %s failed", method, url),
		wrapped: err,
		Method:  method,
		URL:     url,
	}
}

// NewDecodeError creates an error for a DocuSign response that lacks expected content.
func NewDecodeError(msg string) error {
	return &Error{code: ErrCodeDecode, message: msg}
}

// WrapDecodeError wraps a failure to decode a DocuSign response.
func WrapDecodeError(err error, msg string) error {
	return &Error{code: ErrCodeDecode, message: msg, wrapped: err}
}

// WrapInternalError wraps an unexpected failure.
func WrapInternalError(err error, msg string) error {
	return &Error{code: ErrCodeInternal, message: msg, wrapped: err}
}

// newUnexpectedStatusError builds the error returned when DocuSign answers with the wrong status code.
func newUnexpectedStatusError(method, url string, status, expected int, body []byte) *Error {
	e := &Error{
		code:           ErrCodeUnexpectedStatus,
		StatusCode:     status,
		ExpectedStatus: expected,
		Method:         method,
		URL:            url,
		Body:           string(body),
	}

	var payload struct {
		ErrorCode string `json:"errorCode"`
		Message   string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		e.APIErrorCode = payload.ErrorCode
		e.APIMessage = payload.Message
	}

	e.message = fmt.Sprintf("DocuSign request failed: %s %s returned code %d while expecting code %d; Message: %s",
		method, url, status, expected, strings.TrimSpace(e.Body))
	return e
}

// IsNotFound reports whether err is a DocuSign 404 response.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a DocuSign 401 response.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

func hasStatus(err error, status int) bool {
	var dsErr *Error
	if errors.As(err, &dsErr) {
		return dsErr.code == ErrCodeUnexpectedStatus && dsErr.StatusCode == status
	}
	return false
}
