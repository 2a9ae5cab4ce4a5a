package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/information-sharing-networks/docusign-client/pkg/connect"
)

// sanity check that the error codes are in the correct range
func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		errCode  ErrorCode
		wantCode int
	}{
		{"bad_signature", ErrCodeBadSignature, 7001},
		{"internal_error", ErrCodeInternalError, 7005},
		{"malformed_request", ErrCodeMalformedRequest, 7006},
		{"rate_limit", ErrCodeRateLimitExceeded, 7009},
		{"too_large", ErrCodeRequestTooLarge, 7010},
		{"not_found", ErrCodeNotFound, 8004},
	}
	for _, tt := range tests {
		if int(tt.errCode) != tt.wantCode {
			t.Errorf("%s: got %d, want %d", tt.name, tt.errCode, tt.wantCode)
		}
	}
}

func TestRespondWithErrorResponse(t *testing.T) {
	dbErr := errors.New("connection refused")

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    ErrorCode
		wantMessage string
	}{
		{
			name:        "bad signature",
			err:         NewBadSignatureError("no valid signature"),
			wantStatus:  http.StatusUnauthorized,
			wantCode:    ErrCodeBadSignature,
			wantMessage: "no valid signature",
		},
		{
			name:        "wrapped malformed request",
			err:         WrapMalformedRequestError(connect.ErrMalformed, "could not parse notification"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    ErrCodeMalformedRequest,
			wantMessage: "could not parse notification",
		},
		{
			name:        "unwrapped connect error",
			err:         fmt.Errorf("status %q: %w", "Pending", connect.ErrUnknownStatus),
			wantStatus:  http.StatusBadRequest,
			wantCode:    ErrCodeMalformedRequest,
			wantMessage: "Pending",
		},
		{
			name:        "not found",
			err:         NewNotFoundError("envelope env-1 not found"),
			wantStatus:  http.StatusNotFound,
			wantCode:    ErrCodeNotFound,
			wantMessage: "env-1",
		},
		{
			name:        "internal error hides details",
			err:         WrapInternalError(dbErr, "could not store notification"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    ErrCodeInternalError,
			wantMessage: "An internal error occurred",
		},
		{
			name:        "unmapped error",
			err:         dbErr,
			wantStatus:  http.StatusInternalServerError,
			wantCode:    ErrCodeInternalError,
			wantMessage: "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/connect", nil)
			rr := httptest.NewRecorder()

			RespondWithErrorResponse(rr, req, tt.err)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("could not decode response: %v", err)
			}
			if resp.StatusCode != tt.wantStatus || resp.HTTPMethod != http.MethodPost || resp.RequestURI != "/connect" {
				t.Errorf("unexpected response: %+v", resp)
			}
			if len(resp.Errors) != 1 {
				t.Fatalf("expected one detailed error, got %d", len(resp.Errors))
			}
			if resp.Errors[0].ErrorCode != tt.wantCode {
				t.Errorf("error code = %d, want %d", resp.Errors[0].ErrorCode, tt.wantCode)
			}
			if !strings.Contains(resp.Errors[0].ErrorCodeMessage, tt.wantMessage) {
				t.Errorf("message %q does not contain %q", resp.Errors[0].ErrorCodeMessage, tt.wantMessage)
			}
			if strings.Contains(resp.Errors[0].ErrorCodeMessage, "connection refused") {
				t.Error("internal error details leaked to the client")
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := WrapMalformedRequestError(connect.ErrMissingStatus, "bad notification")
	if !errors.Is(err, connect.ErrMissingStatus) {
		t.Error("expected the wrapped error to be reachable")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Code() != ErrCodeMalformedRequest {
		t.Errorf("unexpected error: %v", err)
	}
}
