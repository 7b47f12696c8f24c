package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestProtocolViolationError_ToServiceError(t *testing.T) {
	err := &ProtocolViolationError{Origin: ShapeProtectedResourceRequest}
	mapped := err.ToServiceError()
	if mapped.TextCode != ErrorProtocolViolation {
		t.Fatalf("expected %q text code, got %q", ErrorProtocolViolation, mapped.TextCode)
	}
	if mapped.Code != http.StatusBadRequest {
		t.Fatalf("expected %d code, got %d", http.StatusBadRequest, mapped.Code)
	}
	if !IsProtocolViolation(mapped) {
		t.Fatalf("expected mapped envelope to still report protocol violation")
	}
}

func TestIsProtocolViolation_PlainErrors(t *testing.T) {
	if IsProtocolViolation(nil) {
		t.Fatalf("expected nil to not be a protocol violation")
	}
	if IsProtocolViolation(errors.New("boom")) {
		t.Fatalf("expected plain error to not be a protocol violation")
	}
	wrapped := fmt.Errorf("exchange aborted: %w", &ProtocolViolationError{Origin: ShapeUserAuthorizationRequest})
	if !IsProtocolViolation(wrapped) {
		t.Fatalf("expected wrapped violation to be detected")
	}
}

func TestDefaultErrorMapper(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		textCode string
		code     int
	}{
		{
			name:     "protocol violation",
			err:      &ProtocolViolationError{Origin: ShapeProtectedResourceRequest},
			textCode: ErrorProtocolViolation,
			code:     http.StatusBadRequest,
		},
		{
			name:     "token lookup",
			err:      &TokenLookupError{Token: "t1", Cause: ErrTokenNotFound},
			textCode: ErrorTokenUnknown,
			code:     http.StatusBadRequest,
		},
		{
			name:     "wrapped not found",
			err:      fmt.Errorf("store: %w", ErrTokenNotFound),
			textCode: ErrorTokenUnknown,
			code:     http.StatusBadRequest,
		},
		{
			name:     "required",
			err:      errors.New("core: service_name is required"),
			textCode: ErrorBadInput,
			code:     http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := defaultErrorMapper(tc.err)
			if mapped == nil {
				t.Fatalf("expected mapped error")
			}
			if mapped.TextCode != tc.textCode {
				t.Fatalf("expected %q text code, got %q", tc.textCode, mapped.TextCode)
			}
			if mapped.Code != tc.code {
				t.Fatalf("expected %d code, got %d", tc.code, mapped.Code)
			}
		})
	}

	if defaultErrorMapper(nil) != nil {
		t.Fatalf("expected nil mapping for nil error")
	}
	var rich *goerrors.Error
	if !goerrors.As(defaultErrorMapper(errors.New("unexpected")), &rich) {
		t.Fatalf("expected envelope for unknown error")
	}
}
