package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMapError(t *testing.T) {
	cause := stderrors.New("boom")

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"source fetch", &SourceFetchError{URL: "https://x", StatusCode: 404, Err: cause}, http.StatusBadGateway, ErrCodeSourceFetch},
		{"wrapped source fetch", fmt.Errorf("import: %w", &SourceFetchError{URL: "https://x", Err: cause}), http.StatusBadGateway, ErrCodeSourceFetch},
		{"validation", NewValidationError(map[string]string{"title": "This field is required."}), http.StatusBadRequest, ErrCodeValidation},
		{"parse", &ParseError{Source: "a.html", Err: cause}, http.StatusUnprocessableEntity, ErrCodeParse},
		{"database", fmt.Errorf("database query failed: %w", cause), http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"throttled", ErrThrottled, http.StatusTooManyRequests, ErrCodeRateLimited},
		{"unknown", cause, http.StatusInternalServerError, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.HTTPStatus != tt.status {
				t.Errorf("status = %d, want %d", got.HTTPStatus, tt.status)
			}
			if got.Code != tt.code {
				t.Errorf("code = %s, want %s", got.Code, tt.code)
			}
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	if MapError(nil) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestMapErrorValidationDetails(t *testing.T) {
	fields := map[string]string{"address": "This field is required."}
	got := MapError(NewValidationError(fields))
	if got.Details["address"] != fields["address"] {
		t.Errorf("details = %v", got.Details)
	}
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := NewValidationError(map[string]string{"title": "a", "address": "b"})
	want := "validation failed: address: b; title: a"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
