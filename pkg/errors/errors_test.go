package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad input", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad id"), CodeInvalidInput, http.StatusBadRequest},
		{"invalid range", InvalidRange("outside hours"), CodeInvalidRange, http.StatusUnprocessableEntity},
		{"conflict", Conflict("slot taken"), CodeConflict, http.StatusConflict},
		{"forbidden", Forbidden("not yours"), CodeForbidden, http.StatusForbidden},
		{"unauthorized", Unauthorized("login"), CodeUnauthorized, http.StatusUnauthorized},
		{"invalid state", InvalidState("already cancelled"), CodeInvalidState, http.StatusConflict},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("too slow"), CodeTimeout, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	plain := Conflict("slot overlaps with an existing booking")
	want := "CONFLICT: slot overlaps with an existing booking"
	if plain.Error() != want {
		t.Errorf("Error() = %q, want %q", plain.Error(), want)
	}

	wrapped := Internal("query failed", errors.New("connection reset"))
	want = "INTERNAL_ERROR: query failed (caused by: connection reset)"
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("query failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap() should return the original error")
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Court", "abc123")

	if err.Details["resource"] != "Court" || err.Details["id"] != "abc123" {
		t.Errorf("details = %v, want resource and id populated", err.Details)
	}
}

func TestWithDetails(t *testing.T) {
	err := Validation("validation failed", nil).WithDetails(map[string]any{
		"field": "start",
	})
	if err.Details["field"] != "start" {
		t.Errorf("details = %v", err.Details)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("slot taken")
	if got := AsAppError(appErr); got != appErr {
		t.Error("AsAppError should return the same AppError unchanged")
	}

	raw := errors.New("mongo: something leaked")
	got := AsAppError(raw)
	if got.Code != CodeInternal {
		t.Errorf("code = %s, want %s", got.Code, CodeInternal)
	}
	if got.Message == raw.Error() {
		t.Error("raw error text must not become the client-visible message")
	}
}

func TestToJSON(t *testing.T) {
	err := NotFoundWithID("Booking", "b-1")

	var resp ErrorResponse
	if jsonErr := json.Unmarshal(err.ToJSON(), &resp); jsonErr != nil {
		t.Fatalf("ToJSON produced invalid JSON: %v", jsonErr)
	}
	if resp.Code != CodeNotFound {
		t.Errorf("code = %s, want %s", resp.Code, CodeNotFound)
	}
	if resp.Details["id"] != "b-1" {
		t.Errorf("details = %v", resp.Details)
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(Conflict("x")) {
		t.Error("expected true for AppError")
	}
	if IsAppError(errors.New("plain")) {
		t.Error("expected false for plain error")
	}
}
