package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIncludesInternal(t *testing.T) {
	internal := stdErrors.New("boom")
	err := Wrap(internal, "failed")

	if err.Error() != "failed: boom" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
}

func TestWithInternalCopies(t *testing.T) {
	base := New("TEST", "test", 400)
	with := base.WithInternal(stdErrors.New("oops"))

	if with == base {
		t.Fatal("expected WithInternal to return a copy")
	}
	if base.Internal != nil {
		t.Fatal("expected original error to remain unchanged")
	}
	if with.Internal == nil {
		t.Fatal("expected internal error to be set")
	}
}

func TestWithDataKeepsSentinelIdentity(t *testing.T) {
	locked := ErrAccountLocked.WithData(map[string]string{"locked_until": "2030-01-01T00:00:00Z"})

	if ErrAccountLocked.Data != nil {
		t.Fatal("expected sentinel to remain untouched")
	}
	if !stdErrors.Is(locked, ErrAccountLocked) {
		t.Fatal("expected copy to match the sentinel by code")
	}
	if stdErrors.Is(locked, ErrForbidden) {
		t.Fatal("different codes must not match")
	}
}

func TestFromError(t *testing.T) {
	appErr := ErrNotFound
	if out := FromError(appErr); out != appErr {
		t.Fatal("expected FromError to return the same AppError instance")
	}

	wrapped := fmt.Errorf("load: %w", ErrForbidden)
	if out := FromError(wrapped); out.StatusCode != http.StatusForbidden {
		t.Fatalf("expected wrapped AppError to be recovered, got %d", out.StatusCode)
	}

	raw := stdErrors.New("raw")
	out := FromError(raw)
	if out.Code != ErrInternalServer.Code {
		t.Fatalf("expected internal server code, got %s", out.Code)
	}
	if out.Internal == nil {
		t.Fatal("expected internal error to be attached")
	}
}

func TestTaxonomyConstructors(t *testing.T) {
	cases := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"validation", NewValidation("bad"), CodeValidation, http.StatusBadRequest},
		{"missing", NewMissingFields([]string{"number", "capacity"}), CodeValidation, http.StatusBadRequest},
		{"not found", NewNotFound("Bowser"), CodeNotFound, http.StatusNotFound},
		{"policy", NewPolicyViolation("too short"), CodePasswordPolicy, http.StatusBadRequest},
		{"storage", NewStorage(stdErrors.New("disk full")), CodeStorage, http.StatusInternalServerError},
		{"bad request", NewBadRequest("invalid payload"), ErrBadRequest.Code, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.StatusCode != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, tc.err.StatusCode)
			}
		})
	}

	if msg := NewMissingFields([]string{"number", "capacity"}).Message; msg != "Missing required fields: number, capacity" {
		t.Fatalf("unexpected message: %s", msg)
	}
	if msg := NewNotFound("Bowser").Message; msg != "Bowser not found" {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestStorageErrorHidesInternalText(t *testing.T) {
	err := NewStorage(stdErrors.New("UNIQUE constraint failed: users.email"))
	if err.Message != "A storage error occurred" {
		t.Fatalf("unexpected client message: %s", err.Message)
	}
	if err.Internal == nil {
		t.Fatal("expected internal error to be kept for logging")
	}
}
