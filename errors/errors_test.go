package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorClass_String(t *testing.T) {
	tests := []struct {
		class    ErrorClass
		expected string
	}{
		{ErrorTransient, "transient"},
		{ErrorInvalid, "invalid"},
		{ErrorFatal, "fatal"},
		{ErrorClass(999), "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			result := test.class.String()
			if result != test.expected {
				t.Errorf("expected %s, got %s", test.expected, result)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection timeout", ErrConnectionTimeout, true},
		{"context deadline exceeded", context.DeadlineExceeded, true},
		{"context canceled", context.Canceled, true},
		{"not found", ErrNotFound, false},
		{"conflict", ErrConflict, false},
		{"timeout in message", fmt.Errorf("operation timeout occurred"), true},
		{"classified transient", &ClassifiedError{Class: ErrorTransient, Err: fmt.Errorf("test")}, true},
		{"classified fatal", &ClassifiedError{Class: ErrorFatal, Err: fmt.Errorf("test")}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsTransient(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"not found", ErrNotFound, true},
		{"conflict", ErrConflict, true},
		{"depth exceeded", ErrDepthExceeded, true},
		{"invalid input", ErrInvalidInput, true},
		{"connection timeout", ErrConnectionTimeout, false},
		{"classified invalid", &ClassifiedError{Class: ErrorInvalid, Err: fmt.Errorf("test")}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsInvalid(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsNotFoundAndIsConflict(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "Store", "FindOne", "lookup")
	if !IsNotFound(wrapped) {
		t.Errorf("expected wrapped ErrNotFound to be detected")
	}
	if IsConflict(wrapped) {
		t.Errorf("did not expect wrapped ErrNotFound to be a conflict")
	}

	conflict := WrapInvalid(ErrConflict, "UserService", "SubscribeTo", "duplicate subscription")
	if !IsConflict(conflict) {
		t.Errorf("expected wrapped ErrConflict to be detected")
	}
}

func TestWrapPreservesClassification(t *testing.T) {
	base := errors.New("boom")

	transient := WrapTransient(base, "Server", "Start", "listen")
	if !IsTransient(transient) {
		t.Errorf("expected transient classification")
	}

	invalid := WrapInvalid(base, "Config", "Validate", "bind address")
	if !IsInvalid(invalid) {
		t.Errorf("expected invalid classification")
	}

	fatal := WrapFatal(base, "Server", "Start", "bind")
	if !IsFatal(fatal) {
		t.Errorf("expected fatal classification")
	}

	if !errors.Is(transient, base) {
		t.Errorf("expected wrapped error chain to preserve the base error")
	}
}

func TestWrapFormat(t *testing.T) {
	err := Wrap(ErrNotFound, "Store", "FindOne", "user lookup")
	expected := "Store.FindOne: user lookup failed: entity not found"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}

	if Wrap(nil, "a", "b", "c") != nil {
		t.Errorf("expected nil wrap of nil error")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorClass
	}{
		{"nil defaults transient", nil, ErrorTransient},
		{"not found is invalid", ErrNotFound, ErrorInvalid},
		{"invalid config is fatal", ErrInvalidConfig, ErrorFatal},
		{"unknown defaults transient", errors.New("mystery"), ErrorTransient},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.err); got != test.expected {
				t.Errorf("expected %v, got %v", test.expected, got)
			}
		})
	}
}
