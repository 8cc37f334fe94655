package failure_test

import (
	"errors"
	"net/http"
	"testing"

	"todoapp/shared/constant"
	"todoapp/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}

				return
			}

			f, ok := result.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", result)
			}

			expectedF := tt.expected.(*failure.Failure)
			if f.Code != expectedF.Code || f.Message != expectedF.Message {
				t.Errorf("expected %+v, got %+v", expectedF, f)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request from string", err: failure.BadRequestFromString("title is required"), code: http.StatusBadRequest, message: "title is required"},
		{name: "invalid id", err: failure.InvalidID("invalid todo id"), code: http.StatusBadRequest, message: "invalid todo id"},
		{name: "unauthorized", err: failure.Unauthorized("invalid email or password"), code: http.StatusUnauthorized, message: "invalid email or password"},
		{name: "not found", err: failure.NotFound("todo not found"), code: http.StatusNotFound, message: "todo not found"},
		{name: "conflict", err: failure.Conflict("email already registered"), code: http.StatusConflict, message: "email already registered"},
		{name: "internal", err: failure.Internal("failed to fetch todos", errors.New("socket closed")), code: http.StatusInternalServerError, message: "failed to fetch todos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, f.Code)
			}

			if f.Message != tt.message {
				t.Errorf("expected message to be %q, got %q", tt.message, f.Message)
			}
		})
	}
}

func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("server selection timeout")
	err := failure.Internal("failed to fetch todos", cause)

	if !errors.Is(err, cause) {
		t.Error("expected internal failure to wrap its cause")
	}

	if err.Error() != "failed to fetch todos" {
		t.Errorf("expected cause to stay out of the message, got %q", err.Error())
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    errors.Join(errors.New("context"), failure.NotFound("todo not found")),
			expected: http.StatusNotFound,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestGetMessage(t *testing.T) {
	if msg := failure.GetMessage(failure.Conflict("email already registered")); msg != "email already registered" {
		t.Errorf("expected failure message, got %q", msg)
	}

	if msg := failure.GetMessage(errors.New("connection refused 10.0.0.3:27017")); msg != constant.ResponseErrorInternal {
		t.Errorf("expected generic message for raw errors, got %q", msg)
	}
}
