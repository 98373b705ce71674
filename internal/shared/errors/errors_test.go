package errors

import (
	stderrors "errors"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		build    func(string, error) *AppError
		wantCode string
	}{
		{"validation", NewValidationError, "VALIDATION_ERROR"},
		{"internal", NewInternalError, "INTERNAL_ERROR"},
		{"not found", NewNotFoundError, "NOT_FOUND"},
		{"unauthorized", NewUnauthorizedError, "UNAUTHORIZED"},
		{"conflict", NewConflictError, "CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build("something went wrong", nil)
			if err == nil {
				t.Fatal("constructor returned nil")
			}
			if err.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", err.Code, tt.wantCode)
			}
			if err.Message != "something went wrong" {
				t.Errorf("Message = %v, want %v", err.Message, "something went wrong")
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name   string
		appErr *AppError
		want   string
	}{
		{
			name:   "without underlying error",
			appErr: &AppError{Code: "NOT_FOUND", Message: "bill not found"},
			want:   "NOT_FOUND: bill not found",
		},
		{
			name:   "with underlying error",
			appErr: &AppError{Code: "INTERNAL_ERROR", Message: "store failed", Err: stderrors.New("timeout")},
			want:   "INTERNAL_ERROR: store failed - timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.want {
				t.Errorf("Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewInternalError("store failed", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to match the wrapped cause")
	}
}
