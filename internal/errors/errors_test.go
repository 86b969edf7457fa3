package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_WithError(t *testing.T) {
	baseErr := errors.New("original error")
	appErr := ErrCreateIssue.WithError(baseErr)

	if appErr.Err != baseErr {
		t.Errorf("Expected underlying error to be %v, got %v", baseErr, appErr.Err)
	}

	if appErr.Type != TypeVCS {
		t.Errorf("Expected type %s, got %s", TypeVCS, appErr.Type)
	}
}

func TestAppError_WithContext(t *testing.T) {
	appErr := ErrCloseIssue.WithContext(ContextRepo, "acme/app").WithContext(ContextBackendMessage, "Not Found")

	if appErr.Context[ContextRepo] != "acme/app" {
		t.Errorf("Expected repo context 'acme/app', got %v", appErr.Context[ContextRepo])
	}

	if appErr.Context[ContextBackendMessage] != "Not Found" {
		t.Errorf("Expected backend message 'Not Found', got %v", appErr.Context[ContextBackendMessage])
	}
}

func TestAppError_Error_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		contains []string
	}{
		{
			name: "Simple error without underlying error",
			err:  ErrRepoRequired,
			contains: []string{
				"VALIDATION",
				"Repository name is required",
			},
		},
		{
			name: "Error with underlying error",
			err:  ErrListIssues.WithError(errors.New("connection reset")),
			contains: []string{
				"VCS",
				"failed to list issues",
				"connection reset",
			},
		},
		{
			name: "Error with backend message",
			err: ErrUpdateReadme.WithError(errors.New("409")).
				WithContext(ContextBackendMessage, "README.md does not match sha"),
			contains: []string{
				"VCS",
				"failed to update README.md",
				"README.md does not match sha",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errMsg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(errMsg, substr) {
					t.Errorf("Expected error message to contain %q, got: %s", substr, errMsg)
				}
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	baseErr := errors.New("base error")
	appErr := ErrGetRepo.WithError(baseErr)

	unwrapped := appErr.Unwrap()
	if unwrapped != baseErr {
		t.Errorf("Expected unwrapped error to be %v, got %v", baseErr, unwrapped)
	}

	if !errors.Is(appErr, baseErr) {
		t.Error("errors.Is should work with AppError")
	}
}

func TestAppError_Is(t *testing.T) {
	derived := ErrReadmeFetch.WithError(errors.New("404")).WithContext(ContextStatusCode, 404)

	if !errors.Is(derived, ErrReadmeFetch) {
		t.Error("derived error should match its sentinel")
	}
	if errors.Is(derived, ErrUpdateReadme) {
		t.Error("derived error should not match a different sentinel")
	}
}

func TestAppError_ChainedContext(t *testing.T) {
	appErr := ErrCloseIssue.
		WithError(errors.New("forbidden")).
		WithContext("issue_number", 12).
		WithContext(ContextRepo, "acme/app")

	if appErr.Context["issue_number"] != 12 {
		t.Errorf("Expected issue_number context, got %v", appErr.Context["issue_number"])
	}

	if ErrCloseIssue.Context != nil {
		t.Error("Original error should not have context")
	}
}

func TestTypeOf(t *testing.T) {
	if got := TypeOf(ErrTitleRequired.WithContext(ContextField, "title")); got != TypeValidation {
		t.Errorf("Expected %s, got %s", TypeValidation, got)
	}
	if got := TypeOf(errors.New("plain")); got != TypeInternal {
		t.Errorf("Expected %s, got %s", TypeInternal, got)
	}
}

func TestSuggestion(t *testing.T) {
	wrapped := fmt.Errorf("verify: %w", ErrVerifyToken.WithError(errors.New("401")))
	if got := Suggestion(wrapped); got != ErrVerifyToken.Suggestion {
		t.Errorf("Expected %q, got %q", ErrVerifyToken.Suggestion, got)
	}
	if got := Suggestion(errors.New("plain")); got != "" {
		t.Errorf("Expected no suggestion, got %q", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: errors.New("boom"), want: "boom"},
		{
			name: "backend message wins",
			err:  ErrCreateIssue.WithError(errors.New("422")).WithContext(ContextBackendMessage, "Validation Failed"),
			want: "Validation Failed",
		},
		{name: "underlying error", err: ErrGetRepo.WithError(errors.New("timeout")), want: "timeout"},
		{name: "sentinel only", err: ErrInvalidRepoName, want: "Repository must be in owner/name form"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
