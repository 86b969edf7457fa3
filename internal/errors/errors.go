package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeAI            ErrorType = "AI"
	TypeValidation    ErrorType = "VALIDATION"
	TypeVCS           ErrorType = "VCS"
	TypeNotFound      ErrorType = "NOT_FOUND"
	TypeInternal      ErrorType = "INTERNAL"
)

// Context keys shared by the backend client and the dispatcher.
const (
	ContextBackendMessage = "backend_message"
	ContextStatusCode     = "status_code"
	ContextRepo           = "repo"
	ContextField          = "field"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if backendMsg, ok := e.Context[ContextBackendMessage].(string); ok && backendMsg != "" {
			msg += fmt.Sprintf(" - %s", backendMsg)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same type and message, so
// sentinels still match after WithError or WithContext.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// TypeOf returns the ErrorType of the first AppError in the chain, or
// TypeInternal when err carries none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return TypeInternal
}

// Suggestion returns the remediation hint of the first AppError in the chain.
func Suggestion(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Suggestion
	}
	return ""
}

// UserMessage returns the text a user should see for err: the backend's own
// message when one was captured, otherwise the most specific error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return err.Error()
	}
	if msg, ok := appErr.Context[ContextBackendMessage].(string); ok && msg != "" {
		return msg
	}
	if appErr.Err != nil {
		return appErr.Err.Error()
	}
	return appErr.Message
}

// Configuration errors
var (
	ErrAIKeyMissing = NewAppError(TypeConfiguration, "AI API key is missing", nil).
			WithSuggestion("Pass gemini_key in the request or run: github-manager config set gemini_api_key <key>")

	ErrProviderNotFound = NewAppError(TypeConfiguration, "AI provider not registered", nil).
				WithSuggestion("Supported providers: gemini, anthropic")

	ErrInvalidConfig = NewAppError(TypeConfiguration, "Configuration is not valid", nil)

	ErrUnknownConfigKey = NewAppError(TypeConfiguration, "Unknown configuration key", nil).
				WithSuggestion("Run: github-manager config show")
)

// AI errors
var (
	ErrAIGeneration = NewAppError(TypeAI, "AI generation failed", nil)

	ErrEmptyAIResponse = NewAppError(TypeAI, "AI returned an empty response", nil)
)

// Validation errors
var (
	ErrEmptyInput = NewAppError(TypeValidation, "Input is empty", nil)

	ErrRepoRequired = NewAppError(TypeValidation, "Repository name is required", nil)

	ErrInvalidRepoName = NewAppError(TypeValidation, "Repository must be in owner/name form", nil)

	ErrUnknownAction = NewAppError(TypeValidation, "Action is not supported", nil)

	ErrTitleRequired = NewAppError(TypeValidation, "Issue title is required", nil)

	ErrIssueNumberRequired = NewAppError(TypeValidation, "Issue number is required", nil)

	ErrContentRequired = NewAppError(TypeValidation, "README content is required", nil)
)

// VCS errors
var (
	ErrCreateIssue = NewAppError(TypeVCS, "failed to create issue", nil)

	ErrListIssues = NewAppError(TypeVCS, "failed to list issues", nil)

	ErrCloseIssue = NewAppError(TypeVCS, "failed to close issue", nil)

	ErrGetRepo = NewAppError(TypeVCS, "failed to get repository", nil)

	ErrReadmeFetch = NewAppError(TypeVCS, "Failed to fetch README.md", nil).
			WithSuggestion("Make sure the repository has a README.md on its default branch")

	ErrUpdateReadme = NewAppError(TypeVCS, "failed to update README.md", nil)

	ErrVerifyToken = NewAppError(TypeVCS, "failed to verify GitHub token", nil).
			WithSuggestion("Check that github_token is valid and has not expired")
)

// Not found errors
var (
	ErrIssueNotFound = NewAppError(TypeNotFound, "no issue matches the title", nil)
)
