package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/Swarup012/Github-Manager-Backend/internal/errors"
)

// ActionKind is the closed set of repository actions the classifier may pick.
type ActionKind string

const (
	ActionCreateIssue     ActionKind = "create_issue"
	ActionUpdateReadme    ActionKind = "update_readme"
	ActionListIssues      ActionKind = "list_issues"
	ActionGetIssueByTitle ActionKind = "get_issue_by_title"
	ActionDeleteIssue     ActionKind = "delete_issue"
	ActionDeleteAllIssues ActionKind = "delete_all_issues"
	ActionExplainRepo     ActionKind = "explain_repo"
	ActionNone            ActionKind = "none"
)

// ActionSpec describes an action for the classifier prompt.
type ActionSpec struct {
	Kind     ActionKind
	Summary  string
	Required []string
	Optional []string
}

var actionSpecs = []ActionSpec{
	{Kind: ActionCreateIssue, Summary: "Create a new GitHub issue", Required: []string{"title"}, Optional: []string{"body"}},
	{Kind: ActionUpdateReadme, Summary: "Replace the README file", Required: []string{"content"}, Optional: []string{"message"}},
	{Kind: ActionListIssues, Summary: "List all open issues"},
	{Kind: ActionGetIssueByTitle, Summary: "Retrieve the issue matching a specific title", Required: []string{"title"}},
	{Kind: ActionDeleteIssue, Summary: "Close a specific issue by number", Required: []string{"issue_number"}},
	{Kind: ActionDeleteAllIssues, Summary: "Close all open issues"},
	{Kind: ActionExplainRepo, Summary: "Describe what the repository is about"},
	{Kind: ActionNone, Summary: "Only when the user explicitly asks for an unsupported repository task"},
}

// ActionSpecs returns the specs in prompt order.
func ActionSpecs() []ActionSpec {
	out := make([]ActionSpec, len(actionSpecs))
	copy(out, actionSpecs)
	return out
}

// IsValid reports whether k belongs to the closed set, none included.
func (k ActionKind) IsValid() bool {
	for _, spec := range actionSpecs {
		if spec.Kind == k {
			return true
		}
	}
	return false
}

// Dispatchable reports whether k maps to a backend operation.
func (k ActionKind) Dispatchable() bool {
	return k != ActionNone && k.IsValid()
}

// ActionRequest is the raw {action, data} object produced by the classifier.
type ActionRequest struct {
	Action ActionKind     `json:"action"`
	Data   map[string]any `json:"data"`
}

// Action is a decoded ActionRequest; each implementation carries exactly the
// fields its operation needs.
type Action interface {
	Kind() ActionKind
}

type CreateIssue struct {
	Title string
	Body  string
}

type UpdateReadme struct {
	Content string
	// Message is empty when the classifier did not supply one.
	Message string
}

type ListIssues struct{}

type GetIssueByTitle struct {
	Title string
}

type DeleteIssue struct {
	IssueNumber int
}

type DeleteAllIssues struct{}

type ExplainRepo struct{}

func (CreateIssue) Kind() ActionKind     { return ActionCreateIssue }
func (UpdateReadme) Kind() ActionKind    { return ActionUpdateReadme }
func (ListIssues) Kind() ActionKind      { return ActionListIssues }
func (GetIssueByTitle) Kind() ActionKind { return ActionGetIssueByTitle }
func (DeleteIssue) Kind() ActionKind     { return ActionDeleteIssue }
func (DeleteAllIssues) Kind() ActionKind { return ActionDeleteAllIssues }
func (ExplainRepo) Kind() ActionKind     { return ActionExplainRepo }

// Decode validates the request payload and returns the matching Action.
// Missing required fields yield validation errors; none and unknown kinds
// yield ErrUnknownAction.
func (r ActionRequest) Decode() (Action, error) {
	switch r.Action {
	case ActionCreateIssue:
		title := r.stringField("title")
		if title == "" {
			return nil, apperrors.ErrTitleRequired.WithContext(apperrors.ContextField, "title")
		}
		return CreateIssue{Title: title, Body: r.stringField("body")}, nil
	case ActionUpdateReadme:
		content := r.rawStringField("content")
		if strings.TrimSpace(content) == "" {
			return nil, apperrors.ErrContentRequired.WithContext(apperrors.ContextField, "content")
		}
		return UpdateReadme{Content: content, Message: r.stringField("message")}, nil
	case ActionListIssues:
		return ListIssues{}, nil
	case ActionGetIssueByTitle:
		title := r.stringField("title")
		if title == "" {
			return nil, apperrors.ErrTitleRequired.WithContext(apperrors.ContextField, "title")
		}
		return GetIssueByTitle{Title: title}, nil
	case ActionDeleteIssue:
		number, err := r.issueNumber()
		if err != nil {
			return nil, err
		}
		return DeleteIssue{IssueNumber: number}, nil
	case ActionDeleteAllIssues:
		return DeleteAllIssues{}, nil
	case ActionExplainRepo:
		return ExplainRepo{}, nil
	default:
		return nil, apperrors.ErrUnknownAction.WithContext("action", string(r.Action))
	}
}

func (r ActionRequest) rawStringField(key string) string {
	v, ok := r.Data[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (r ActionRequest) stringField(key string) string {
	return strings.TrimSpace(r.rawStringField(key))
}

func (r ActionRequest) issueNumber() (int, error) {
	missing := apperrors.ErrIssueNumberRequired.WithContext(apperrors.ContextField, "issue_number")

	var n float64
	switch v := r.Data["issue_number"].(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, missing.WithError(err)
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(v), "#"), 64)
		if err != nil {
			return 0, missing.WithError(err)
		}
		n = f
	default:
		return 0, missing
	}

	if n < 1 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, missing.WithContext("value", n)
	}
	return int(n), nil
}
