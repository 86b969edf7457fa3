package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
	apperrors "github.com/Swarup012/Github-Manager-Backend/internal/errors"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/Swarup012/Github-Manager-Backend/internal/logger"
)

var _ ports.Dispatcher = (*DispatcherService)(nil)

// DispatcherService turns one utterance into at most one repository
// operation and always answers with a user-facing message.
type DispatcherService struct {
	classifier ports.IntentClassifier
	clients    ports.RepositoryClientFactory
	trans      *i18n.Translations
	audit      ports.AuditStore
	defaults   models.Credentials
}

type DispatcherOption func(*DispatcherService)

// WithAuditStore records every outcome in store.
func WithAuditStore(store ports.AuditStore) DispatcherOption {
	return func(s *DispatcherService) {
		s.audit = store
	}
}

// WithDefaultCredentials sets the credentials used when a request leaves
// them empty.
func WithDefaultCredentials(creds models.Credentials) DispatcherOption {
	return func(s *DispatcherService) {
		s.defaults = creds
	}
}

func NewDispatcherService(
	classifier ports.IntentClassifier,
	clients ports.RepositoryClientFactory,
	trans *i18n.Translations,
	opts ...DispatcherOption,
) *DispatcherService {
	s := &DispatcherService{
		classifier: classifier,
		clients:    clients,
		trans:      trans,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// outcome is what a dispatch step produced. detail goes to the audit log
// only and never contains credentials or the user's text.
type outcome struct {
	response string
	action   models.ActionKind
	kind     models.Outcome
	detail   string
}

func (s *DispatcherService) Dispatch(ctx context.Context, req models.DispatchRequest) models.DispatchResult {
	start := time.Now()
	repo := strings.TrimSpace(req.Repo)
	ctx = logger.With(ctx, "repo", repo)

	out := s.dispatch(ctx, req, repo)

	logger.Info(ctx, "request dispatched",
		"action", string(out.action),
		"outcome", string(out.kind),
		"duration", time.Since(start),
	)
	s.record(ctx, repo, out)

	return models.DispatchResult{
		Response: out.response,
		Action:   out.action,
		Outcome:  out.kind,
	}
}

func (s *DispatcherService) dispatch(ctx context.Context, req models.DispatchRequest, repo string) outcome {
	if strings.TrimSpace(req.Input) == "" {
		return s.reject("", "input_required", nil, "empty input")
	}

	creds := req.Credentials.Merge(s.defaults)
	provider := s.classifier.ProviderName()

	classification, err := s.classifier.Classify(ctx, req.Input, creds.AIKey)
	if err != nil {
		if apperrors.TypeOf(err) == apperrors.TypeConfiguration {
			return s.reject("", "ai_key_missing", map[string]interface{}{"Provider": provider}, "ai key missing")
		}
		return outcome{
			response: s.msg("ai_backend_error", map[string]interface{}{"Provider": provider, "Error": apperrors.UserMessage(err)}),
			kind:     models.OutcomeFailure,
			detail:   apperrors.UserMessage(err),
		}
	}

	if !classification.IsStructured() {
		return outcome{
			response: s.msg("conversational_reply", map[string]interface{}{"Provider": provider, "Text": classification.Text}),
			kind:     models.OutcomeConversational,
		}
	}

	kind := classification.Request.Action
	if !kind.Dispatchable() {
		return outcome{
			response: s.msg("help_unrecognized", nil),
			action:   kind,
			kind:     models.OutcomeHelp,
		}
	}

	if repo == "" {
		return s.reject(kind, "repo_required", nil, "repo missing")
	}

	action, err := classification.Request.Decode()
	if err != nil {
		return s.rejectInvalid(kind, err)
	}

	client := s.clients.ForToken(creds.GitHubToken)
	ctx = logger.With(ctx, "action", string(kind))

	switch a := action.(type) {
	case models.CreateIssue:
		return s.createIssue(ctx, client, repo, a)
	case models.UpdateReadme:
		return s.updateReadme(ctx, client, repo, a)
	case models.ListIssues:
		return s.listIssues(ctx, client, repo)
	case models.GetIssueByTitle:
		return s.getIssueByTitle(ctx, client, repo, a)
	case models.DeleteIssue:
		return s.deleteIssue(ctx, client, repo, a)
	case models.DeleteAllIssues:
		return s.deleteAllIssues(ctx, client, repo)
	case models.ExplainRepo:
		return s.explainRepo(ctx, client, repo)
	default:
		return outcome{response: s.msg("help_unrecognized", nil), action: kind, kind: models.OutcomeHelp}
	}
}

func (s *DispatcherService) createIssue(ctx context.Context, client ports.RepositoryClient, repo string, a models.CreateIssue) outcome {
	issue, err := client.CreateIssue(ctx, repo, a.Title, a.Body)
	if err != nil {
		return s.fail(ctx, a.Kind(), "issue_create_failed", err)
	}
	return s.succeed(a.Kind(), "issue_created", map[string]interface{}{
		"Title": a.Title,
		"URL":   issue.URL,
	}, issueRef(issue.Number))
}

func (s *DispatcherService) updateReadme(ctx context.Context, client ports.RepositoryClient, repo string, a models.UpdateReadme) outcome {
	message := a.Message
	if message == "" {
		message = s.msg("readme_default_commit_message", nil)
	}

	commit, err := client.UpdateReadme(ctx, repo, a.Content, message)
	if err != nil {
		return s.fail(ctx, a.Kind(), "readme_update_failed", err)
	}
	return s.succeed(a.Kind(), "readme_updated", map[string]interface{}{"Message": commit.Message}, commit.SHA)
}

func (s *DispatcherService) listIssues(ctx context.Context, client ports.RepositoryClient, repo string) outcome {
	issues, err := client.ListIssues(ctx, repo)
	if err != nil {
		return s.fail(ctx, models.ActionListIssues, "github_error", err)
	}
	if len(issues) == 0 {
		return s.succeed(models.ActionListIssues, "issues_none_open", nil, "0 issues")
	}

	lines := make([]string, 0, len(issues)+1)
	lines = append(lines, s.msg("issues_list_header", nil))
	for _, issue := range issues {
		lines = append(lines, "• "+issue.Title)
	}
	return outcome{
		response: strings.Join(lines, "\n"),
		action:   models.ActionListIssues,
		kind:     models.OutcomeSuccess,
		detail:   pluralIssues(len(issues)),
	}
}

// getIssueByTitle matches titles case-insensitively; the first match wins.
func (s *DispatcherService) getIssueByTitle(ctx context.Context, client ports.RepositoryClient, repo string, a models.GetIssueByTitle) outcome {
	issues, err := client.ListIssues(ctx, repo)
	if err != nil {
		return s.fail(ctx, a.Kind(), "github_error", err)
	}

	for _, issue := range issues {
		if !strings.EqualFold(strings.TrimSpace(issue.Title), a.Title) {
			continue
		}
		body := issue.Body
		if strings.TrimSpace(body) == "" {
			body = s.msg("issue_no_body", nil)
		}
		return s.succeed(a.Kind(), "issue_found", map[string]interface{}{
			"Title": issue.Title,
			"Body":  body,
			"URL":   issue.URL,
		}, issueRef(issue.Number))
	}

	return outcome{
		response: s.msg("issue_not_found", map[string]interface{}{"Title": a.Title}),
		action:   a.Kind(),
		kind:     models.OutcomeNotFound,
		detail:   apperrors.ErrIssueNotFound.Message,
	}
}

func (s *DispatcherService) deleteIssue(ctx context.Context, client ports.RepositoryClient, repo string, a models.DeleteIssue) outcome {
	issue, err := client.DeleteIssue(ctx, repo, a.IssueNumber)
	if err == nil && (issue == nil || issue.State != models.IssueStateClosed) {
		err = apperrors.ErrCloseIssue.WithContext(apperrors.ContextBackendMessage, "issue was not closed")
	}
	if err != nil {
		return s.fail(ctx, a.Kind(), "issue_close_failed", err)
	}
	return s.succeed(a.Kind(), "issue_closed", map[string]interface{}{"Number": a.IssueNumber}, issueRef(a.IssueNumber))
}

func (s *DispatcherService) deleteAllIssues(ctx context.Context, client ports.RepositoryClient, repo string) outcome {
	results, err := client.DeleteAllIssues(ctx, repo)
	if err != nil {
		return s.fail(ctx, models.ActionDeleteAllIssues, "github_error", err)
	}
	if len(results) == 0 {
		return s.succeed(models.ActionDeleteAllIssues, "issues_none_to_delete", nil, "0 issues")
	}

	var closed, failed []string
	for _, r := range results {
		if r.Closed() {
			closed = append(closed, itoa(r.IssueNumber))
		} else {
			failed = append(failed, itoa(r.IssueNumber))
		}
	}

	lines := make([]string, 0, 2)
	if len(closed) > 0 {
		lines = append(lines, s.msg("issues_closed_list", map[string]interface{}{"Numbers": strings.Join(closed, ", ")}))
	}
	if len(failed) > 0 {
		lines = append(lines, s.msg("issues_failed_list", map[string]interface{}{"Numbers": strings.Join(failed, ", ")}))
	}

	kind := models.OutcomeSuccess
	if len(failed) > 0 {
		kind = models.OutcomeFailure
		logger.Warn(ctx, "some issues could not be closed", "closed", len(closed), "failed", len(failed))
	}
	return outcome{
		response: strings.Join(lines, "\n"),
		action:   models.ActionDeleteAllIssues,
		kind:     kind,
		detail:   "closed " + itoa(len(closed)) + ", failed " + itoa(len(failed)),
	}
}

func (s *DispatcherService) explainRepo(ctx context.Context, client ports.RepositoryClient, repo string) outcome {
	info, err := client.GetRepoInfo(ctx, repo)
	if err != nil {
		return s.fail(ctx, models.ActionExplainRepo, "github_error", err)
	}

	description := info.Description
	if description == "" {
		description = s.msg("repo_no_description", nil)
	}
	language := info.Language
	if language == "" {
		language = s.msg("repo_unknown_language", nil)
	}
	return s.succeed(models.ActionExplainRepo, "repo_explained", map[string]interface{}{
		"Repo":        repo,
		"URL":         info.URL,
		"Description": description,
		"Stars":       info.Stars,
		"Language":    language,
	}, info.FullName)
}

func (s *DispatcherService) succeed(kind models.ActionKind, id string, data map[string]interface{}, detail string) outcome {
	return outcome{
		response: s.msg(id, data),
		action:   kind,
		kind:     models.OutcomeSuccess,
		detail:   detail,
	}
}

// fail renders a backend failure with the backend's own text. Validation
// errors raised by the client, such as a malformed repo name, count as
// rejections.
func (s *DispatcherService) fail(ctx context.Context, kind models.ActionKind, id string, err error) outcome {
	text := apperrors.UserMessage(err)
	result := models.OutcomeFailure
	if apperrors.TypeOf(err) == apperrors.TypeValidation {
		result = models.OutcomeRejected
	}
	logger.Error(ctx, "repository operation failed", err, "action", string(kind))
	return outcome{
		response: s.msg(id, map[string]interface{}{"Error": text}),
		action:   kind,
		kind:     result,
		detail:   text,
	}
}

func (s *DispatcherService) reject(kind models.ActionKind, id string, data map[string]interface{}, detail string) outcome {
	return outcome{
		response: s.msg(id, data),
		action:   kind,
		kind:     models.OutcomeRejected,
		detail:   detail,
	}
}

func (s *DispatcherService) rejectInvalid(kind models.ActionKind, err error) outcome {
	switch {
	case errors.Is(err, apperrors.ErrTitleRequired):
		return s.reject(kind, "title_required", nil, "title missing")
	case errors.Is(err, apperrors.ErrIssueNumberRequired):
		return s.reject(kind, "issue_number_required", nil, "issue number missing")
	case errors.Is(err, apperrors.ErrContentRequired):
		return s.reject(kind, "content_required", nil, "content missing")
	default:
		return s.reject(kind, "action_rejected", map[string]interface{}{"Error": apperrors.UserMessage(err)}, apperrors.UserMessage(err))
	}
}

func (s *DispatcherService) record(ctx context.Context, repo string, out outcome) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, models.AuditEntry{
		Repo:    repo,
		Action:  out.action,
		Outcome: out.kind,
		Detail:  out.detail,
	})
	if err != nil {
		logger.Warn(ctx, "failed to record audit entry", "error", err)
	}
}

func (s *DispatcherService) msg(id string, data map[string]interface{}) string {
	return s.trans.GetMessage(id, 0, data)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func issueRef(number int) string {
	return "#" + itoa(number)
}

func pluralIssues(n int) string {
	if n == 1 {
		return "1 issue"
	}
	return itoa(n) + " issues"
}
