package github

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
	apperrors "github.com/Swarup012/Github-Manager-Backend/internal/errors"
	"github.com/Swarup012/Github-Manager-Backend/internal/logger"
	"github.com/google/go-github/github"
)

const readmePath = "README.md"

var _ ports.RepositoryClient = (*GitHubClient)(nil)

type IssuesService interface {
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
	ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
	Edit(ctx context.Context, owner, repo string, number int, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

type RepositoriesService interface {
	Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
	UpdateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error)
}

type GitHubClient struct {
	issuesService IssuesService
	repoService   RepositoriesService
}

func NewGitHubClientWithServices(issuesService IssuesService, repoService RepositoriesService) *GitHubClient {
	return &GitHubClient{
		issuesService: issuesService,
		repoService:   repoService,
	}
}

func (ghc *GitHubClient) CreateIssue(ctx context.Context, repo, title, body string) (*models.Issue, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	issue, _, err := ghc.issuesService.Create(ctx, owner, name, &github.IssueRequest{
		Title: github.String(title),
		Body:  github.String(body),
	})
	if err != nil {
		return nil, backendError(apperrors.ErrCreateIssue, repo, err)
	}

	logger.Debug(ctx, "issue created", "repo", repo, "number", issue.GetNumber())
	return toIssue(issue), nil
}

// ListIssues pide solo la primera página; el backend decide el tamaño.
func (ghc *GitHubClient) ListIssues(ctx context.Context, repo string) ([]models.Issue, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	issues, _, err := ghc.issuesService.ListByRepo(ctx, owner, name, &github.IssueListByRepoOptions{
		State: "open",
	})
	if err != nil {
		return nil, backendError(apperrors.ErrListIssues, repo, err)
	}

	result := make([]models.Issue, 0, len(issues))
	for _, issue := range issues {
		result = append(result, *toIssue(issue))
	}
	return result, nil
}

// DeleteIssue cierra el issue. Solo 200 y 201 cuentan como éxito.
func (ghc *GitHubClient) DeleteIssue(ctx context.Context, repo string, number int) (*models.Issue, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	issue, resp, err := ghc.issuesService.Edit(ctx, owner, name, number, &github.IssueRequest{
		State: github.String(models.IssueStateClosed),
	})
	if err != nil {
		return nil, backendError(apperrors.ErrCloseIssue, repo, err).WithContext("number", number)
	}
	if resp != nil && resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apperrors.ErrCloseIssue.
			WithContext(apperrors.ContextRepo, repo).
			WithContext(apperrors.ContextStatusCode, resp.StatusCode).
			WithContext(apperrors.ContextBackendMessage, http.StatusText(resp.StatusCode))
	}
	return toIssue(issue), nil
}

// DeleteAllIssues lista y cierra cada issue en orden; una falla individual
// queda registrada y no corta el resto.
func (ghc *GitHubClient) DeleteAllIssues(ctx context.Context, repo string) ([]models.CloseResult, error) {
	issues, err := ghc.ListIssues(ctx, repo)
	if err != nil {
		return nil, err
	}

	results := make([]models.CloseResult, 0, len(issues))
	for _, issue := range issues {
		closed, err := ghc.DeleteIssue(ctx, repo, issue.Number)
		if err != nil {
			logger.Warn(ctx, "failed to close issue", "repo", repo, "number", issue.Number, "error", err)
		}
		results = append(results, models.CloseResult{
			IssueNumber: issue.Number,
			Issue:       closed,
			Err:         err,
		})
	}
	return results, nil
}

func (ghc *GitHubClient) GetRepoInfo(ctx context.Context, repo string) (*models.RepoInfo, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	r, _, err := ghc.repoService.Get(ctx, owner, name)
	if err != nil {
		return nil, backendError(apperrors.ErrGetRepo, repo, err)
	}

	return &models.RepoInfo{
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Description: r.GetDescription(),
		Stars:       r.GetStargazersCount(),
		Language:    r.GetLanguage(),
		URL:         r.GetHTMLURL(),
	}, nil
}

// UpdateReadme reemplaza README.md en dos pasos: obtiene el sha actual y
// sube el contenido nuevo. Si el primer paso falla no se hace el PUT.
func (ghc *GitHubClient) UpdateReadme(ctx context.Context, repo, content, message string) (*models.CommitResult, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	file, _, _, err := ghc.repoService.GetContents(ctx, owner, name, readmePath, nil)
	if err != nil {
		return nil, backendError(apperrors.ErrReadmeFetch, repo, err)
	}
	if file == nil || file.GetSHA() == "" {
		return nil, apperrors.ErrReadmeFetch.
			WithContext(apperrors.ContextRepo, repo).
			WithContext(apperrors.ContextBackendMessage, readmePath+" is not a file")
	}

	resp, _, err := ghc.repoService.UpdateFile(ctx, owner, name, readmePath, &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: []byte(content),
		SHA:     github.String(file.GetSHA()),
	})
	if err != nil {
		return nil, backendError(apperrors.ErrUpdateReadme, repo, err)
	}

	result := &models.CommitResult{Message: message, Path: readmePath}
	if resp != nil {
		result.SHA = resp.Commit.GetSHA()
		if msg := resp.Commit.GetMessage(); msg != "" {
			result.Message = msg
		}
	}
	return result, nil
}

func splitRepo(repo string) (string, string, error) {
	parts := strings.Split(strings.TrimSpace(repo), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", apperrors.ErrInvalidRepoName.WithContext(apperrors.ContextRepo, repo)
	}
	return parts[0], parts[1], nil
}

// backendError envuelve err y guarda el mensaje propio de GitHub cuando existe.
func backendError(sentinel *apperrors.AppError, repo string, err error) *apperrors.AppError {
	appErr := sentinel.WithError(err).WithContext(apperrors.ContextRepo, repo)

	var (
		ghErr    *github.ErrorResponse
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
		message  string
		response *http.Response
	)
	switch {
	case errors.As(err, &ghErr):
		message, response = ghErr.Message, ghErr.Response
	case errors.As(err, &rateErr):
		message, response = rateErr.Message, rateErr.Response
	case errors.As(err, &abuseErr):
		message, response = abuseErr.Message, abuseErr.Response
	}

	if message != "" {
		appErr = appErr.WithContext(apperrors.ContextBackendMessage, message)
	}
	if response != nil {
		appErr = appErr.WithContext(apperrors.ContextStatusCode, response.StatusCode)
	}
	return appErr
}

func toIssue(issue *github.Issue) *models.Issue {
	if issue == nil {
		return &models.Issue{}
	}
	return &models.Issue{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		State:  issue.GetState(),
		URL:    issue.GetHTMLURL(),
	}
}
