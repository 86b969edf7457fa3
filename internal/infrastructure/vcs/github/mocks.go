package github

import (
	"context"

	"github.com/google/go-github/github"
	"github.com/stretchr/testify/mock"
)

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, issue)
	return issueArg(args, 0), responseArg(args, 1), args.Error(2)
}

func (m *MockIssuesService) ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	var issues []*github.Issue
	if v := args.Get(0); v != nil {
		issues = v.([]*github.Issue)
	}
	return issues, responseArg(args, 1), args.Error(2)
}

func (m *MockIssuesService) Edit(ctx context.Context, owner, repo string, number int, issue *github.IssueRequest) (*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, issue)
	return issueArg(args, 0), responseArg(args, 1), args.Error(2)
}

type MockRepoService struct {
	mock.Mock
}

func (m *MockRepoService) Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error) {
	args := m.Called(ctx, owner, repo)
	var r *github.Repository
	if v := args.Get(0); v != nil {
		r = v.(*github.Repository)
	}
	return r, responseArg(args, 1), args.Error(2)
}

func (m *MockRepoService) GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error) {
	args := m.Called(ctx, owner, repo, path, opts)
	var file *github.RepositoryContent
	if v := args.Get(0); v != nil {
		file = v.(*github.RepositoryContent)
	}
	return file, nil, responseArg(args, 1), args.Error(2)
}

func (m *MockRepoService) UpdateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error) {
	args := m.Called(ctx, owner, repo, path, opts)
	var resp *github.RepositoryContentResponse
	if v := args.Get(0); v != nil {
		resp = v.(*github.RepositoryContentResponse)
	}
	return resp, responseArg(args, 1), args.Error(2)
}

func issueArg(args mock.Arguments, i int) *github.Issue {
	if v := args.Get(i); v != nil {
		return v.(*github.Issue)
	}
	return nil
}

func responseArg(args mock.Arguments, i int) *github.Response {
	if v := args.Get(i); v != nil {
		return v.(*github.Response)
	}
	return nil
}
