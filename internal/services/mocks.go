package services

import (
	"context"

	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
	"github.com/stretchr/testify/mock"
)

type (
	MockIntentClassifier struct {
		mock.Mock
	}

	MockRepositoryClient struct {
		mock.Mock
	}

	MockClientFactory struct {
		mock.Mock
	}

	MockAuditStore struct {
		mock.Mock
	}
)

func (m *MockIntentClassifier) Classify(ctx context.Context, utterance, apiKey string) (models.Classification, error) {
	args := m.Called(ctx, utterance, apiKey)
	return args.Get(0).(models.Classification), args.Error(1)
}

func (m *MockIntentClassifier) ProviderName() string {
	return "Gemini"
}

func (m *MockClientFactory) ForToken(token string) ports.RepositoryClient {
	args := m.Called(token)
	return args.Get(0).(ports.RepositoryClient)
}

func (m *MockRepositoryClient) CreateIssue(ctx context.Context, repo, title, body string) (*models.Issue, error) {
	args := m.Called(ctx, repo, title, body)
	return issueArg(args), args.Error(1)
}

func (m *MockRepositoryClient) ListIssues(ctx context.Context, repo string) ([]models.Issue, error) {
	args := m.Called(ctx, repo)
	if v := args.Get(0); v != nil {
		return v.([]models.Issue), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepositoryClient) DeleteIssue(ctx context.Context, repo string, number int) (*models.Issue, error) {
	args := m.Called(ctx, repo, number)
	return issueArg(args), args.Error(1)
}

func (m *MockRepositoryClient) DeleteAllIssues(ctx context.Context, repo string) ([]models.CloseResult, error) {
	args := m.Called(ctx, repo)
	if v := args.Get(0); v != nil {
		return v.([]models.CloseResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepositoryClient) GetRepoInfo(ctx context.Context, repo string) (*models.RepoInfo, error) {
	args := m.Called(ctx, repo)
	if v := args.Get(0); v != nil {
		return v.(*models.RepoInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepositoryClient) UpdateReadme(ctx context.Context, repo, content, message string) (*models.CommitResult, error) {
	args := m.Called(ctx, repo, content, message)
	if v := args.Get(0); v != nil {
		return v.(*models.CommitResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuditStore) Record(ctx context.Context, entry models.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditStore) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if v := args.Get(0); v != nil {
		return v.([]models.AuditEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuditStore) Close() error {
	return m.Called().Error(0)
}

func issueArg(args mock.Arguments) *models.Issue {
	if v := args.Get(0); v != nil {
		return v.(*models.Issue)
	}
	return nil
}
