package ports

import (
	"context"

	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
)

// RepositoryClient define las operaciones sobre un repositorio identificado como "owner/name".
type RepositoryClient interface {
	CreateIssue(ctx context.Context, repo, title, body string) (*models.Issue, error)
	// ListIssues retorna una sola página de issues abiertos.
	ListIssues(ctx context.Context, repo string) ([]models.Issue, error)
	// DeleteIssue cierra el issue; el backend no permite borrarlos.
	DeleteIssue(ctx context.Context, repo string, number int) (*models.Issue, error)
	// DeleteAllIssues cierra todos los issues abiertos de forma secuencial.
	DeleteAllIssues(ctx context.Context, repo string) ([]models.CloseResult, error)
	GetRepoInfo(ctx context.Context, repo string) (*models.RepoInfo, error)
	UpdateReadme(ctx context.Context, repo, content, message string) (*models.CommitResult, error)
}

// RepositoryClientFactory crea clientes atados a un token.
type RepositoryClientFactory interface {
	// ForToken acepta un token vacío para acceso anónimo.
	ForToken(token string) RepositoryClient
}

// TokenVerifier comprueba un token con una llamada autenticada al backend.
type TokenVerifier interface {
	// VerifyToken retorna el login del dueño del token.
	VerifyToken(ctx context.Context, token string) (string, error)
}
