package github

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
	apperrors "github.com/Swarup012/Github-Manager-Backend/internal/errors"
	"github.com/Swarup012/Github-Manager-Backend/internal/infrastructure/httpclient"
	"github.com/google/go-github/github"
	"golang.org/x/oauth2"
)

// GitHubClientFactory crea clientes atados a un token con la URL base y el
// timeout configurados.
type GitHubClientFactory struct {
	baseURL *url.URL
	timeout time.Duration
}

var (
	_ ports.RepositoryClientFactory = (*GitHubClientFactory)(nil)
	_ ports.TokenVerifier           = (*GitHubClientFactory)(nil)
)

// NewGitHubClientFactory crea la factory. baseURL vacío usa api.github.com.
func NewGitHubClientFactory(baseURL string, timeout time.Duration) (*GitHubClientFactory, error) {
	f := &GitHubClientFactory{timeout: timeout}
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, err
		}
		f.baseURL = u
	}
	return f, nil
}

// ForToken crea un cliente para token. Sin token las llamadas van sin
// cabecera Authorization.
func (f *GitHubClientFactory) ForToken(token string) ports.RepositoryClient {
	return NewGitHubClient(f.newGitHubAPI(token))
}

// VerifyToken pide el usuario autenticado (GET /user), la llamada más barata
// que exige un token válido.
func (f *GitHubClientFactory) VerifyToken(ctx context.Context, token string) (string, error) {
	user, _, err := f.newGitHubAPI(token).Users.Get(ctx, "")
	if err != nil {
		return "", backendError(apperrors.ErrVerifyToken, "", err)
	}
	return user.GetLogin(), nil
}

// NewGitHubClient arma el cliente sobre un *github.Client ya configurado.
func NewGitHubClient(client *github.Client) *GitHubClient {
	return NewGitHubClientWithServices(client.Issues, client.Repositories)
}

func (f *GitHubClientFactory) newGitHubAPI(token string) *github.Client {
	httpClient := httpclient.New(f.timeout)
	if token != "" {
		// TokenType "token" produce la cabecera "Authorization: token <t>"
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "token"})
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = f.timeout
	}

	client := github.NewClient(httpClient)
	if f.baseURL != nil {
		u := *f.baseURL
		client.BaseURL = &u
	}
	return client
}
