package ask

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, req models.DispatchRequest) models.DispatchResult {
	args := m.Called(ctx, req)
	return args.Get(0).(models.DispatchResult)
}

func newApp(t *testing.T, provider DispatcherProvider, out *bytes.Buffer, mutate ...func(*config.Config)) *cli.Command {
	t.Helper()
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	cfg := config.Default()
	for _, fn := range mutate {
		fn(cfg)
	}
	cmd := NewAskCommandFactory(provider, out).CreateCommand(trans, cfg)
	return &cli.Command{Name: "github-manager", Commands: []*cli.Command{cmd}}
}

func TestAskCommand(t *testing.T) {
	t.Run("should dispatch the joined utterance and print the response", func(t *testing.T) {
		// arrange
		d := &MockDispatcher{}
		d.On("Dispatch", mock.Anything, models.DispatchRequest{
			Input: "create an issue called Fix login",
			Repo:  "octo/app",
			Credentials: models.Credentials{
				GitHubToken: "gh",
				AIKey:       "key",
			},
		}).Return(models.DispatchResult{Response: "✅ Issue created"}).Once()

		var out bytes.Buffer
		app := newApp(t, func() (ports.Dispatcher, error) { return d, nil }, &out)

		// act
		err := app.Run(context.Background(), []string{
			"github-manager", "ask",
			"--repo", "octo/app", "--github-token", "gh", "--ai-key", "key",
			"create", "an", "issue", "called", "Fix", "login",
		})

		// assert
		require.NoError(t, err)
		assert.Equal(t, "✅ Issue created\n", out.String())
		d.AssertExpectations(t)
	})

	t.Run("should leave credentials empty so defaults apply", func(t *testing.T) {
		d := &MockDispatcher{}
		d.On("Dispatch", mock.Anything, models.DispatchRequest{Input: "hello"}).
			Return(models.DispatchResult{Response: "hi there"}).Once()

		var out bytes.Buffer
		app := newApp(t, func() (ports.Dispatcher, error) { return d, nil }, &out)

		err := app.Run(context.Background(), []string{"github-manager", "ask", "hello"})

		require.NoError(t, err)
		assert.Equal(t, "hi there\n", out.String())
		d.AssertExpectations(t)
	})

	t.Run("should bound the dispatch with the request timeout", func(t *testing.T) {
		d := &MockDispatcher{}
		d.On("Dispatch", mock.MatchedBy(func(ctx context.Context) bool {
			deadline, ok := ctx.Deadline()
			return ok && time.Until(deadline) <= 4*time.Second
		}), mock.Anything).Return(models.DispatchResult{Response: "ok"}).Once()

		var out bytes.Buffer
		app := newApp(t, func() (ports.Dispatcher, error) { return d, nil }, &out,
			func(c *config.Config) { c.RequestTimeoutSeconds = 4 })

		err := app.Run(context.Background(), []string{"github-manager", "ask", "--repo", "o/r", "hi"})

		require.NoError(t, err)
		d.AssertExpectations(t)
	})

	t.Run("should return the provider error", func(t *testing.T) {
		var out bytes.Buffer
		app := newApp(t, func() (ports.Dispatcher, error) { return nil, errors.New("provider not found") }, &out)

		err := app.Run(context.Background(), []string{"github-manager", "ask", "hello"})

		assert.EqualError(t, err, "provider not found")
	})
}
