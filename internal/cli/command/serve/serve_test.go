package serve

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type stubDispatcher struct{}

func (stubDispatcher) Dispatch(context.Context, models.DispatchRequest) models.DispatchResult {
	return models.DispatchResult{Response: "ok"}
}

func newApp(t *testing.T, provider DispatcherProvider, out *bytes.Buffer) *cli.Command {
	t.Helper()
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	cmd := NewServeCommandFactory(provider, out).CreateCommand(trans, config.Default())
	return &cli.Command{Name: "github-manager", Commands: []*cli.Command{cmd}}
}

func TestServeCommand(t *testing.T) {
	t.Run("should stop cleanly when the context ends", func(t *testing.T) {
		// arrange
		var out bytes.Buffer
		app := newApp(t, func() (ports.Dispatcher, error) { return stubDispatcher{}, nil }, &out)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// act
		err := app.Run(ctx, []string{"github-manager", "serve", "--addr", "127.0.0.1:0"})

		// assert
		assert.NoError(t, err)
		assert.Contains(t, out.String(), "Listening on 127.0.0.1:")
	})

	t.Run("should fail when the dispatcher cannot be built", func(t *testing.T) {
		var out bytes.Buffer
		app := newApp(t, func() (ports.Dispatcher, error) { return nil, errors.New("no provider") }, &out)

		err := app.Run(context.Background(), []string{"github-manager", "serve"})

		assert.EqualError(t, err, "no provider")
		assert.Empty(t, out.String())
	})

	t.Run("should fail on an invalid address", func(t *testing.T) {
		var out bytes.Buffer
		app := newApp(t, func() (ports.Dispatcher, error) { return stubDispatcher{}, nil }, &out)

		err := app.Run(context.Background(), []string{"github-manager", "serve", "--addr", "not-an-addr"})

		assert.Error(t, err)
	})
}
