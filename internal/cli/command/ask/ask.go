package ask

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Swarup012/Github-Manager-Backend/internal/cli/completion_helper"
	"github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/urfave/cli/v3"
)

type DispatcherProvider func() (ports.Dispatcher, error)

// AskCommandFactory despacha un único pedido sin levantar el servidor
type AskCommandFactory struct {
	dispatcher DispatcherProvider
	out        io.Writer
}

func NewAskCommandFactory(dispatcher DispatcherProvider, out io.Writer) *AskCommandFactory {
	return &AskCommandFactory{
		dispatcher: dispatcher,
		out:        out,
	}
}

func (f *AskCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "ask",
		Usage:         t.GetMessage("ask_usage", 0, nil),
		ArgsUsage:     "<utterance...>",
		ShellComplete: completion_helper.FlagCompleter(f.out),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   t.GetMessage("ask_repo_flag_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  "github-token",
				Usage: t.GetMessage("ask_github_token_flag_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  "ai-key",
				Usage: t.GetMessage("ask_ai_key_flag_usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			dispatcher, err := f.dispatcher()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout())
			defer cancel()

			result := dispatcher.Dispatch(ctx, models.DispatchRequest{
				Input: strings.Join(command.Args().Slice(), " "),
				Repo:  command.String("repo"),
				Credentials: models.Credentials{
					GitHubToken: command.String("github-token"),
					AIKey:       command.String("ai-key"),
				},
			})

			fmt.Fprintln(f.out, result.Response)
			return nil
		},
	}
}
