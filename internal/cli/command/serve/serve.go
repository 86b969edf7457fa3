package serve

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/Swarup012/Github-Manager-Backend/internal/server"
	"github.com/urfave/cli/v3"
)

// DispatcherProvider resuelve el dispatcher recién cuando el comando se ejecuta
type DispatcherProvider func() (ports.Dispatcher, error)

type ServeCommandFactory struct {
	dispatcher DispatcherProvider
	out        io.Writer
}

func NewServeCommandFactory(dispatcher DispatcherProvider, out io.Writer) *ServeCommandFactory {
	return &ServeCommandFactory{
		dispatcher: dispatcher,
		out:        out,
	}
}

func (f *ServeCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: t.GetMessage("serve_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   t.GetMessage("serve_addr_flag_usage", 0, nil),
			},
		},
		Action: f.createAction(cfg, t),
	}
}

func (f *ServeCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		dispatcher, err := f.dispatcher()
		if err != nil {
			return err
		}

		addr := command.String("addr")
		if addr == "" {
			addr = cfg.ListenAddr
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("no se pudo escuchar en %s: %w", addr, err)
		}

		fmt.Fprintln(f.out, t.GetMessage("server_listening", 0, map[string]interface{}{
			"Addr": ln.Addr().String(),
		}))

		return server.New(cfg, dispatcher, t).Serve(ctx, ln)
	}
}
