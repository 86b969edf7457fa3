package history

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

const defaultLimit = 20

// AuditStoreProvider retorna nil sin error cuando la auditoría está deshabilitada
type AuditStoreProvider func() (ports.AuditStore, error)

type HistoryCommandFactory struct {
	store AuditStoreProvider
	out   io.Writer
}

func NewHistoryCommandFactory(store AuditStoreProvider, out io.Writer) *HistoryCommandFactory {
	return &HistoryCommandFactory{
		store: store,
		out:   out,
	}
}

func (f *HistoryCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: t.GetMessage("history_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Value:   defaultLimit,
				Usage:   t.GetMessage("history_limit_flag_usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			store, err := f.store()
			if err != nil {
				return err
			}
			if store == nil {
				fmt.Fprintln(f.out, t.GetMessage("history_disabled", 0, nil))
				return nil
			}

			entries, err := store.Recent(ctx, int(command.Int("limit")))
			if err != nil {
				return fmt.Errorf("error al leer el historial: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(f.out, t.GetMessage("history_empty", 0, nil))
				return nil
			}

			f.printEntries(entries)
			fmt.Fprintln(f.out, t.GetMessage("history_count", len(entries), map[string]interface{}{
				"Count": len(entries),
			}))
			return nil
		},
	}
}

func (f *HistoryCommandFactory) printEntries(entries []models.AuditEntry) {
	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format(time.DateTime),
			e.Repo,
			e.Action,
			outcomeColor(e.Outcome).Sprint(e.Outcome),
			e.Detail,
		)
	}
	_ = w.Flush()
}

func outcomeColor(o models.Outcome) *color.Color {
	switch o {
	case models.OutcomeSuccess:
		return color.New(color.FgGreen)
	case models.OutcomeFailure:
		return color.New(color.FgRed)
	case models.OutcomeRejected, models.OutcomeNotFound:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}
