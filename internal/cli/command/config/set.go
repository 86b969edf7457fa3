package config

import (
	"context"
	"fmt"

	"github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     t.GetMessage("config_set_usage", 0, nil),
		ArgsUsage: "<key> <value>",
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.Args().Len() != 2 {
				return fmt.Errorf("%s", t.GetMessage("config_set_args_required", 0, nil))
			}
			key := command.Args().Get(0)

			// cfg solo cambia si el valor es válido y quedó guardado
			updated := *cfg
			if err := updated.Set(key, command.Args().Get(1)); err != nil {
				return err
			}
			if err := config.SaveConfig(&updated); err != nil {
				return err
			}
			*cfg = updated

			fmt.Fprintln(c.out, t.GetMessage("config_value_set", 0, map[string]interface{}{"Key": key}))
			return nil
		},
	}
}
