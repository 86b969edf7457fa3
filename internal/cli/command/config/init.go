package config

import (
	"context"
	"fmt"

	"github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newInitCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("config_init_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			fresh := config.Default()
			fresh.PathFile = cfg.PathFile
			if err := config.SaveConfig(fresh); err != nil {
				return err
			}
			*cfg = *fresh

			fmt.Fprintln(c.out, t.GetMessage("config_initialized", 0, map[string]interface{}{"Path": cfg.PathFile}))
			return nil
		},
	}
}
