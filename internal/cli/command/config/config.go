package config

import (
	"io"

	"github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/urfave/cli/v3"
)

// ConfigCommandFactory trabaja sobre la configuración persistida, nunca sobre la copia con variables de entorno
type ConfigCommandFactory struct {
	fileConfig *config.Config
	out        io.Writer
	doctor     *DoctorCommand
}

func NewConfigCommandFactory(fileConfig *config.Config, out io.Writer) *ConfigCommandFactory {
	return &ConfigCommandFactory{
		fileConfig: fileConfig,
		out:        out,
	}
}

// WithDoctor agrega el subcomando doctor
func (c *ConfigCommandFactory) WithDoctor(deps DoctorDeps) *ConfigCommandFactory {
	c.doctor = NewDoctorCommand(c.fileConfig, deps, c.out)
	return c
}

// CreateCommand recibe en cfg la configuración efectiva; solo doctor la usa
func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	commands := []*cli.Command{
		c.newShowCommand(t, c.fileConfig),
		c.newSetCommand(t, c.fileConfig),
		c.newInitCommand(t, c.fileConfig),
	}
	if c.doctor != nil {
		commands = append(commands, c.doctor.CreateCommand(t, cfg))
	}

	return &cli.Command{
		Name:     "config",
		Aliases:  []string{"c"},
		Usage:    t.GetMessage("config_command_usage", 0, nil),
		Commands: commands,
	}
}
