package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Swarup012/Github-Manager-Backend/internal/cli/command/ask"
	"github.com/Swarup012/Github-Manager-Backend/internal/cli/command/completion"
	configcmd "github.com/Swarup012/Github-Manager-Backend/internal/cli/command/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/cli/command/history"
	"github.com/Swarup012/Github-Manager-Backend/internal/cli/command/serve"
	"github.com/Swarup012/Github-Manager-Backend/internal/cli/registry"
	cfg "github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/Swarup012/Github-Manager-Backend/internal/infrastructure/ai/claude"
	"github.com/Swarup012/Github-Manager-Backend/internal/infrastructure/ai/gemini"
	"github.com/Swarup012/Github-Manager-Backend/internal/infrastructure/di"
	"github.com/Swarup012/Github-Manager-Backend/internal/logger"
	"github.com/Swarup012/Github-Manager-Backend/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, container, err := initializeApp()
	if err != nil {
		log.Fatalf("Error iniciando la cli: %v", err)
	}

	runErr := app.Run(context.Background(), os.Args)
	if err := container.Close(); err != nil {
		log.Printf("Warning: no se pudo cerrar el registro de auditoría: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}

func initializeApp() (*cli.Command, *di.Container, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("no se pudo obtener el directorio del usuario: %w", err)
	}

	fileCfg, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, nil, err
	}
	runtimeCfg := fileCfg.WithEnv(os.LookupEnv)

	translations, err := i18n.NewTranslations(runtimeCfg.Language, "")
	if err != nil {
		return nil, nil, fmt.Errorf("error al cargar las traducciones: %w", err)
	}

	container := di.NewContainer(runtimeCfg, translations)

	if err := container.RegisterAIProvider(string(cfg.AIGemini), gemini.NewGeminiProviderFactory()); err != nil {
		log.Printf("Warning: no se pudo registrar el proveedor Gemini: %v", err)
	}

	if err := container.RegisterAIProvider(string(cfg.AIAnthropic), claude.NewClaudeProviderFactory()); err != nil {
		log.Printf("Warning: no se pudo registrar el proveedor Anthropic: %v", err)
	}

	registerCommand := registry.NewRegistry(runtimeCfg, translations)

	if err := registerCommand.Register("serve", serve.NewServeCommandFactory(container.GetDispatcher, os.Stdout)); err != nil {
		return nil, nil, fmt.Errorf("error al registrar el comando 'serve': %w", err)
	}

	if err := registerCommand.Register("ask", ask.NewAskCommandFactory(container.GetDispatcher, os.Stdout)); err != nil {
		return nil, nil, fmt.Errorf("error al registrar el comando 'ask': %w", err)
	}

	configCommand := configcmd.NewConfigCommandFactory(fileCfg, os.Stdout).WithDoctor(configcmd.DoctorDeps{
		Generator: container.GetTextGenerator,
		Verifier:  container.GetTokenVerifier,
		OpenAudit: container.OpenAuditStore,
	})
	if err := registerCommand.Register("config", configCommand); err != nil {
		return nil, nil, fmt.Errorf("error al registrar el comando 'config': %w", err)
	}

	if err := registerCommand.Register("history", history.NewHistoryCommandFactory(container.GetAuditStore, os.Stdout)); err != nil {
		return nil, nil, fmt.Errorf("error al registrar el comando 'history': %w", err)
	}

	commands := registerCommand.CreateCommands()
	commands = append(commands, completion.NewCompletionCommand(translations, os.Stdout))

	return &cli.Command{
		Name:                  "github-manager",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.FullVersion(),
		Description:           translations.GetMessage("app_description", 0, nil),
		Commands:              commands,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("debug_flag_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   translations.GetMessage("verbose_flag_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: logger.FormatText,
				Usage: translations.GetMessage("log_format_flag_usage", 0, nil),
			},
		},
		Before: func(ctx context.Context, command *cli.Command) (context.Context, error) {
			logger.Initialize(command.Bool("debug"), command.Bool("verbose"), command.String("log-format"))
			return ctx, nil
		},
	}, container, nil
}
