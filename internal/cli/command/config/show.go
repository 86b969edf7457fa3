package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/Swarup012/Github-Manager-Backend/internal/logger"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			fmt.Fprintln(c.out, t.GetMessage("current_config", 0, nil))
			fmt.Fprintf(c.out, "━━━━━━━━━━━━━━━━━━━━━━━\n")

			notSet := t.GetMessage("config_value_not_set", 0, nil)
			for _, row := range configRows(cfg) {
				value := row.value
				if row.secret {
					value = logger.MaskSecret(value)
				}
				if value == "" {
					value = notSet
				}
				fmt.Fprintf(c.out, "%-24s %s\n", row.key, value)
			}
			return nil
		},
	}
}

type configRow struct {
	key    string
	value  string
	secret bool
}

func configRows(cfg *config.Config) []configRow {
	return []configRow{
		{key: "language", value: cfg.Language},
		{key: "ai_provider", value: string(cfg.AIProvider)},
		{key: "ai_model", value: cfg.ActiveModel()},
		{key: "gemini_api_key", value: cfg.GeminiAPIKey, secret: true},
		{key: "anthropic_api_key", value: cfg.AnthropicAPIKey, secret: true},
		{key: "anthropic_base_url", value: cfg.AnthropicURL},
		{key: "github_token", value: cfg.GitHubToken, secret: true},
		{key: "github_base_url", value: cfg.GitHubBaseURL},
		{key: "listen_addr", value: cfg.ListenAddr},
		{key: "request_timeout_seconds", value: strconv.Itoa(cfg.RequestTimeoutSeconds)},
		{key: "rate_limit_per_minute", value: strconv.Itoa(cfg.RateLimitPerMinute)},
		{key: "allowed_origins", value: strings.Join(cfg.AllowedOrigins, ",")},
		{key: "audit_db_path", value: cfg.AuditDBPath},
	}
}
