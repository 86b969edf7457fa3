package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Swarup012/Github-Manager-Backend/internal/config"
	"github.com/Swarup012/Github-Manager-Backend/internal/domain/ports"
	apperrors "github.com/Swarup012/Github-Manager-Backend/internal/errors"
	"github.com/Swarup012/Github-Manager-Backend/internal/i18n"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

// tiempo máximo de cada llamada remota del diagnóstico
const checkTimeout = 5 * time.Second

const (
	pingSystemPrompt = "Reply with the single word OK."
	pingUtterance    = "ping"
)

// DoctorDeps agrupa los constructores que usa el diagnóstico; se invocan recién al correr cada chequeo
type DoctorDeps struct {
	Generator func() (ports.TextGenerator, error)
	Verifier  func() (ports.TokenVerifier, error)
	OpenAudit func(path string) (ports.AuditStore, error)
}

type DoctorCommand struct {
	fileConfig *config.Config
	deps       DoctorDeps
	out        io.Writer
}

func NewDoctorCommand(fileConfig *config.Config, deps DoctorDeps, out io.Writer) *DoctorCommand {
	return &DoctorCommand{
		fileConfig: fileConfig,
		deps:       deps,
		out:        out,
	}
}

// CreateCommand revisa cfg, la configuración efectiva con variables de entorno
func (d *DoctorCommand) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	if cfg == nil {
		cfg = d.fileConfig
	}
	return &cli.Command{
		Name:    "doctor",
		Aliases: []string{"dr"},
		Usage:   t.GetMessage("doctor_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			return d.runHealthCheck(ctx, t, cfg)
		},
	}
}

type healthCheck struct {
	name string
	fn   func(context.Context, *i18n.Translations, *config.Config) checkResult
}

type checkStatus int

const (
	checkStatusOK checkStatus = iota
	checkStatusWarning
	checkStatusError
)

type checkResult struct {
	status     checkStatus
	message    string
	suggestion string
}

func (d *DoctorCommand) runHealthCheck(ctx context.Context, t *i18n.Translations, cfg *config.Config) error {
	fmt.Fprintln(d.out, t.GetMessage("doctor_running_checks", 0, nil))
	fmt.Fprintf(d.out, "━━━━━━━━━━━━━━━━━━━━━━━\n")

	checks := []healthCheck{
		{name: "doctor_check_config_file", fn: d.checkConfigFile},
		{name: "doctor_check_ai_key", fn: d.checkAIKey},
		{name: "doctor_check_github_token", fn: d.checkGitHubToken},
		{name: "doctor_check_audit_db", fn: d.checkAuditDB},
	}

	var warnings, failures int
	for _, check := range checks {
		result := check.fn(ctx, t, cfg)
		switch result.status {
		case checkStatusWarning:
			warnings++
		case checkStatusError:
			failures++
		}

		fmt.Fprintf(d.out, "%s %s\n", statusSymbol(result.status), t.GetMessage(check.name, 0, nil))
		if result.message != "" {
			fmt.Fprintf(d.out, "  %s\n", result.message)
		}
		if result.suggestion != "" && result.status != checkStatusOK {
			fmt.Fprintf(d.out, "  → %s\n", result.suggestion)
		}
	}

	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, t.GetMessage("doctor_summary", 0, nil))

	switch {
	case failures > 0:
		fmt.Fprintln(d.out, color.New(color.FgRed).Sprint(t.GetMessage("doctor_has_errors", failures, map[string]interface{}{"Count": failures})))
	case warnings > 0:
		fmt.Fprintln(d.out, color.New(color.FgYellow).Sprint(t.GetMessage("doctor_has_warnings", warnings, map[string]interface{}{"Count": warnings})))
	default:
		fmt.Fprintln(d.out, color.New(color.FgGreen).Sprint(t.GetMessage("doctor_all_good", 0, nil)))
	}
	return nil
}

func statusSymbol(s checkStatus) string {
	switch s {
	case checkStatusOK:
		return color.New(color.FgGreen).Sprint("✓")
	case checkStatusWarning:
		return color.New(color.FgYellow).Sprint("!")
	default:
		return color.New(color.FgRed).Sprint("✗")
	}
}

func (d *DoctorCommand) checkConfigFile(_ context.Context, t *i18n.Translations, _ *config.Config) checkResult {
	configPath := d.fileConfig.PathFile
	if configPath == "" || !fileExists(configPath) {
		return checkResult{
			status:     checkStatusError,
			message:    t.GetMessage("doctor_config_not_found", 0, nil),
			suggestion: t.GetMessage("doctor_run_config_init", 0, nil),
		}
	}
	return checkResult{
		status:  checkStatusOK,
		message: fmt.Sprintf("(%s)", configPath),
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// checkAIKey hace una generación mínima con la clave del proveedor activo
func (d *DoctorCommand) checkAIKey(ctx context.Context, t *i18n.Translations, cfg *config.Config) checkResult {
	provider := string(cfg.AIProvider)
	apiKey := cfg.ActiveAIKey()
	if apiKey == "" {
		return checkResult{
			status:     checkStatusWarning,
			message:    t.GetMessage("doctor_ai_key_missing", 0, map[string]interface{}{"Provider": provider}),
			suggestion: t.GetMessage("doctor_set_key", 0, map[string]interface{}{"Key": aiKeyName(cfg.AIProvider)}),
		}
	}

	generator, err := d.deps.Generator()
	if err != nil {
		return checkResult{
			status:     checkStatusError,
			message:    t.GetMessage("doctor_ai_key_invalid", 0, map[string]interface{}{"Provider": provider, "Error": apperrors.UserMessage(err)}),
			suggestion: apperrors.Suggestion(err),
		}
	}

	testCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if _, err := generator.Generate(testCtx, apiKey, pingSystemPrompt, pingUtterance); err != nil {
		return checkResult{
			status:     checkStatusError,
			message:    t.GetMessage("doctor_ai_key_invalid", 0, map[string]interface{}{"Provider": generator.Name(), "Error": apperrors.UserMessage(err)}),
			suggestion: t.GetMessage("doctor_set_key", 0, map[string]interface{}{"Key": aiKeyName(cfg.AIProvider)}),
		}
	}

	return checkResult{
		status:  checkStatusOK,
		message: t.GetMessage("doctor_ai_key_valid", 0, map[string]interface{}{"Provider": generator.Name()}),
	}
}

func aiKeyName(ai config.AI) string {
	if ai == config.AIAnthropic {
		return "anthropic_api_key"
	}
	return "gemini_api_key"
}

// checkGitHubToken valida el token con GET /user; sin token solo se advierte
func (d *DoctorCommand) checkGitHubToken(ctx context.Context, t *i18n.Translations, cfg *config.Config) checkResult {
	if cfg.GitHubToken == "" {
		return checkResult{
			status:     checkStatusWarning,
			message:    t.GetMessage("doctor_github_token_missing", 0, nil),
			suggestion: t.GetMessage("doctor_set_key", 0, map[string]interface{}{"Key": "github_token"}),
		}
	}

	verifier, err := d.deps.Verifier()
	if err != nil {
		return checkResult{
			status:  checkStatusError,
			message: t.GetMessage("doctor_github_token_invalid", 0, map[string]interface{}{"Error": apperrors.UserMessage(err)}),
		}
	}

	testCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	login, err := verifier.VerifyToken(testCtx, cfg.GitHubToken)
	if err != nil {
		return checkResult{
			status:     checkStatusError,
			message:    t.GetMessage("doctor_github_token_invalid", 0, map[string]interface{}{"Error": apperrors.UserMessage(err)}),
			suggestion: apperrors.Suggestion(err),
		}
	}

	return checkResult{
		status:  checkStatusOK,
		message: t.GetMessage("doctor_github_token_valid", 0, map[string]interface{}{"Login": login}),
	}
}

func (d *DoctorCommand) checkAuditDB(_ context.Context, t *i18n.Translations, cfg *config.Config) checkResult {
	if cfg.AuditDBPath == "" {
		return checkResult{
			status:  checkStatusOK,
			message: t.GetMessage("doctor_audit_disabled", 0, nil),
		}
	}

	store, err := d.deps.OpenAudit(cfg.AuditDBPath)
	if err != nil {
		return checkResult{
			status:     checkStatusError,
			message:    t.GetMessage("doctor_audit_unavailable", 0, map[string]interface{}{"Path": cfg.AuditDBPath, "Error": err.Error()}),
			suggestion: t.GetMessage("doctor_check_audit_path", 0, nil),
		}
	}
	_ = store.Close()

	return checkResult{
		status:  checkStatusOK,
		message: fmt.Sprintf("(%s)", cfg.AuditDBPath),
	}
}
