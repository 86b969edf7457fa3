package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/Swarup012/Github-Manager-Backend/internal/errors"
)

type Config struct {
	Language   string `json:"language"`
	AIProvider AI     `json:"ai_provider"`
	AIModel    string `json:"ai_model,omitempty"`

	GeminiAPIKey    string `json:"gemini_api_key,omitempty"`
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty"`
	AnthropicURL    string `json:"anthropic_base_url,omitempty"`

	GitHubToken   string `json:"github_token,omitempty"`
	GitHubBaseURL string `json:"github_base_url"`

	ListenAddr            string   `json:"listen_addr"`
	RequestTimeoutSeconds int      `json:"request_timeout_seconds"`
	RateLimitPerMinute    int      `json:"rate_limit_per_minute"`
	AllowedOrigins        []string `json:"allowed_origins"`

	AuditDBPath string `json:"audit_db_path,omitempty"`

	PathFile string `json:"path_file"`
}

const (
	defaultLang               = LangEN
	defaultListenAddr         = ":8000"
	defaultGitHubBaseURL      = "https://api.github.com/"
	defaultRequestTimeoutSecs = 30
	defaultRateLimitPerMinute = 60

	configDirName  = ".github-manager"
	configFileName = "config.json"
)

var supportedLanguages = []string{LangEN, LangES}

// Environment variables applied by WithEnv.
const (
	EnvGitHubToken  = "GITHUB_TOKEN"
	EnvGeminiKey    = "GEMINI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
	EnvLanguage     = "GITHUB_MANAGER_LANG"
	EnvAIProvider   = "GITHUB_MANAGER_AI_PROVIDER"
	EnvListenAddr   = "GITHUB_MANAGER_ADDR"
	EnvAuditDB      = "GITHUB_MANAGER_AUDIT_DB"
)

// LoadConfig reads the configuration from path. A path ending in .json is
// used as-is, anything else is treated as the home directory. A missing file
// is created with defaults.
func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, configDirName)
		configPath = filepath.Join(configDir, configFileName)

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error creating config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// las claves ausentes conservan el default; un 0 explícito desactiva el límite
	config := Config{RateLimitPerMinute: defaultRateLimitPerMinute}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error decoding config JSON: %w", err)
	}
	config.PathFile = configPath
	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("loaded config is not valid: %w", err)
	}

	return &config, nil
}

// Default returns a configuration with every default applied and no file.
func Default() *Config {
	cfg := &Config{RateLimitPerMinute: defaultRateLimitPerMinute}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Language == "" {
		cfg.Language = defaultLang
	}
	if cfg.AIProvider == "" {
		cfg.AIProvider = AIGemini
	}
	if cfg.GitHubBaseURL == "" {
		cfg.GitHubBaseURL = defaultGitHubBaseURL
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}
	if cfg.RequestTimeoutSeconds == 0 {
		cfg.RequestTimeoutSeconds = defaultRequestTimeoutSecs
	}
	if cfg.AllowedOrigins == nil {
		cfg.AllowedOrigins = []string{"*"}
	}
}

func createDefaultConfig(path string) (*Config, error) {
	config := Default()
	config.PathFile = path

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("error saving default config: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("config to save is not valid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not defined")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0600); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	return nil
}

// WithEnv returns a copy of cfg with environment overrides applied. The
// copy is meant for runtime use and must not be saved.
func (c *Config) WithEnv(lookup func(string) (string, bool)) *Config {
	out := *c
	out.AllowedOrigins = append([]string(nil), c.AllowedOrigins...)
	out.PathFile = ""

	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&out.GitHubToken, EnvGitHubToken)
	set(&out.GeminiAPIKey, EnvGeminiKey)
	set(&out.AnthropicAPIKey, EnvAnthropicKey)
	set(&out.Language, EnvLanguage)
	set(&out.ListenAddr, EnvListenAddr)
	set(&out.AuditDBPath, EnvAuditDB)

	if v, ok := lookup(EnvAIProvider); ok && strings.TrimSpace(v) != "" {
		out.AIProvider = AI(strings.ToLower(strings.TrimSpace(v)))
	}
	return &out
}

// RequestTimeout is the per-request deadline applied to inbound requests and
// outbound HTTP clients.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// ActiveAIKey returns the default text-generation key for the active provider.
func (c *Config) ActiveAIKey() string {
	switch c.AIProvider {
	case AIAnthropic:
		return c.AnthropicAPIKey
	default:
		return c.GeminiAPIKey
	}
}

// ActiveModel returns the configured model or the provider's default.
func (c *Config) ActiveModel() string {
	if c.AIModel != "" {
		return c.AIModel
	}
	return string(DefaultModelForAI(c.AIProvider))
}

// Set assigns a configuration key from its string form. c is left untouched
// when the new value does not validate.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	next := *c
	switch key {
	case "language":
		next.Language = value
	case "ai_provider":
		next.AIProvider = AI(strings.ToLower(value))
	case "ai_model":
		next.AIModel = value
	case "gemini_api_key":
		next.GeminiAPIKey = value
	case "anthropic_api_key":
		next.AnthropicAPIKey = value
	case "anthropic_base_url":
		next.AnthropicURL = value
	case "github_token":
		next.GitHubToken = value
	case "github_base_url":
		next.GitHubBaseURL = value
	case "listen_addr":
		next.ListenAddr = value
	case "audit_db_path":
		next.AuditDBPath = value
	case "request_timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		next.RequestTimeoutSeconds = n
	case "rate_limit_per_minute":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		next.RateLimitPerMinute = n
	case "allowed_origins":
		origins := make([]string, 0)
		for _, o := range strings.Split(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		next.AllowedOrigins = origins
	default:
		return apperrors.ErrUnknownConfigKey.WithContext(apperrors.ContextField, key)
	}
	if err := validateConfig(&next); err != nil {
		return err
	}
	*c = next
	return nil
}

func validateConfig(config *Config) error {
	if config.Language == "" {
		return errors.New("language cannot be empty")
	}
	if !isSupportedLanguage(config.Language) {
		return fmt.Errorf("language not supported: %s", config.Language)
	}
	if !isSupportedAI(config.AIProvider) {
		return fmt.Errorf("AI provider not supported: %s", config.AIProvider)
	}
	if config.RequestTimeoutSeconds <= 0 {
		return errors.New("request_timeout_seconds must be greater than 0")
	}
	if config.RateLimitPerMinute < 0 {
		return errors.New("rate_limit_per_minute cannot be negative")
	}
	if config.GitHubBaseURL != "" && !strings.HasPrefix(config.GitHubBaseURL, "http") {
		return fmt.Errorf("github_base_url must be an http(s) URL: %s", config.GitHubBaseURL)
	}
	return nil
}

func isSupportedLanguage(lang string) bool {
	for _, l := range supportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

func isSupportedAI(ai AI) bool {
	for _, s := range SupportedAIs() {
		if s == ai {
			return true
		}
	}
	return false
}
