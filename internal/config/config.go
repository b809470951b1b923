package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Query         string         `yaml:"query"`
	MaxEmails     int64          `yaml:"max_emails"`
	OutputDir     string         `yaml:"output_dir"`
	TranscriptDir string         `yaml:"transcript_dir"`
	BodyBudget    int            `yaml:"body_budget"`
	RequestDelay  int            `yaml:"request_delay_ms"`
	Gmail         GmailConfig    `yaml:"gmail"`
	Provider      ProviderConfig `yaml:"provider"`
	Retry         RetryConfig    `yaml:"retry"`
}

type GmailConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	AccessToken  string `yaml:"access_token"`
	RefreshToken string `yaml:"refresh_token"`
}

type ProviderConfig struct {
	Type        string  `yaml:"type"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Timeout     int     `yaml:"timeout_seconds"`
}

type RetryConfig struct {
	MaxRetries int `yaml:"max_retries"`
	BaseDelay  int `yaml:"base_delay_ms"`
	MaxDelay   int `yaml:"max_delay_ms"`
}

// CallTimeout is the hard per-call timeout for provider requests.
func (p ProviderConfig) CallTimeout() time.Duration {
	return time.Duration(p.Timeout) * time.Second
}

// Delay is the pause inserted between consecutive provider calls.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.RequestDelay) * time.Millisecond
}

func (r RetryConfig) BaseDelayDuration() time.Duration {
	return time.Duration(r.BaseDelay) * time.Millisecond
}

func (r RetryConfig) MaxDelayDuration() time.Duration {
	return time.Duration(r.MaxDelay) * time.Millisecond
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

func setDefaults(cfg *Config) {
	if cfg.Query == "" {
		cfg.Query = "is:unread is:important"
	}
	if cfg.MaxEmails == 0 {
		cfg.MaxEmails = 5
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "email_summaries"
	}
	if cfg.TranscriptDir == "" {
		cfg.TranscriptDir = "transcripts"
	}
	if cfg.BodyBudget == 0 {
		cfg.BodyBudget = 6000
	}
	if cfg.RequestDelay == 0 {
		cfg.RequestDelay = 1000
	}
	if cfg.Provider.Type == "" {
		cfg.Provider.Type = "anthropic"
	}
	if cfg.Provider.Model == "" {
		switch cfg.Provider.Type {
		case "openai":
			cfg.Provider.Model = "gpt-4o-mini"
		default:
			cfg.Provider.Model = "claude-3-haiku-20240307"
		}
	}
	if cfg.Provider.MaxTokens == 0 {
		cfg.Provider.MaxTokens = 1024
	}
	if cfg.Provider.Temperature == 0 {
		cfg.Provider.Temperature = 0.3
	}
	if cfg.Provider.Timeout == 0 {
		cfg.Provider.Timeout = 120
	}
	if cfg.Retry.MaxRetries == 0 {
		cfg.Retry.MaxRetries = 3
	}
	if cfg.Retry.BaseDelay == 0 {
		cfg.Retry.BaseDelay = 2000
	}
	if cfg.Retry.MaxDelay == 0 {
		cfg.Retry.MaxDelay = 120000
	}
}

func validate(cfg *Config) error {
	switch cfg.Provider.Type {
	case "anthropic", "openai":
	default:
		return fmt.Errorf("config: unsupported provider type %q (supported: anthropic, openai)", cfg.Provider.Type)
	}
	if cfg.Provider.APIKey == "" {
		return fmt.Errorf("config: provider.api_key is required (set ANTHROPIC_API_KEY or OPENAI_API_KEY env var)")
	}
	if cfg.MaxEmails < 0 {
		return fmt.Errorf("config: max_emails must not be negative")
	}
	if cfg.Provider.Temperature < 0 || cfg.Provider.Temperature > 2 {
		return fmt.Errorf("config: provider.temperature must be between 0.0 and 2.0")
	}
	return nil
}

// Load reads the config file, expands environment variables, applies defaults,
// and validates the configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
