package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Environment  string `env:"APP_ENV"        envDefault:"development" json:"environment"`
	Host         string `env:"HOST"           envDefault:"0.0.0.0"     json:"host"`
	Port         string `env:"PORT"           envDefault:"8080"        json:"port"`
	LogLevel     string `env:"LOG_LEVEL"      envDefault:"info"        json:"log_level"`
	MaxBodyBytes int64  `env:"MAX_BODY_BYTES" envDefault:"1048576"     json:"max_body_bytes"`

	// Model provider settings
	Provider   string        `env:"LLM_PROVIDER" envDefault:"gemini" json:"llm_provider"`
	LLMTimeout time.Duration `env:"LLM_TIMEOUT"  envDefault:"60s"    json:"llm_timeout"`

	// Gemini API settings
	GeminiAPIKey  string `env:"GEMINI_API_KEY"  json:"-"` // Don't expose in JSON
	GeminiModel   string `env:"GEMINI_MODEL"    envDefault:"gemini-2.5-flash"                                json:"gemini_model"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta" json:"gemini_base_url"`

	// OpenAI-compatible settings
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"  json:"-"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" json:"openai_base_url,omitempty"`
	OpenAIModel   string `env:"OPENAI_MODEL"    envDefault:"gpt-4o-mini" json:"openai_model"`

	// Anthropic settings
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY" json:"-"`
	AnthropicModel  string `env:"ANTHROPIC_MODEL"   envDefault:"claude-sonnet-4-5-20250929" json:"anthropic_model"`

	// Usage reporting
	UsageReportSchedule string `env:"USAGE_REPORT_SCHEDULE" envDefault:"@hourly" json:"usage_report_schedule"`
	UsageReportBucket   string `env:"USAGE_REPORT_BUCKET"   json:"usage_report_bucket,omitempty"`
	SlackBotToken       string `env:"SLACK_BOT_TOKEN"       json:"-"`
	SlackChannel        string `env:"SLACK_CHANNEL"         json:"slack_channel,omitempty"`
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return cfg, cfg.validate()
}

// validate checks the values that would make the process unusable.
// A missing API key is reported by the provider at request time.
func (c *Config) validate() error {
	switch c.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return &ConfigError{Field: "APP_ENV", Message: "must be development or production"}
	}
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		return &ConfigError{Field: "LLM_PROVIDER", Message: "must be one of gemini, openai, anthropic"}
	}
	if c.MaxBodyBytes <= 0 {
		return &ConfigError{Field: "MAX_BODY_BYTES", Message: "must be positive"}
	}
	return nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// APIKey returns the key of the selected provider.
func (c *Config) APIKey() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	default:
		return c.GeminiAPIKey
	}
}

// Model returns the model identifier of the selected provider.
func (c *Config) Model() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIModel
	case ProviderAnthropic:
		return c.AnthropicModel
	default:
		return c.GeminiModel
	}
}

// BaseURL returns the endpoint override of the selected provider, if any.
func (c *Config) BaseURL() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIBaseURL
	case ProviderAnthropic:
		return ""
	default:
		return c.GeminiBaseURL
	}
}

// SlackEnabled reports whether usage reports are posted to Slack.
func (c *Config) SlackEnabled() bool {
	return c.SlackBotToken != "" && c.SlackChannel != ""
}

// Public returns a sanitized view without secrets.
func (c *Config) Public() map[string]interface{} {
	return map[string]interface{}{
		"environment":           c.Environment,
		"host":                  c.Host,
		"port":                  c.Port,
		"llm_provider":          c.Provider,
		"model":                 c.Model(),
		"llm_timeout":           c.LLMTimeout.String(),
		"max_body_bytes":        c.MaxBodyBytes,
		"usage_report_schedule": c.UsageReportSchedule,
		"usage_report_enabled":  c.UsageReportBucket != "",
		"usage_report_slack":    c.SlackEnabled(),
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
