// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	AI       AIConfig       `mapstructure:"ai"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	Ads      AdsConfig      `mapstructure:"ads"`
	Limits   LimitsConfig   `mapstructure:"limits"`
	Export   ExportConfig   `mapstructure:"export"`
	Web      WebConfig      `mapstructure:"web"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// AIConfig selects the generation backend and carries its credentials.
type AIConfig struct {
	Provider       string `mapstructure:"provider"`
	Model          string `mapstructure:"model"`
	Temperature    float64 `mapstructure:"temperature"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`

	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`
	GeminiAPIKey    string `mapstructure:"gemini_api_key"`
	GroqAPIKey      string `mapstructure:"groq_api_key"`
	OllamaBaseURL   string `mapstructure:"ollama_base_url"`
}

type ScraperConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
	MaxLinks       int    `mapstructure:"max_links"`
}

// AdsConfig points at the ad-platform credentials file and the account
// the reporting tools operate on.
type AdsConfig struct {
	CredentialsPath string `mapstructure:"credentials_path"`
	CustomerID      string `mapstructure:"customer_id"`
	DefaultDateDays int    `mapstructure:"default_date_days"`
	MinImpressions  int    `mapstructure:"min_impressions"`
}

// LimitsConfig holds the platform character limits for ad copy.
type LimitsConfig struct {
	HeadlineMax    int `mapstructure:"headline_max"`
	DescriptionMax int `mapstructure:"description_max"`
	PathMax        int `mapstructure:"path_max"`
}

type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

type WebConfig struct {
	ListenAddress string `mapstructure:"listen_address"`
	AuthUser      string `mapstructure:"auth_user"`
	AuthPassword  string `mapstructure:"auth_password"`
	SessionTTL    int    `mapstructure:"session_ttl"` // seconds
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ScraperTimeout returns the fetch timeout as a duration.
func (s ScraperConfig) ScraperTimeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// AITimeout returns the generation call timeout as a duration.
func (a AIConfig) AITimeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// SessionTTLDuration returns the web session TTL as a duration.
func (w WebConfig) SessionTTLDuration() time.Duration {
	return time.Duration(w.SessionTTL) * time.Second
}
