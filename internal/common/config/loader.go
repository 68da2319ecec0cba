// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the base config file, merges the environment-specific one,
// expands environment placeholders and validates the result.
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like OPENAI_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig fills credentials from the environment when the
// config file left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.AI.OpenAIAPIKey == "" {
		if val := os.Getenv("OPENAI_API_KEY"); val != "" {
			cfg.AI.OpenAIAPIKey = val
		}
	}
	if cfg.AI.AnthropicAPIKey == "" {
		if val := os.Getenv("ANTHROPIC_API_KEY"); val != "" {
			cfg.AI.AnthropicAPIKey = val
		}
	}
	if cfg.AI.GeminiAPIKey == "" {
		if val := os.Getenv("GEMINI_API_KEY"); val != "" {
			cfg.AI.GeminiAPIKey = val
		}
	}
	if cfg.AI.GroqAPIKey == "" {
		if val := os.Getenv("GROQ_API_KEY"); val != "" {
			cfg.AI.GroqAPIKey = val
		}
	}
	if cfg.AI.OllamaBaseURL == "" {
		if val := os.Getenv("OLLAMA_BASE_URL"); val != "" {
			cfg.AI.OllamaBaseURL = val
		}
	}

	if cfg.Ads.CredentialsPath == "" {
		if val := os.Getenv("GOOGLE_ADS_CREDENTIALS_PATH"); val != "" {
			cfg.Ads.CredentialsPath = val
		}
	}
	if cfg.Ads.CustomerID == "" {
		if val := os.Getenv("GOOGLE_ADS_CUSTOMER_ID"); val != "" {
			cfg.Ads.CustomerID = val
		}
	}

	if cfg.Web.AuthPassword == "" {
		if val := os.Getenv("WEB_AUTH_PASSWORD"); val != "" {
			cfg.Web.AuthPassword = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "adcraft"
	}

	// AI defaults
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "openai"
	}
	if cfg.AI.Temperature == 0 {
		cfg.AI.Temperature = 0.7
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = 120
	}
	if cfg.AI.OllamaBaseURL == "" {
		cfg.AI.OllamaBaseURL = "http://localhost:11434"
	}

	// Scraper defaults
	if cfg.Scraper.TimeoutSeconds == 0 {
		cfg.Scraper.TimeoutSeconds = 15
	}
	if cfg.Scraper.UserAgent == "" {
		cfg.Scraper.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	if cfg.Scraper.MaxLinks == 0 {
		cfg.Scraper.MaxLinks = 10
	}

	// Ads defaults
	if cfg.Ads.DefaultDateDays == 0 {
		cfg.Ads.DefaultDateDays = 30
	}
	if cfg.Ads.MinImpressions == 0 {
		cfg.Ads.MinImpressions = 100
	}

	// Ad copy limits
	if cfg.Limits.HeadlineMax == 0 {
		cfg.Limits.HeadlineMax = 30
	}
	if cfg.Limits.DescriptionMax == 0 {
		cfg.Limits.DescriptionMax = 90
	}
	if cfg.Limits.PathMax == 0 {
		cfg.Limits.PathMax = 15
	}

	if cfg.Export.OutputDir == "" {
		cfg.Export.OutputDir = "."
	}

	// Web defaults
	if cfg.Web.ListenAddress == "" {
		cfg.Web.ListenAddress = ":8080"
	}
	if cfg.Web.SessionTTL == 0 {
		cfg.Web.SessionTTL = 3600
	}

	if cfg.Database.Redis.Address == "" {
		cfg.Database.Redis.Address = "localhost:6379"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	switch cfg.AI.Provider {
	case "openai":
		if cfg.AI.OpenAIAPIKey == "" {
			return fmt.Errorf("ai.openai_api_key is required for the openai provider")
		}
	case "anthropic":
		if cfg.AI.AnthropicAPIKey == "" {
			return fmt.Errorf("ai.anthropic_api_key is required for the anthropic provider")
		}
	case "gemini":
		if cfg.AI.GeminiAPIKey == "" {
			return fmt.Errorf("ai.gemini_api_key is required for the gemini provider")
		}
	case "groq":
		if cfg.AI.GroqAPIKey == "" {
			return fmt.Errorf("ai.groq_api_key is required for the groq provider")
		}
	case "ollama":
		// local backend, no credential needed
	default:
		return fmt.Errorf("unknown ai.provider %q", cfg.AI.Provider)
	}

	if cfg.Limits.HeadlineMax <= 0 || cfg.Limits.DescriptionMax <= 0 || cfg.Limits.PathMax <= 0 {
		return fmt.Errorf("limits must all be positive")
	}

	return nil
}
