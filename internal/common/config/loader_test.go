// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 0.7, cfg.AI.Temperature)
	assert.Equal(t, 120, cfg.AI.TimeoutSeconds)
	assert.Equal(t, 15, cfg.Scraper.TimeoutSeconds)
	assert.Equal(t, "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36", cfg.Scraper.UserAgent)
	assert.Equal(t, 30, cfg.Limits.HeadlineMax)
	assert.Equal(t, 90, cfg.Limits.DescriptionMax)
	assert.Equal(t, 15, cfg.Limits.PathMax)
	assert.Equal(t, 100, cfg.Ads.MinImpressions)
	assert.Equal(t, ":8080", cfg.Web.ListenAddress)
	assert.Equal(t, 3600, cfg.Web.SessionTTL)
	assert.Equal(t, "localhost:6379", cfg.Database.Redis.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.AI.Provider = "gemini"
	cfg.Limits.HeadlineMax = 25

	applyDefaults(cfg)

	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, 25, cfg.Limits.HeadlineMax)
	assert.Equal(t, 90, cfg.Limits.DescriptionMax)
}

func TestOverrideEmptyConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-gemini-key")
	t.Setenv("GOOGLE_ADS_CUSTOMER_ID", "1112223333")

	cfg := &Config{}
	cfg.AI.OpenAIAPIKey = "explicit-key"

	overrideEmptyConfig(cfg)

	assert.Equal(t, "explicit-key", cfg.AI.OpenAIAPIKey)
	assert.Equal(t, "env-gemini-key", cfg.AI.GeminiAPIKey)
	assert.Equal(t, "1112223333", cfg.Ads.CustomerID)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "openai with key",
			mutate: func(c *Config) { c.AI.OpenAIAPIKey = "k" },
		},
		{
			name:    "openai without key",
			mutate:  func(c *Config) {},
			wantErr: "openai_api_key",
		},
		{
			name:   "ollama needs no key",
			mutate: func(c *Config) { c.AI.Provider = "ollama" },
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.AI.Provider = "bard" },
			wantErr: "unknown ai.provider",
		},
		{
			name: "non-positive limits",
			mutate: func(c *Config) {
				c.AI.Provider = "ollama"
				c.Limits.HeadlineMax = -1
			},
			wantErr: "limits must all be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ai:
  provider: ollama
  model: llama3.2
limits:
  headline_max: 25
web:
  listen_address: ":9090"
`), 0o600))

	cfg, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.AI.Provider)
	assert.Equal(t, "llama3.2", cfg.AI.Model)
	assert.Equal(t, 25, cfg.Limits.HeadlineMax)
	assert.Equal(t, 90, cfg.Limits.DescriptionMax)
	assert.Equal(t, ":9090", cfg.Web.ListenAddress)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_GROQ_KEY", "expanded-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ai:
  provider: groq
  groq_api_key: ${TEST_GROQ_KEY}
`), 0o600))

	cfg, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "expanded-key", cfg.AI.GroqAPIKey)
}

func TestDurationHelpers(t *testing.T) {
	cfg := &Config{}
	cfg.Scraper.TimeoutSeconds = 15
	cfg.AI.TimeoutSeconds = 120
	cfg.Web.SessionTTL = 3600

	assert.Equal(t, 15*time.Second, cfg.Scraper.ScraperTimeout())
	assert.Equal(t, 120*time.Second, cfg.AI.AITimeout())
	assert.Equal(t, time.Hour, cfg.Web.SessionTTLDuration())
}
