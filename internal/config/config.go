// Package config loads PrepBot settings from defaults, an optional YAML
// file, .env files and PREPBOT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/prepbot/internal/llm"
	"github.com/abhisek/prepbot/internal/logging"
)

// EnvPrefix is prepended to every environment variable PrepBot reads.
const EnvPrefix = "PREPBOT"

// Config is the fully-resolved application configuration.
type Config struct {
	LLM     LLMConfig      `mapstructure:"llm"`
	DB      string         `mapstructure:"db"`
	Log     logging.Config `mapstructure:"log"`
	Prompts PromptsConfig  `mapstructure:"prompts"`

	// File is the config file that was read, or "" if none was found.
	File string `mapstructure:"-"`
}

// LLMConfig mirrors llm.Config with mapstructure tags.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature *float64      `mapstructure:"temperature"` // nil keeps the provider default

	Gemini     VendorConfig `mapstructure:"gemini"`
	OpenAI     VendorConfig `mapstructure:"openai"`
	Anthropic  VendorConfig `mapstructure:"anthropic"`
	OpenRouter VendorConfig `mapstructure:"openrouter"`

	Retry RetryConfig `mapstructure:"retry"`
}

// VendorConfig holds one provider's credentials and model.
type VendorConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// PromptsConfig points at an optional YAML prompt catalog.
type PromptsConfig struct {
	File string `mapstructure:"file"`
}

// LoadDotEnv loads the given .env files (default ".env") without
// overriding variables already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// DefaultFile resolves $XDG_CONFIG_HOME/prepbot/config.yaml, falling back
// to ~/.config/prepbot/config.yaml.
func DefaultFile() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "prepbot", "config.yaml"), nil
}

// Load resolves configuration. An explicit path must exist; when path is
// empty the default file is read if present.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, vendor := range []string{"gemini", "openai", "anthropic", "openrouter"} {
		short := EnvPrefix + "_" + strings.ToUpper(vendor) + "_API_KEY"
		long := EnvPrefix + "_LLM_" + strings.ToUpper(vendor) + "_API_KEY"
		if err := v.BindEnv("llm."+vendor+".api_key", short, long); err != nil {
			return nil, fmt.Errorf("bind %s: %w", short, err)
		}
	}

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		def, err := DefaultFile()
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(def)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", def, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if _, err := os.Stat(v.ConfigFileUsed()); err == nil {
		cfg.File = v.ConfigFileUsed()
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.max_tokens", 0)
	// No default: an absent key must stay distinguishable from 0.
	_ = v.BindEnv("llm.temperature")

	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")

	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)

	v.SetDefault("db", "")
	v.SetDefault("prompts.file", "")

	l := logging.DefaultConfig()
	v.SetDefault("log.level", l.Level)
	v.SetDefault("log.file", l.File)
	v.SetDefault("log.max_size_mb", l.MaxSizeMB)
	v.SetDefault("log.max_backups", l.MaxBackups)
	v.SetDefault("log.max_age_days", l.MaxAgeDays)
}

// Provider returns the llm.Config this configuration selects. When the
// selected provider has no key, the vendors' standard env vars are probed.
func (c *Config) Provider() llm.Config {
	out := llm.Config{
		Provider: c.LLM.Provider,
		Gemini: llm.GeminiConfig{
			APIKey:  c.LLM.Gemini.APIKey,
			Model:   c.LLM.Gemini.Model,
			BaseURL: c.LLM.Gemini.BaseURL,
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  c.LLM.OpenAI.APIKey,
			Model:   c.LLM.OpenAI.Model,
			BaseURL: c.LLM.OpenAI.BaseURL,
		},
		Anthropic: llm.AnthropicConfig{
			APIKey:  c.LLM.Anthropic.APIKey,
			Model:   c.LLM.Anthropic.Model,
			BaseURL: c.LLM.Anthropic.BaseURL,
		},
		OpenRouter: llm.OpenRouterConfig{
			APIKey:  c.LLM.OpenRouter.APIKey,
			Model:   c.LLM.OpenRouter.Model,
			BaseURL: c.LLM.OpenRouter.BaseURL,
		},
		Retry: llm.RetryConfig{
			MaxAttempts: c.LLM.Retry.MaxAttempts,
			InitialWait: c.LLM.Retry.InitialWait,
			MaxWait:     c.LLM.Retry.MaxWait,
			Multiplier:  c.LLM.Retry.Multiplier,
		},
		Timeout: c.LLM.Timeout,
	}

	if out.Provider != llm.ProviderMock && out.APIKey() == "" {
		if found, ok := llm.DiscoverConfig(out); ok {
			return found
		}
	}
	return out
}
