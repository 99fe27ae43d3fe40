package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	OpenAI     OpenAIConfig     `yaml:"openai" mapstructure:"openai"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Perplexity PerplexityConfig `yaml:"perplexity" mapstructure:"perplexity"`
	Resolver   ResolverConfig   `yaml:"resolver" mapstructure:"resolver"`
	Liveness   LivenessConfig   `yaml:"liveness" mapstructure:"liveness"`
	Classify   ClassifyConfig   `yaml:"classify" mapstructure:"classify"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// OpenAIConfig holds OpenAI API settings.
type OpenAIConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// PerplexityConfig holds Perplexity API settings.
type PerplexityConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// ResolverConfig configures the AI webpage resolver.
type ResolverConfig struct {
	// Providers is the fallback chain in priority order. Providers with no
	// configured key are skipped.
	Providers   []string `yaml:"providers" mapstructure:"providers"`
	TimeoutSecs int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// LivenessConfig configures the URL status probe.
type LivenessConfig struct {
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// ClassifyConfig configures the non-brand URL classifier.
type ClassifyConfig struct {
	// RulesFile optionally points at a YAML file with extra patterns that
	// extend the built-in set.
	RulesFile string `yaml:"rules_file" mapstructure:"rules_file"`
}

// CacheConfig configures the sqlite resolution cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WEBFIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("perplexity.base_url", "https://api.perplexity.ai")
	v.SetDefault("perplexity.model", "sonar-pro")
	v.SetDefault("resolver.providers", []string{"openai", "anthropic", "perplexity"})
	v.SetDefault("resolver.timeout_secs", 60)
	v.SetDefault("liveness.timeout_secs", 10)
	v.SetDefault("liveness.user_agent", "Mozilla/5.0 (compatible; WebpageChecker/1.0)")
	v.SetDefault("liveness.rate_per_sec", 5)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", "webfix-cache.db")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// HasProviderKey reports whether at least one resolver provider in the chain
// has an API key configured. Startup is fatal without one.
func (c *Config) HasProviderKey() bool {
	for _, p := range c.Resolver.Providers {
		switch p {
		case "openai":
			if c.OpenAI.Key != "" {
				return true
			}
		case "anthropic":
			if c.Anthropic.Key != "" {
				return true
			}
		case "perplexity":
			if c.Perplexity.Key != "" {
				return true
			}
		}
	}
	return false
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
