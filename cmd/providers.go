package main

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/webfix-cli/internal/cache"
	"github.com/sells-group/webfix-cli/internal/config"
	"github.com/sells-group/webfix-cli/internal/resolve"
	"github.com/sells-group/webfix-cli/pkg/anthropic"
	"github.com/sells-group/webfix-cli/pkg/openai"
	"github.com/sells-group/webfix-cli/pkg/perplexity"
)

// buildProviders assembles the resolver fallback chain from config,
// skipping providers with no key.
func buildProviders(cfg *config.Config) []resolve.Provider {
	var providers []resolve.Provider
	for _, name := range cfg.Resolver.Providers {
		switch name {
		case "openai":
			if cfg.OpenAI.Key == "" {
				zap.L().Warn("openai key not set, skipping provider")
				continue
			}
			providers = append(providers, resolve.Provider{
				Name:   "openai",
				Client: openai.NewClient(cfg.OpenAI.Key, openai.WithModel(cfg.OpenAI.Model)),
			})
		case "anthropic":
			if cfg.Anthropic.Key == "" {
				zap.L().Warn("anthropic key not set, skipping provider")
				continue
			}
			providers = append(providers, resolve.Provider{
				Name:   "anthropic",
				Client: anthropic.NewClient(cfg.Anthropic.Key, anthropic.WithModel(cfg.Anthropic.Model)),
			})
		case "perplexity":
			if cfg.Perplexity.Key == "" {
				zap.L().Warn("perplexity key not set, skipping provider")
				continue
			}
			providers = append(providers, resolve.Provider{
				Name: "perplexity",
				Client: perplexity.NewClient(cfg.Perplexity.Key,
					perplexity.WithBaseURL(cfg.Perplexity.BaseURL),
					perplexity.WithModel(cfg.Perplexity.Model)),
			})
		default:
			zap.L().Warn("unknown resolver provider in config", zap.String("provider", name))
		}
	}
	return providers
}

// buildResolver wires the provider chain and the optional resolution cache.
// The returned closer is nil when no cache is open.
func buildResolver(cfg *config.Config, useCache bool) (*resolve.Resolver, func() error, error) {
	if !cfg.HasProviderKey() {
		return nil, nil, eris.New("no AI provider key configured " +
			"(set WEBFIX_OPENAI_KEY, WEBFIX_ANTHROPIC_KEY, or WEBFIX_PERPLEXITY_KEY)")
	}

	opts := []resolve.Option{
		resolve.WithTimeout(time.Duration(cfg.Resolver.TimeoutSecs) * time.Second),
	}

	var closer func() error
	if useCache && cfg.Cache.Enabled {
		c, err := cache.Open(cfg.Cache.Path)
		if err != nil {
			return nil, nil, eris.Wrap(err, "open resolution cache")
		}
		opts = append(opts, resolve.WithStore(c))
		closer = c.Close
	}

	return resolve.New(buildProviders(cfg), opts...), closer, nil
}
