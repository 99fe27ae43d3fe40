package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/webfix-cli/internal/config"
)

func TestBuildProviders(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want []string
	}{
		{
			name: "no_keys",
			cfg: config.Config{
				Resolver: config.ResolverConfig{Providers: []string{"openai", "anthropic", "perplexity"}},
			},
			want: nil,
		},
		{
			name: "all_keys_in_priority_order",
			cfg: config.Config{
				OpenAI:     config.OpenAIConfig{Key: "sk-1"},
				Anthropic:  config.AnthropicConfig{Key: "sk-2"},
				Perplexity: config.PerplexityConfig{Key: "sk-3", BaseURL: "https://api.perplexity.ai"},
				Resolver:   config.ResolverConfig{Providers: []string{"perplexity", "openai", "anthropic"}},
			},
			want: []string{"perplexity", "openai", "anthropic"},
		},
		{
			name: "missing_key_skipped",
			cfg: config.Config{
				Anthropic: config.AnthropicConfig{Key: "sk-2"},
				Resolver:  config.ResolverConfig{Providers: []string{"openai", "anthropic"}},
			},
			want: []string{"anthropic"},
		},
		{
			name: "unknown_provider_ignored",
			cfg: config.Config{
				OpenAI:   config.OpenAIConfig{Key: "sk-1"},
				Resolver: config.ResolverConfig{Providers: []string{"gemini", "openai"}},
			},
			want: []string{"openai"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers := buildProviders(&tt.cfg)
			var names []string
			for _, p := range providers {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestBuildResolverNoKeys(t *testing.T) {
	c := &config.Config{
		Resolver: config.ResolverConfig{Providers: []string{"openai"}},
	}

	_, _, err := buildResolver(c, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no AI provider key configured")
}

func TestBuildResolverWithCache(t *testing.T) {
	c := &config.Config{
		OpenAI:   config.OpenAIConfig{Key: "sk-1"},
		Resolver: config.ResolverConfig{Providers: []string{"openai"}, TimeoutSecs: 30},
		Cache:    config.CacheConfig{Enabled: true, Path: t.TempDir() + "/cache.db"},
	}

	r, closer, err := buildResolver(c, true)
	require.NoError(t, err)
	require.NotNil(t, r)
	require.NotNil(t, closer)
	assert.NoError(t, closer())
}

func TestBuildResolverCacheBypassed(t *testing.T) {
	c := &config.Config{
		OpenAI:   config.OpenAIConfig{Key: "sk-1"},
		Resolver: config.ResolverConfig{Providers: []string{"openai"}, TimeoutSecs: 30},
		Cache:    config.CacheConfig{Enabled: true, Path: t.TempDir() + "/cache.db"},
	}

	r, closer, err := buildResolver(c, false)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Nil(t, closer)
}
