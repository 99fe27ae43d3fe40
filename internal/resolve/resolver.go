// Package resolve finds a company's official website through a prioritized
// chain of LLM providers.
package resolve

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// noAnswerToken is the literal reply that means the provider could not find
// a reliable URL.
const noAnswerToken = "NONE"

// systemDirective instructs a provider to answer with exactly one URL or the
// no-answer token, and nothing else.
const systemDirective = "You are a researcher. Reply with ONLY a single valid URL (https://) " +
	"of the official MAIN corporate website for the given company - NOT investor relations, " +
	"NOT SEC filings, NOT stock quote pages. If unsure, return a best guess. No explanation, " +
	"no quotes, just the URL. If you cannot find one, reply exactly: " + noAnswerToken

// Completer is the capability a provider exposes: one free-text completion.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Provider is a named entry in the fallback chain.
type Provider struct {
	Name   string
	Client Completer
}

// Store caches successful resolutions across passes.
type Store interface {
	Get(ctx context.Context, company, country string) (string, bool)
	Put(ctx context.Context, company, country, webpage string) error
}

// Option configures the resolver.
type Option func(*Resolver)

// WithStore attaches a resolution cache.
func WithStore(s Store) Option {
	return func(r *Resolver) {
		r.store = s
	}
}

// WithTimeout bounds each provider call. Default 60s.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = d
	}
}

// Resolver queries providers in priority order and returns the first
// candidate URL.
type Resolver struct {
	providers []Provider
	store     Store
	timeout   time.Duration
}

// New creates a resolver over the given provider chain.
func New(providers []Provider, opts ...Option) *Resolver {
	r := &Resolver{
		providers: providers,
		timeout:   60 * time.Second,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// userPrompt builds the per-company question.
func userPrompt(company, country string) string {
	return fmt.Sprintf("Official MAIN company website (not investor/IPO page) for: %s "+
		"(company based in %s). Construction/real estate/development company.", company, country)
}

// ParseResponse extracts a candidate URL from a free-text provider reply.
// Surrounding quotes and whitespace are stripped; the no-answer token or any
// reply without an http scheme prefix yields no candidate. Responses are
// best-effort text, never a structured contract.
func ParseResponse(text string) (string, bool) {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `'"`)
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, noAnswerToken) {
		return "", false
	}
	if !strings.HasPrefix(text, "http") {
		return "", false
	}
	return text, true
}

// Resolve asks each provider in order for the company's official site. The
// first candidate wins; provider errors and no-answers fall through to the
// next provider. Returns false only when every provider failed or declined.
func (r *Resolver) Resolve(ctx context.Context, company, country string) (string, bool) {
	if r.store != nil {
		if url, ok := r.store.Get(ctx, company, country); ok {
			return url, true
		}
	}

	prompt := userPrompt(company, country)

	for _, p := range r.providers {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		reply, err := p.Client.Complete(callCtx, systemDirective, prompt)
		cancel()

		if err != nil {
			zap.L().Warn("resolver provider failed",
				zap.String("provider", p.Name),
				zap.String("company", company),
				zap.Error(err),
			)
			continue
		}

		url, ok := ParseResponse(reply)
		if !ok {
			zap.L().Debug("resolver provider declined",
				zap.String("provider", p.Name),
				zap.String("company", company),
			)
			continue
		}

		zap.L().Info("resolved webpage",
			zap.String("provider", p.Name),
			zap.String("company", company),
			zap.String("url", url),
		)

		if r.store != nil {
			if err := r.store.Put(ctx, company, country, url); err != nil {
				zap.L().Warn("resolution cache write failed", zap.Error(err))
			}
		}
		return url, true
	}

	return "", false
}
