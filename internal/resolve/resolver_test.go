package resolve

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompleter returns a fixed reply or error and records its calls.
type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"none_token", "NONE", "", false},
		{"none_lowercase", "none", "", false},
		{"none_quoted", `"NONE"`, "", false},
		{"empty", "", "", false},
		{"whitespace", "   \n", "", false},
		{"plain_url", "https://x.com", "https://x.com", true},
		{"quoted_url", `"https://x.com"`, "https://x.com", true},
		{"single_quoted_url", `'https://x.com'`, "https://x.com", true},
		{"padded_url", "  https://x.com \n", "https://x.com", true},
		{"http_url", "http://legacy.example.com", "http://legacy.example.com", true},
		{"conversational", "Sure, the site is example.com", "", false},
		{"no_scheme", "www.example.com", "", false},
		{"prose_around_url", "The URL is https://x.com, hope that helps!", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseResponse(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFirstProviderWins(t *testing.T) {
	first := &stubCompleter{reply: "https://www.vinci.com/en"}
	second := &stubCompleter{reply: "https://other.example.com"}

	r := New([]Provider{
		{Name: "first", Client: first},
		{Name: "second", Client: second},
	})

	url, ok := r.Resolve(context.Background(), "Vinci", "France")
	require.True(t, ok)
	assert.Equal(t, "https://www.vinci.com/en", url)
	assert.Equal(t, 1, first.calls)
	// chain stops at the first candidate
	assert.Equal(t, 0, second.calls)
}

func TestResolveFallbackOnError(t *testing.T) {
	first := &stubCompleter{err: eris.New("quota exceeded")}
	second := &stubCompleter{reply: "https://www.skanska.com/"}

	r := New([]Provider{
		{Name: "first", Client: first},
		{Name: "second", Client: second},
	})

	url, ok := r.Resolve(context.Background(), "Skanska", "Sweden")
	require.True(t, ok)
	assert.Equal(t, "https://www.skanska.com/", url)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestResolveFallbackOnNoAnswer(t *testing.T) {
	first := &stubCompleter{reply: "NONE"}
	second := &stubCompleter{reply: "Sorry, I cannot help with that."}
	third := &stubCompleter{reply: "https://www.peab.se/"}

	r := New([]Provider{
		{Name: "first", Client: first},
		{Name: "second", Client: second},
		{Name: "third", Client: third},
	})

	url, ok := r.Resolve(context.Background(), "Peab", "Sweden")
	require.True(t, ok)
	assert.Equal(t, "https://www.peab.se/", url)
}

func TestResolveAllDecline(t *testing.T) {
	r := New([]Provider{
		{Name: "first", Client: &stubCompleter{err: eris.New("auth failed")}},
		{Name: "second", Client: &stubCompleter{reply: "NONE"}},
	})

	_, ok := r.Resolve(context.Background(), "Unknown Co", "")
	assert.False(t, ok)
}

func TestResolveNoProviders(t *testing.T) {
	r := New(nil)
	_, ok := r.Resolve(context.Background(), "Anyone", "")
	assert.False(t, ok)
}

// memStore is an in-memory resolve.Store for tests.
type memStore struct {
	entries map[string]string
	puts    int
}

func (m *memStore) keyOf(company, country string) string { return company + "|" + country }

func (m *memStore) Get(_ context.Context, company, country string) (string, bool) {
	url, ok := m.entries[m.keyOf(company, country)]
	return url, ok
}

func (m *memStore) Put(_ context.Context, company, country, webpage string) error {
	if m.entries == nil {
		m.entries = map[string]string{}
	}
	m.entries[m.keyOf(company, country)] = webpage
	m.puts++
	return nil
}

func TestResolveUsesStore(t *testing.T) {
	provider := &stubCompleter{reply: "https://www.fluor.com/"}
	store := &memStore{}

	r := New([]Provider{{Name: "p", Client: provider}}, WithStore(store))
	ctx := context.Background()

	url, ok := r.Resolve(ctx, "Fluor", "US")
	require.True(t, ok)
	assert.Equal(t, "https://www.fluor.com/", url)
	assert.Equal(t, 1, store.puts)

	// second resolve is served from the store, no provider call
	url, ok = r.Resolve(ctx, "Fluor", "US")
	require.True(t, ok)
	assert.Equal(t, "https://www.fluor.com/", url)
	assert.Equal(t, 1, provider.calls)
}

func TestUserPrompt(t *testing.T) {
	p := userPrompt("Vinci", "France")
	assert.Contains(t, p, "Vinci")
	assert.Contains(t, p, "France")
	assert.Contains(t, p, "not investor/IPO page")
}
