package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const companiesJSON = `{
  "generated": "2025-06-01",
  "source": "CDC revenue research",
  "companies": [
    {
      "name": "Vinci",
      "revenue": 68800,
      "country": "France",
      "ipo": {"ticker": "DG.PA", "exchange": "Euronext"},
      "webpage": "https://www.vinci.com/en"
    },
    {
      "name": "Acme Build",
      "revenue": 1200,
      "country": "US",
      "ipo": {"ticker": "ACME"},
      "webpage": null
    },
    {
      "name": "Family Construct",
      "revenue": 300,
      "country": "DE",
      "ipo": null,
      "webpage": null
    }
  ]
}`

func writeJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "companies.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	d, err := LoadJSON(writeJSON(t, companiesJSON))
	require.NoError(t, err)

	assert.Equal(t, 3, d.Len())

	r := d.Record(0)
	assert.Equal(t, "Vinci", r.Name)
	assert.Equal(t, "France", r.Country)
	assert.Equal(t, "https://www.vinci.com/en", r.Webpage)
	assert.True(t, r.HasIPO)

	// null webpage reads as empty, ipo object is truthy
	r = d.Record(1)
	assert.Equal(t, "", r.Webpage)
	assert.True(t, r.HasIPO)

	// null ipo is not an indicator
	r = d.Record(2)
	assert.False(t, r.HasIPO)
}

func TestLoadJSONErrors(t *testing.T) {
	_, err := LoadJSON(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	_, err = LoadJSON(writeJSON(t, "{not json"))
	require.Error(t, err)

	_, err = LoadJSON(writeJSON(t, `{"companies": "not an array"}`))
	require.Error(t, err)
}

func TestJSONSetWebpagePreservesPassthrough(t *testing.T) {
	path := writeJSON(t, companiesJSON)
	d, err := LoadJSON(path)
	require.NoError(t, err)

	require.NoError(t, d.SetWebpage(1, "https://www.acmebuild.com/"))
	assert.True(t, d.Dirty())
	require.NoError(t, d.Save())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// only the one webpage changed
	assert.Equal(t, "https://www.acmebuild.com/", gjson.GetBytes(raw, "companies.1.webpage").String())
	assert.Equal(t, "https://www.vinci.com/en", gjson.GetBytes(raw, "companies.0.webpage").String())

	// pass-through fields and top-level keys survive
	assert.Equal(t, "2025-06-01", gjson.GetBytes(raw, "generated").String())
	assert.Equal(t, "CDC revenue research", gjson.GetBytes(raw, "source").String())
	assert.Equal(t, float64(1200), gjson.GetBytes(raw, "companies.1.revenue").Num)
	assert.Equal(t, "ACME", gjson.GetBytes(raw, "companies.1.ipo.ticker").String())
	assert.Equal(t, int64(3), gjson.GetBytes(raw, "companies.#").Int())
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want bool
	}{
		{"absent", `{}`, false},
		{"null", `{"ipo": null}`, false},
		{"false", `{"ipo": false}`, false},
		{"true", `{"ipo": true}`, true},
		{"empty_string", `{"ipo": ""}`, false},
		{"ticker_string", `{"ipo": "ACME"}`, true},
		{"zero", `{"ipo": 0}`, false},
		{"number", `{"ipo": 1}`, true},
		{"empty_object", `{"ipo": {}}`, false},
		{"object", `{"ipo": {"ticker": "ACME"}}`, true},
		{"empty_array", `{"ipo": []}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truthy(gjson.Get(tt.doc, "ipo")))
		})
	}
}
