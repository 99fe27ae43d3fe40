package corrector

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	summaries := []*Summary{
		{
			RunID:     "run-1",
			Dataset:   "companies.csv",
			Replaced:  1,
			Failed:    1,
			Unchanged: 3,
			Results: []Result{
				{Index: 0, Name: "Acme", OldURL: "https://finance.yahoo.com/quote/ACME", NewURL: "https://www.acme.com/", Outcome: Replaced},
				{Index: 2, Name: "Ghost Co", OldURL: "https://old.ghost.co/", AttemptedURL: "https://bad.ghost.co/", Outcome: Failed},
			},
		},
		{
			RunID:     "run-2",
			Dataset:   "companies.json",
			Unchanged: 5,
		},
	}

	require.NoError(t, WriteReport(path, summaries))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)

	corrections := f.Sheets[0]
	assert.Equal(t, "corrections", corrections.Name)
	// header + two result rows
	require.Len(t, corrections.Rows, 3)
	assert.Equal(t, "run_id", corrections.Rows[0].Cells[0].Value)
	assert.Equal(t, "Acme", corrections.Rows[1].Cells[3].Value)
	assert.Equal(t, "replaced", corrections.Rows[1].Cells[7].Value)
	assert.Equal(t, "https://bad.ghost.co/", corrections.Rows[2].Cells[6].Value)
	assert.Equal(t, "failed", corrections.Rows[2].Cells[7].Value)

	totals := f.Sheets[1]
	assert.Equal(t, "totals", totals.Name)
	require.Len(t, totals.Rows, 3)
	assert.Equal(t, "companies.csv", totals.Rows[1].Cells[0].Value)
	assert.Equal(t, "1", totals.Rows[1].Cells[1].Value)
	assert.Equal(t, "5", totals.Rows[2].Cells[3].Value)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "unchanged", Unchanged.String())
	assert.Equal(t, "replaced", Replaced.String())
	assert.Equal(t, "failed", Failed.String())
}
