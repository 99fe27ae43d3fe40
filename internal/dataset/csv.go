package dataset

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrNoWebpageColumn marks a CSV without a webpage column. Callers skip such
// files rather than failing the run.
var ErrNoWebpageColumn = eris.New("dataset: csv has no webpage column")

// CSVDataset is a company CSV with at least a webpage column. The header and
// every non-webpage cell are preserved byte-for-byte on rewrite.
type CSVDataset struct {
	path   string
	header []string
	rows   [][]string

	nameIdx    int
	countryIdx int
	webpageIdx int

	dirty bool
}

// LoadCSV reads a company CSV. Returns ErrNoWebpageColumn if the header has
// no webpage column.
func LoadCSV(path string) (*CSVDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open csv %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read csv %s", path)
	}
	if len(records) == 0 {
		return nil, eris.Errorf("dataset: csv %s is empty", path)
	}

	d := &CSVDataset{
		path:       path,
		header:     records[0],
		rows:       records[1:],
		nameIdx:    -1,
		countryIdx: -1,
		webpageIdx: -1,
	}

	for i, h := range d.header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "brand_name":
			d.nameIdx = i
		case "country":
			d.countryIdx = i
		case "webpage":
			d.webpageIdx = i
		}
	}

	if d.webpageIdx < 0 {
		return nil, eris.Wrapf(ErrNoWebpageColumn, "%s", path)
	}

	return d, nil
}

// Path returns the backing file path.
func (d *CSVDataset) Path() string { return d.path }

// Len returns the number of data rows.
func (d *CSVDataset) Len() int { return len(d.rows) }

func (d *CSVDataset) cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Record returns the company at row i.
func (d *CSVDataset) Record(i int) Record {
	row := d.rows[i]
	return Record{
		Name:    d.cell(row, d.nameIdx),
		Country: d.cell(row, d.countryIdx),
		Webpage: d.cell(row, d.webpageIdx),
	}
}

// SetWebpage replaces the webpage cell of row i.
func (d *CSVDataset) SetWebpage(i int, url string) error {
	row := d.rows[i]
	if d.webpageIdx >= len(row) {
		// short row: pad to the webpage column
		padded := make([]string, d.webpageIdx+1)
		copy(padded, row)
		d.rows[i] = padded
		row = padded
	}
	row[d.webpageIdx] = url
	d.dirty = true
	return nil
}

// Dirty reports whether any webpage has been replaced since load.
func (d *CSVDataset) Dirty() bool { return d.dirty }

// Save rewrites the CSV with the original header and row order.
func (d *CSVDataset) Save() error {
	f, err := os.Create(d.path)
	if err != nil {
		return eris.Wrapf(err, "dataset: create csv %s", d.path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(d.header); err != nil {
		return eris.Wrapf(err, "dataset: write csv header %s", d.path)
	}
	for _, row := range d.rows {
		if err := w.Write(row); err != nil {
			return eris.Wrapf(err, "dataset: write csv row %s", d.path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "dataset: flush csv %s", d.path)
	}
	return nil
}
