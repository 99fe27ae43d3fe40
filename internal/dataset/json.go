package dataset

import (
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSONDataset is a JSON document with a top-level "companies" array. The
// document is edited as raw bytes so key order, formatting, and every
// pass-through field survive the rewrite untouched.
type JSONDataset struct {
	path  string
	raw   []byte
	count int
	dirty bool
}

// LoadJSON reads a companies JSON document.
func LoadJSON(path string) (*JSONDataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read json %s", path)
	}
	if !gjson.ValidBytes(raw) {
		return nil, eris.Errorf("dataset: %s is not valid json", path)
	}

	companies := gjson.GetBytes(raw, "companies")
	if !companies.IsArray() {
		return nil, eris.Errorf("dataset: %s has no companies array", path)
	}

	return &JSONDataset{
		path:  path,
		raw:   raw,
		count: int(companies.Get("#").Int()),
	}, nil
}

// Path returns the backing file path.
func (d *JSONDataset) Path() string { return d.path }

// Len returns the number of company objects.
func (d *JSONDataset) Len() int { return d.count }

// Record returns the company at index i.
func (d *JSONDataset) Record(i int) Record {
	obj := gjson.GetBytes(d.raw, "companies."+strconv.Itoa(i))

	// webpage may be null or some non-string junk; only a string counts
	webpage := ""
	if v := obj.Get("webpage"); v.Type == gjson.String {
		webpage = strings.TrimSpace(v.Str)
	}

	return Record{
		Name:    strings.TrimSpace(obj.Get("name").String()),
		Country: strings.TrimSpace(obj.Get("country").String()),
		Webpage: webpage,
		HasIPO:  truthy(obj.Get("ipo")),
	}
}

// truthy mirrors the loose semantics of the indicator field: any present,
// non-null, non-empty, non-zero value counts.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null:
		return false
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.String:
		return v.Str != ""
	case gjson.Number:
		return v.Num != 0
	default:
		// object or array: empty ones don't count
		trimmed := strings.TrimSpace(v.Raw)
		return trimmed != "" && trimmed != "{}" && trimmed != "[]"
	}
}

// SetWebpage replaces the webpage of company i in the raw document.
func (d *JSONDataset) SetWebpage(i int, url string) error {
	raw, err := sjson.SetBytes(d.raw, "companies."+strconv.Itoa(i)+".webpage", url)
	if err != nil {
		return eris.Wrapf(err, "dataset: set webpage %d in %s", i, d.path)
	}
	d.raw = raw
	d.dirty = true
	return nil
}

// Dirty reports whether any webpage has been replaced since load.
func (d *JSONDataset) Dirty() bool { return d.dirty }

// Save rewrites the JSON document.
func (d *JSONDataset) Save() error {
	if err := os.WriteFile(d.path, d.raw, 0o644); err != nil {
		return eris.Wrapf(err, "dataset: write json %s", d.path)
	}
	return nil
}
