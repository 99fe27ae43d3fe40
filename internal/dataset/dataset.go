// Package dataset loads and rewrites company datasets (CSV and JSON) while
// preserving their schema, field order, and pass-through content. Only the
// webpage field is ever mutated.
package dataset

// Record is one company entry in a dataset.
type Record struct {
	Name    string
	Country string
	Webpage string

	// HasIPO marks JSON records whose missing webpage would make a
	// downstream viewer fall back to a financial-quote page.
	HasIPO bool
}

// Dataset is an ordered sequence of company records that can rewrite itself
// in place.
type Dataset interface {
	// Path returns the backing file path, for logging.
	Path() string
	Len() int
	Record(i int) Record
	// SetWebpage replaces the webpage of record i. All other fields are
	// untouched.
	SetWebpage(i int, url string) error
	// Dirty reports whether any webpage has been replaced since load.
	Dirty() bool
	// Save rewrites the backing file. Last writer wins; there is no locking.
	Save() error
}
