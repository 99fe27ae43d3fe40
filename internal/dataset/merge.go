package dataset

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/sjson"

	"github.com/sells-group/webfix-cli/internal/match"
)

// MergeWebpages rebuilds the webpage field of every JSON record from the CSV
// sources, matching by normalized company name. Later sources win on
// duplicate names. Records with no match get an explicit null so downstream
// consumers see a consistent column. Returns the number of matched records.
func MergeWebpages(dst *JSONDataset, srcs []*CSVDataset) (int, error) {
	index := make(map[string]string)
	for _, src := range srcs {
		for i := 0; i < src.Len(); i++ {
			rec := src.Record(i)
			if rec.Name == "" || !strings.HasPrefix(rec.Webpage, "http") {
				continue
			}
			index[match.Normalize(rec.Name)] = rec.Webpage
		}
	}

	matched := 0
	for i := 0; i < dst.Len(); i++ {
		rec := dst.Record(i)
		if url, ok := index[match.Normalize(rec.Name)]; ok {
			if err := dst.SetWebpage(i, url); err != nil {
				return matched, err
			}
			matched++
			continue
		}
		if err := dst.setWebpageNull(i); err != nil {
			return matched, err
		}
	}

	return matched, nil
}

// setWebpageNull writes an explicit null webpage for record i.
func (d *JSONDataset) setWebpageNull(i int) error {
	raw, err := sjson.SetBytes(d.raw, "companies."+strconv.Itoa(i)+".webpage", nil)
	if err != nil {
		return eris.Wrapf(err, "dataset: null webpage %d in %s", i, d.path)
	}
	d.raw = raw
	d.dirty = true
	return nil
}
