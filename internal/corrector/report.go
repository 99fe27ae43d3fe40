package corrector

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// WriteReport writes replaced and failed records from one or more pass
// summaries to an xlsx workbook. Unchanged records are omitted.
func WriteReport(path string, summaries []*Summary) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet("corrections")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"run_id", "dataset", "index", "company", "old_url", "new_url", "attempted_url", "outcome"} {
		header.AddCell().Value = h
	}

	for _, s := range summaries {
		for _, r := range s.Results {
			row := sheet.AddRow()
			row.AddCell().Value = s.RunID
			row.AddCell().Value = s.Dataset
			row.AddCell().Value = strconv.Itoa(r.Index)
			row.AddCell().Value = r.Name
			row.AddCell().Value = r.OldURL
			row.AddCell().Value = r.NewURL
			row.AddCell().Value = r.AttemptedURL
			row.AddCell().Value = r.Outcome.String()
		}
	}

	totals, err := f.AddSheet("totals")
	if err != nil {
		return eris.Wrap(err, "report: add totals sheet")
	}
	th := totals.AddRow()
	for _, h := range []string{"dataset", "replaced", "failed", "unchanged"} {
		th.AddCell().Value = h
	}
	for _, s := range summaries {
		row := totals.AddRow()
		row.AddCell().Value = s.Dataset
		row.AddCell().Value = strconv.Itoa(s.Replaced)
		row.AddCell().Value = strconv.Itoa(s.Failed)
		row.AddCell().Value = strconv.Itoa(s.Unchanged)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}
