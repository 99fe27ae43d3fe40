package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/webfix-cli/internal/dataset"
)

var (
	mergeCSVs []string
	mergeJSON string
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge webpage columns from the CSVs into the JSON dataset",
	Long: `Rebuilds the webpage field of every JSON record from the CSV
sources, matching companies by normalized name. Records with no CSV match
get an explicit null. No AI credentials are needed.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var srcs []*dataset.CSVDataset
		for _, path := range mergeCSVs {
			if _, err := os.Stat(path); err != nil {
				zap.L().Debug("csv not found, skipping", zap.String("path", path))
				continue
			}
			ds, err := dataset.LoadCSV(path)
			if err != nil {
				if eris.Is(err, dataset.ErrNoWebpageColumn) {
					zap.L().Info("csv has no webpage column, skipping", zap.String("path", path))
					continue
				}
				return eris.Wrap(err, "merge: load csv")
			}
			srcs = append(srcs, ds)
		}
		if len(srcs) == 0 {
			return eris.New("merge: no usable csv sources")
		}

		dst, err := dataset.LoadJSON(mergeJSON)
		if err != nil {
			return eris.Wrap(err, "merge: load json")
		}

		matched, err := dataset.MergeWebpages(dst, srcs)
		if err != nil {
			return eris.Wrap(err, "merge: merge webpages")
		}
		if err := dst.Save(); err != nil {
			return eris.Wrap(err, "merge: save json")
		}

		zap.L().Info("merge complete",
			zap.String("json", mergeJSON),
			zap.Int("matched", matched),
			zap.Int("companies", dst.Len()),
		)
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringSliceVar(&mergeCSVs, "csv",
		[]string{"CDC_midbln.csv", "CDC_IPO.csv", "CDC_CIS_100mln.csv"},
		"CSV source paths (missing files are skipped)")
	mergeCmd.Flags().StringVar(&mergeJSON, "json", "companies-by-revenue.json", "JSON dataset path")
	rootCmd.AddCommand(mergeCmd)
}
