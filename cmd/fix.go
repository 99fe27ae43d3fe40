package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/webfix-cli/internal/classify"
	"github.com/sells-group/webfix-cli/internal/corrector"
	"github.com/sells-group/webfix-cli/internal/dataset"
)

var (
	fixCSVs    []string
	fixJSON    string
	fixLimit   int
	fixReport  string
	fixNoCache bool
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Replace non-brand webpages with official company sites",
	Long: `Scans the webpage field of the given datasets. URLs matching the
non-brand rule set (stock quotes, investor relations, filings) are replaced
with official corporate sites from the AI provider chain. In the JSON
dataset, listed companies with no webpage at all are also corrected, since a
missing value falls back to a financial-quote page downstream.

Examples:
  # Fix the default CDC datasets
  webfix fix

  # Cap the pass at 5 replacements
  webfix fix --limit 5

  # Single CSV with an xlsx report
  webfix fix --csv companies.csv --json "" --report corrections.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		classifier, err := classify.NewFromRulesFile(cfg.Classify.RulesFile)
		if err != nil {
			return eris.Wrap(err, "fix: build classifier")
		}

		resolver, closeCache, err := buildResolver(cfg, !fixNoCache)
		if err != nil {
			return err
		}
		if closeCache != nil {
			defer closeCache() //nolint:errcheck
		}

		budget := corrector.NewBudget(fixLimit)
		var summaries []*corrector.Summary

		// CSV passes: classification only.
		csvCorr := corrector.New(corrector.Params{
			Mode:       corrector.ModeClassification,
			Classifier: classifier,
			Resolver:   resolver,
			Budget:     budget,
		})
		for _, path := range fixCSVs {
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
				return eris.Wrap(err, "fix: load csv")
			}
			s, err := csvCorr.Run(ctx, ds)
			if err != nil {
				return err
			}
			summaries = append(summaries, s)
		}

		// JSON pass: classification plus missing-with-indicator.
		if fixJSON != "" {
			if _, err := os.Stat(fixJSON); err == nil && !budget.Exhausted() {
				ds, err := dataset.LoadJSON(fixJSON)
				if err != nil {
					return eris.Wrap(err, "fix: load json")
				}
				jsonCorr := corrector.New(corrector.Params{
					Mode:       corrector.ModeClassification,
					Classifier: classifier,
					Resolver:   resolver,
					FixMissing: true,
					Budget:     budget,
				})
				s, err := jsonCorr.Run(ctx, ds)
				if err != nil {
					return err
				}
				summaries = append(summaries, s)
			}
		}

		return finishPass(summaries, fixReport)
	},
}

func init() {
	fixCmd.Flags().StringSliceVar(&fixCSVs, "csv",
		[]string{"CDC_midbln.csv", "CDC_IPO.csv", "CDC_CIS_100mln.csv"},
		"CSV dataset paths (missing files are skipped)")
	fixCmd.Flags().StringVar(&fixJSON, "json", "companies-by-revenue.json",
		"JSON dataset path (empty to skip)")
	fixCmd.Flags().IntVar(&fixLimit, "limit", 0, "max replacements across all datasets (0 = unlimited)")
	fixCmd.Flags().StringVar(&fixReport, "report", "", "write an xlsx correction report to this path")
	fixCmd.Flags().BoolVar(&fixNoCache, "no-cache", false, "bypass the resolution cache")
	rootCmd.AddCommand(fixCmd)
}

// finishPass logs run totals and writes the optional xlsx report.
func finishPass(summaries []*corrector.Summary, reportPath string) error {
	var replaced, failed, unchanged int
	for _, s := range summaries {
		replaced += s.Replaced
		failed += s.Failed
		unchanged += s.Unchanged
	}
	zap.L().Info("all passes complete",
		zap.Int("datasets", len(summaries)),
		zap.Int("replaced", replaced),
		zap.Int("failed", failed),
		zap.Int("unchanged", unchanged),
	)

	if reportPath != "" {
		if err := corrector.WriteReport(reportPath, summaries); err != nil {
			return err
		}
		zap.L().Info("report written", zap.String("path", reportPath))
	}
	return nil
}
