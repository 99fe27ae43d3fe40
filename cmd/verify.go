package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/webfix-cli/internal/corrector"
	"github.com/sells-group/webfix-cli/internal/dataset"
	"github.com/sells-group/webfix-cli/internal/liveness"
)

var (
	verifyJSON    string
	verifyReport  string
	verifyTimeout int
	verifyNoCache bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Probe every webpage and replace dead ones",
	Long: `Checks the HTTP status of every webpage in the JSON dataset. URLs
returning 404 or 423 are replaced with candidates from the AI provider
chain; a candidate is accepted only if its own probe comes back healthy.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		resolver, closeCache, err := buildResolver(cfg, !verifyNoCache)
		if err != nil {
			return err
		}
		if closeCache != nil {
			defer closeCache() //nolint:errcheck
		}

		timeout := cfg.Liveness.TimeoutSecs
		if verifyTimeout > 0 {
			timeout = verifyTimeout
		}
		checker := liveness.NewChecker(
			liveness.WithTimeout(time.Duration(timeout)*time.Second),
			liveness.WithUserAgent(cfg.Liveness.UserAgent),
			liveness.WithRateLimit(cfg.Liveness.RatePerSec),
		)

		ds, err := dataset.LoadJSON(verifyJSON)
		if err != nil {
			return eris.Wrap(err, "verify: load json")
		}

		corr := corrector.New(corrector.Params{
			Mode:     corrector.ModeLiveness,
			Checker:  checker,
			Resolver: resolver,
		})
		s, err := corr.Run(ctx, ds)
		if err != nil {
			return err
		}

		return finishPass([]*corrector.Summary{s}, verifyReport)
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyJSON, "json", "companies-by-revenue.json", "JSON dataset path")
	verifyCmd.Flags().StringVar(&verifyReport, "report", "", "write an xlsx correction report to this path")
	verifyCmd.Flags().IntVar(&verifyTimeout, "timeout", 0, "probe timeout in seconds (overrides config)")
	verifyCmd.Flags().BoolVar(&verifyNoCache, "no-cache", false, "bypass the resolution cache")
	rootCmd.AddCommand(verifyCmd)
}
