package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/webfix-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "webfix",
	Short: "Corrects webpage fields in construction-company datasets",
	Long: "Replaces non-brand webpage URLs (investor relations, stock quotes, filings) " +
		"and dead URLs in company CSV/JSON datasets with official corporate sites " +
		"resolved through a prioritized chain of AI providers.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; config and env vars are the real source
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
