package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/creatorops/tubectl/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "tubectl",
	Short: "Manage a video channel from the command line",
	Long: "Lists and edits channel videos, runs bulk metadata search/replace with a\n" +
		"dry-run preview, and queries the analytics API for comparisons, benchmarks,\n" +
		"trends, and channel health checks.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
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

func init() {
	rootCmd.PersistentFlags().String("format", "table", "output format: table, json, or yaml")
}

// exitError carries a specific process exit code. Commands whose result is
// itself a status (health, bulk apply) use it instead of plain exit 1.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func main() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}
