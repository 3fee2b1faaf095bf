package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/creatorops/tubectl/internal/derive"
	"github.com/creatorops/tubectl/internal/report"
)

// defaultCompareMetrics is the metric set period commands use unless
// overridden.
const defaultCompareMetrics = "views,estimatedMinutesWatched,likes,comments,subscribersGained"

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a period against the preceding one",
	Long: `Fetches the same metrics for a period and for the equal-length period
immediately before it, and shows per-metric deltas.

A percentage change is only shown when the previous value is non-zero; growth
from zero has no meaningful percentage.

Examples:
  # Last 28 days vs the 28 before
  tubectl compare

  # Last week, custom metrics
  tubectl compare --days 7 --metrics views,subscribersGained`,
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.Int("days", 28, "period length in days")
	f.String("end", "", "period end date (YYYY-MM-DD, default yesterday)")
	f.String("metrics", defaultCompareMetrics, "comma-separated metric names")
	rootCmd.AddCommand(compareCmd)
}

// yesterday is the default reporting end: today's data is still incomplete.
func yesterday() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	days, _ := cmd.Flags().GetInt("days")
	metricsArg, _ := cmd.Flags().GetString("metrics")
	end, err := dateFlag(cmd, "end", yesterday())
	if err != nil {
		return err
	}

	sess, client, channel, err := connect(ctx)
	if err != nil {
		return err
	}

	current := derive.LastNDays(end, days)
	previous := derive.Previous(current)
	metrics := splitAndTrim(metricsArg)

	curReport, err := runRawReport(ctx, sess, client, channel.ID, report.Raw{
		Metrics: metrics, Start: current.Start, End: current.End,
	})
	if err != nil {
		return err
	}
	prevReport, err := runRawReport(ctx, sess, client, channel.ID, report.Raw{
		Metrics: metrics, Start: previous.Start, End: previous.End,
	})
	if err != nil {
		return err
	}

	cmp := derive.Compare(curReport, prevReport, current, previous)

	if format != "table" {
		return render(format, cmp)
	}
	printComparison(cmp)
	return nil
}

func printComparison(cmp derive.Comparison) {
	fmt.Printf("%s (%s to %s) vs %s\n\n",
		cmp.Current.Label,
		cmp.Current.Start.Format("2006-01-02"),
		cmp.Current.End.Format("2006-01-02"),
		cmp.Previous.Label,
	)
	fmt.Printf("%-28s %14s %14s %12s %9s\n", "Metric", "Current", "Previous", "Delta", "Change")
	for _, d := range cmp.Deltas {
		change := "n/a"
		if d.DeltaPct != nil {
			change = fmt.Sprintf("%+.1f%%", *d.DeltaPct)
		}
		fmt.Printf("%-28s %14s %14s %+12.0f %9s\n",
			d.Metric,
			numFmt.Sprintf("%.0f", d.Current),
			numFmt.Sprintf("%.0f", d.Previous),
			d.Delta,
			change,
		)
	}
}
