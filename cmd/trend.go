package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/creatorops/tubectl/internal/derive"
	"github.com/creatorops/tubectl/internal/report"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show a gap-free time series",
	Long: `Runs a time-dimensioned query and renders every calendar bucket in the range,
including the ones the API returned no row for. Count metrics show 0 for
missing buckets; rate and average metrics show '-', since a rate over no data
is undefined rather than zero.

Examples:
  # Daily views for January
  tubectl trend --metrics views --start 2026-01-01 --end 2026-01-31

  # Monthly watch time for a year
  tubectl trend --metrics estimatedMinutesWatched --interval month --start 2025-01-01 --end 2025-12-31`,
	RunE: runTrend,
}

func init() {
	f := trendCmd.Flags()
	f.String("metrics", "views", "comma-separated metric names")
	f.String("interval", "day", "bucket width: day or month")
	f.String("start", "", "start date (YYYY-MM-DD)")
	f.String("end", "", "end date (YYYY-MM-DD)")
	_ = trendCmd.MarkFlagRequired("start")
	_ = trendCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(trendCmd)
}

func runTrend(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	metricsArg, _ := cmd.Flags().GetString("metrics")
	intervalArg, _ := cmd.Flags().GetString("interval")

	var interval derive.Interval
	switch intervalArg {
	case "day":
		interval = derive.IntervalDay
	case "month":
		interval = derive.IntervalMonth
	default:
		return eris.Errorf("trend: unsupported interval %q (day, month)", intervalArg)
	}

	startArg, _ := cmd.Flags().GetString("start")
	endArg, _ := cmd.Flags().GetString("end")
	start, err := parseDate(startArg)
	if err != nil {
		return err
	}
	end, err := parseDate(endArg)
	if err != nil {
		return err
	}

	sess, client, channel, err := connect(ctx)
	if err != nil {
		return err
	}

	rep, err := runRawReport(ctx, sess, client, channel.ID, report.Raw{
		Metrics:    splitAndTrim(metricsArg),
		Dimensions: []string{string(interval)},
		Start:      start,
		End:        end,
	})
	if err != nil {
		return err
	}

	series, err := derive.Trend(rep, interval, start, end)
	if err != nil {
		return err
	}

	if format != "table" {
		return render(format, series)
	}
	printSeries(series)
	return nil
}

func printSeries(series *derive.Series) {
	fmt.Printf("%-12s", "Bucket")
	for _, m := range series.Metrics {
		fmt.Printf(" %24s", m)
	}
	fmt.Println()

	for _, point := range series.Points {
		fmt.Printf("%-12s", point.Bucket)
		for _, m := range series.Metrics {
			v := point.Values[m]
			if v == nil {
				fmt.Printf(" %24s", "-")
			} else {
				fmt.Printf(" %24s", numFmt.Sprintf("%v", *v))
			}
		}
		fmt.Println()
	}
	fmt.Printf("\n%d buckets\n", len(series.Points))
}
