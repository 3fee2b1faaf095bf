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

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark <video-id>",
	Short: "Rank one video against the channel's other videos",
	Long: `Computes a video's percentile for one metric among the channel's videos over
a period. The video itself is excluded from its peer set.

Examples:
  # Where does this video rank by views over the last 90 days?
  tubectl benchmark VIDEO_ID

  # Rank by watch time over a custom window
  tubectl benchmark VIDEO_ID --metric estimatedMinutesWatched --days 30`,
	Args: cobra.ExactArgs(1),
	RunE: runBenchmark,
}

func init() {
	f := benchmarkCmd.Flags()
	f.String("metric", "views", "metric to rank by")
	f.Int("days", 90, "period length in days")
	f.String("end", "", "period end date (YYYY-MM-DD, default yesterday)")
	f.Int("limit", 200, "maximum number of peer videos")
	rootCmd.AddCommand(benchmarkCmd)
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	videoID := args[0]
	metric, _ := cmd.Flags().GetString("metric")
	days, _ := cmd.Flags().GetInt("days")
	limit, _ := cmd.Flags().GetInt("limit")
	end, err := dateFlag(cmd, "end", yesterday())
	if err != nil {
		return err
	}

	sess, client, channel, err := connect(ctx)
	if err != nil {
		return err
	}

	period := derive.LastNDays(end, days)
	rep, err := runRawReport(ctx, sess, client, channel.ID, report.Raw{
		Metrics:    []string{metric},
		Dimensions: []string{"video"},
		Start:      period.Start,
		End:        period.End,
		Sort:       "-" + metric,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	population := rep.Column(metric)
	subject := -1.0
	for i, row := range rep.Rows {
		if len(row.Dimensions) > 0 && row.Dimensions[0] == videoID {
			v, _ := rep.Metric(i, metric)
			subject = v
			break
		}
	}
	if subject < 0 {
		return eris.Errorf("benchmark: video %s has no %s data in the last %dd", videoID, metric, days)
	}

	bench := derive.Rank(metric, subject, derive.ExcludeSelf(population, subject))

	if format != "table" {
		return render(format, bench)
	}

	fmt.Printf("Video:      %s\n", videoID)
	fmt.Printf("Metric:     %s (%s)\n", bench.Metric, period.Label)
	fmt.Printf("Value:      %s\n", numFmt.Sprintf("%.0f", bench.Subject))
	fmt.Printf("Peers:      %d\n", bench.Peers)
	fmt.Printf("Percentile: %.1f\n", bench.Percentile)
	fmt.Printf("Top:        %d%%\n", bench.TopPercent)
	return nil
}
