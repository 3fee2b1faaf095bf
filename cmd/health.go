package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/creatorops/tubectl/internal/derive"
	"github.com/creatorops/tubectl/internal/report"
	"github.com/creatorops/tubectl/internal/yt"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Run the channel health check",
	Long: `Evaluates the channel against alert rules over a period:

  viral_candidate   a video's views exceed the channel average by a multiple
  engagement_drop   the engagement rate fell sharply vs the previous period
  subscriber_spike  net subscriber gain far above the trailing weekly average

The exit code reflects the verdict: 0 ok, 1 attention (informational alerts
only), 2 warning. Thresholds are configurable under the 'health' config key.`,
	RunE: runHealth,
}

func init() {
	f := healthCmd.Flags()
	f.Int("days", 7, "period length in days")
	f.String("end", "", "period end date (YYYY-MM-DD, default yesterday)")
	f.Int("limit", 50, "number of recent videos to scan for viral candidates")
	rootCmd.AddCommand(healthCmd)
}

// trailingWeeks is the lookback used to establish the subscriber baseline.
const trailingWeeks = 4

func runHealth(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
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

	current := derive.LastNDays(end, days)
	previous := derive.Previous(current)

	videos, err := client.Uploads(channel.UploadsPlaylist).Collect(ctx, limit)
	if err != nil {
		return err
	}
	var avgViews float64
	if len(videos) > 0 {
		var total int64
		for _, v := range videos {
			total += v.Views
		}
		avgViews = float64(total) / float64(len(videos))
	}

	engagementMetrics := []string{"views", "likes", "comments", "subscribersGained", "subscribersLost"}
	curReport, err := runRawReport(ctx, sess, client, channel.ID, report.Raw{
		Metrics: engagementMetrics, Start: current.Start, End: current.End,
	})
	if err != nil {
		return err
	}
	prevReport, err := runRawReport(ctx, sess, client, channel.ID, report.Raw{
		Metrics: engagementMetrics, Start: previous.Start, End: previous.End,
	})
	if err != nil {
		return err
	}

	trailing := derive.LastNDays(end, trailingWeeks*7)
	trailingReport, err := runRawReport(ctx, sess, client, channel.ID, report.Raw{
		Metrics: []string{"subscribersGained", "subscribersLost"},
		Start:   trailing.Start, End: trailing.End,
	})
	if err != nil {
		return err
	}

	input := derive.HealthInput{
		Period:            current,
		Videos:            videos,
		ChannelAvgViews:   avgViews,
		EngagementPct:     engagementPct(curReport),
		PrevEngagementPct: engagementPct(prevReport),
		NetSubscribers:    curReport.Total("subscribersGained") - curReport.Total("subscribersLost"),
		TrailingWeeklyAvgSubs: (trailingReport.Total("subscribersGained") -
			trailingReport.Total("subscribersLost")) / trailingWeeks,
	}

	verdict := derive.CheckHealth(input, derive.Thresholds{
		ViralMultiplier:       cfg.Health.ViralMultiplier,
		EngagementDropPct:     cfg.Health.EngagementDropPct,
		SubscriberSpikeFactor: cfg.Health.SubscriberSpikeFactor,
	})
	zap.L().Info("health check complete",
		zap.String("status", verdict.Status.String()),
		zap.Int("alerts", len(verdict.Alerts)),
	)

	if format != "table" {
		if err := render(format, verdict); err != nil {
			return err
		}
	} else {
		printVerdict(verdict)
	}

	if verdict.Status != derive.StatusOK {
		return &exitError{code: int(verdict.Status), msg: verdict.Summary}
	}
	return nil
}

// engagementPct is (likes+comments)/views as a percentage over a report's
// totals, 0 when there were no views.
func engagementPct(rep *yt.Report) float64 {
	views := rep.Total("views")
	if views == 0 {
		return 0
	}
	return (rep.Total("likes") + rep.Total("comments")) / views * 100
}

func printVerdict(v derive.Verdict) {
	fmt.Printf("Health: %s (%s, %s to %s)\n",
		v.Status,
		v.Period.Label,
		v.Period.Start.Format("2006-01-02"),
		v.Period.End.Format("2006-01-02"),
	)
	for _, a := range v.Alerts {
		fmt.Printf("  [%s] %s: %s\n", a.Severity, a.Type, a.Detail)
	}
	fmt.Println(v.Summary)
}
