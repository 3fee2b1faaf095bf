package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/creatorops/tubectl/internal/report"
	"github.com/creatorops/tubectl/internal/yt"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run an analytics query",
	Long: `Builds and runs an analytics query from metrics, dimensions, filters, and a
date range. Metric and dimension names are validated locally before any API
call; a typo gets a suggestion instead of a remote 400.

Examples:
  # Daily views and watch time for January
  tubectl report --metrics views,estimatedMinutesWatched --dimensions day --start 2026-01-01 --end 2026-01-31

  # Top 10 videos by views
  tubectl report --metrics views --dimensions video --sort -views --limit 10 --start 2026-01-01 --end 2026-06-30

  # Views from one country
  tubectl report --metrics views --filters country=DE --start 2026-01-01 --end 2026-01-31`,
	RunE: runReport,
}

var reportFieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the available metrics and dimensions",
	RunE:  runReportFields,
}

func init() {
	f := reportCmd.Flags()
	f.String("metrics", "", "comma-separated metric names")
	f.String("dimensions", "", "comma-separated dimension names")
	f.String("filters", "", "comma-separated key=value filter pairs")
	f.String("start", "", "start date (YYYY-MM-DD)")
	f.String("end", "", "end date (YYYY-MM-DD)")
	f.String("sort", "", "metric to sort by, '-' prefix for descending")
	f.Int("limit", 0, "maximum number of rows")
	_ = reportCmd.MarkFlagRequired("metrics")

	reportCmd.AddCommand(reportFieldsCmd)
	rootCmd.AddCommand(reportCmd)
}

// reportRawFromFlags assembles the unvalidated query input from CLI flags.
func reportRawFromFlags(cmd *cobra.Command) (report.Raw, error) {
	metrics, _ := cmd.Flags().GetString("metrics")
	dimensions, _ := cmd.Flags().GetString("dimensions")
	filtersArg, _ := cmd.Flags().GetString("filters")
	sortArg, _ := cmd.Flags().GetString("sort")
	limit, _ := cmd.Flags().GetInt("limit")

	filters, err := parseFilters(filtersArg)
	if err != nil {
		return report.Raw{}, err
	}
	start, err := dateFlag(cmd, "start", time.Time{})
	if err != nil {
		return report.Raw{}, err
	}
	end, err := dateFlag(cmd, "end", time.Time{})
	if err != nil {
		return report.Raw{}, err
	}

	return report.Raw{
		Metrics:    splitAndTrim(metrics),
		Dimensions: splitAndTrim(dimensions),
		Filters:    filters,
		Start:      start,
		End:        end,
		Sort:       sortArg,
		Limit:      limit,
	}, nil
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	raw, err := reportRawFromFlags(cmd)
	if err != nil {
		return err
	}

	sess, client, channel, err := connect(ctx)
	if err != nil {
		return err
	}

	spec, err := report.Build(raw, sess.HasMonetaryScope())
	if err != nil {
		return err
	}

	rep, err := client.RunReport(ctx, spec.Query(channel.ID))
	if err != nil {
		return err
	}
	zap.L().Debug("report complete",
		zap.Int("rows", len(rep.Rows)),
		zap.Int64("api_calls", client.Calls()),
	)

	if format != "table" {
		return render(format, rep)
	}
	printReportTable(rep)
	return nil
}

func printReportTable(rep *yt.Report) {
	header := append(append([]string{}, rep.Dimensions...), rep.Metrics...)
	for _, h := range header {
		fmt.Printf("%-24s", h)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", 24*len(header)))

	for _, row := range rep.Rows {
		for _, d := range row.Dimensions {
			fmt.Printf("%-24s", truncate(d, 22))
		}
		for _, m := range row.Metrics {
			fmt.Printf("%-24s", numFmt.Sprintf("%v", m))
		}
		fmt.Println()
	}
	fmt.Printf("\n%d rows\n", len(rep.Rows))
}

func runReportFields(cmd *cobra.Command, _ []string) error {
	fmt.Println("Metrics:")
	for _, name := range report.MetricNames() {
		m := report.Metrics[name]
		note := ""
		if m.Monetary {
			note = " (monetary)"
		}
		fmt.Printf("  %-36s %s%s\n", name, m.Description, note)
	}

	fmt.Println("\nDimensions:")
	for _, name := range report.DimensionNames() {
		d := report.Dimensions[name]
		note := ""
		if d.FilterOnly {
			note = " (filter only)"
		}
		fmt.Printf("  %-36s %s%s\n", name, d.Description, note)
	}
	return nil
}
