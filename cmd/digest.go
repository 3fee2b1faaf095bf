package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/creatorops/tubectl/internal/derive"
	"github.com/creatorops/tubectl/internal/report"
	"github.com/creatorops/tubectl/internal/yt"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Period-over-period summary for several period lengths",
	Long: `Compares each requested period length against its own preceding period of
equal length, all ending on the same day. Each comparison is independent;
no comparison mixes periods of different lengths.

Examples:
  # Default weekly, monthly, quarterly digest
  tubectl digest

  # Custom lengths
  tubectl digest --periods 7,14,28`,
	RunE: runDigest,
}

func init() {
	f := digestCmd.Flags()
	f.String("periods", "7,28,90", "comma-separated period lengths in days")
	f.String("end", "", "end date (YYYY-MM-DD, default yesterday)")
	f.String("metrics", defaultCompareMetrics, "comma-separated metric names")
	rootCmd.AddCommand(digestCmd)
}

func runDigest(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	periodsArg, _ := cmd.Flags().GetString("periods")
	metricsArg, _ := cmd.Flags().GetString("metrics")
	end, err := dateFlag(cmd, "end", yesterday())
	if err != nil {
		return err
	}

	var lengths []int
	for _, s := range splitAndTrim(periodsArg) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return eris.Errorf("digest: invalid period length %q", s)
		}
		lengths = append(lengths, n)
	}
	if len(lengths) == 0 {
		return eris.New("digest: at least one period length is required")
	}

	sess, client, channel, err := connect(ctx)
	if err != nil {
		return err
	}
	metrics := splitAndTrim(metricsArg)

	fetch := func(p derive.Period) (*yt.Report, error) {
		return runRawReport(ctx, sess, client, channel.ID, report.Raw{
			Metrics: metrics, Start: p.Start, End: p.End,
		})
	}

	digest, err := derive.BuildDigest(fetch, end, lengths)
	if err != nil {
		return err
	}

	if format != "table" {
		return render(format, digest)
	}
	for _, entry := range digest.Entries {
		printComparison(entry.Comparison)
		fmt.Println()
	}
	return nil
}
