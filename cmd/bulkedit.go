package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/creatorops/tubectl/internal/bulkedit"
)

var bulkEditCmd = &cobra.Command{
	Use:   "bulk-edit",
	Short: "Search/replace across video metadata",
	Long: `Scans the channel's uploads and proposes a search/replace over one field.

The default is a dry run: the proposed changes are printed and nothing is
written. Pass --execute to apply. Each record is re-checked right before
writing and skipped when its remote value changed since the plan was computed,
so re-running an interrupted apply is safe.

Examples:
  # Preview a literal replacement in titles
  tubectl bulk-edit --field title --pattern "2023" --replace "2024"

  # Regex rewrite of descriptions, then apply it
  tubectl bulk-edit --field description --regex --pattern "old\.example\.com/\w+" --replace "new.example.com" --execute

  # Rename a tag everywhere
  tubectl bulk-edit --field tags --pattern "golang" --replace "go" --execute`,
	RunE: runBulkEdit,
}

func init() {
	f := bulkEditCmd.Flags()
	f.String("field", "", "field to edit: title, description, or tags")
	f.String("pattern", "", "text or regular expression to search for")
	f.String("replace", "", "replacement text")
	f.Bool("regex", false, "treat the pattern as a regular expression")
	f.Bool("execute", false, "apply the changes (default is dry run)")
	f.Int("limit", 0, "maximum number of videos to scan (0=config default)")
	_ = bulkEditCmd.MarkFlagRequired("field")
	_ = bulkEditCmd.MarkFlagRequired("pattern")
	rootCmd.AddCommand(bulkEditCmd)
}

func runBulkEdit(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	fieldName, _ := cmd.Flags().GetString("field")
	pattern, _ := cmd.Flags().GetString("pattern")
	replace, _ := cmd.Flags().GetString("replace")
	regex, _ := cmd.Flags().GetBool("regex")
	execute, _ := cmd.Flags().GetBool("execute")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.BulkEdit.MaxCandidates
	}

	field, err := bulkedit.ParseField(fieldName)
	if err != nil {
		return err
	}
	spec := bulkedit.MatchSpec{
		Field:       field,
		Pattern:     pattern,
		Regex:       regex,
		Replacement: replace,
	}

	log := zap.L().With(zap.String("command", "bulk-edit"))

	// One client serves both the scan and the apply phase, so its counter
	// is the whole invocation's call budget.
	_, client, channel, err := connect(ctx)
	if err != nil {
		return err
	}
	videos, err := client.Uploads(channel.UploadsPlaylist).Collect(ctx, limit)
	if err != nil {
		return eris.Wrap(err, "list uploads")
	}

	plan, err := bulkedit.Build(videos, spec)
	if err != nil {
		return err
	}
	log.Info("plan computed",
		zap.String("plan_id", plan.ID),
		zap.Int("scanned", len(plan.Items)),
		zap.Int("changed", plan.Changed()),
		zap.Int64("api_calls", client.Calls()),
	)

	if !execute {
		if format != "table" {
			return render(format, plan)
		}
		printPlan(plan)
		return nil
	}

	result, execErr := bulkedit.NewExecutor(client).Execute(ctx, plan, bulkedit.ModeApply)
	log.Debug("apply finished", zap.Int64("api_calls", client.Calls()))
	if result != nil {
		if format != "table" {
			if err := render(format, result); err != nil {
				return err
			}
		} else {
			printResult(result)
		}
	}
	if execErr != nil {
		return execErr
	}
	if result.Failed > 0 {
		return &exitError{code: 1, msg: fmt.Sprintf("%d of %d records failed", result.Failed, result.Attempted)}
	}
	return nil
}

func printPlan(plan *bulkedit.Plan) {
	fmt.Printf("Plan %s (dry run, nothing written)\n\n", plan.ID)
	for _, item := range plan.Items {
		if !item.WillChange {
			continue
		}
		fmt.Printf("%s %s:\n", item.VideoID, item.Field)
		if item.Field == bulkedit.FieldTags {
			fmt.Printf("  - %s\n", strings.Join(item.OldTags, ", "))
			fmt.Printf("  + %s\n", strings.Join(item.NewTags, ", "))
		} else {
			fmt.Printf("  - %s\n", truncate(item.Old, 100))
			fmt.Printf("  + %s\n", truncate(item.New, 100))
		}
	}
	fmt.Printf("\n%d of %d videos would change. Re-run with --execute to apply.\n",
		plan.Changed(), len(plan.Items))
}

func printResult(result *bulkedit.Result) {
	for _, o := range result.Outcomes {
		if o.Status == bulkedit.StatusSkipped && o.Detail == "no match" {
			continue
		}
		if o.Detail != "" {
			fmt.Printf("%-12s %-8s %s\n", o.VideoID, o.Status, o.Detail)
		} else {
			fmt.Printf("%-12s %-8s\n", o.VideoID, o.Status)
		}
	}
	fmt.Printf("\nattempted %d, applied %d, skipped %d, failed %d\n",
		result.Attempted, result.Applied, result.Skipped, result.Failed)
}
