package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/creatorops/tubectl/internal/derive"
	"github.com/creatorops/tubectl/internal/yt"
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Read and summarize video comments",
}

var commentsListCmd = &cobra.Command{
	Use:   "list <video-id>",
	Short: "List a video's top comments, most relevant first",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsList,
}

var commentsSummaryCmd = &cobra.Command{
	Use:   "summary <video-id>",
	Short: "Keyword-based sentiment breakdown of a video's comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsSummary,
}

func init() {
	commentsListCmd.Flags().Int("limit", 20, "maximum number of comments")
	commentsSummaryCmd.Flags().Int("limit", 100, "maximum number of comments to analyze")
	commentsCmd.AddCommand(commentsListCmd, commentsSummaryCmd)
	rootCmd.AddCommand(commentsCmd)
}

// fetchComments reads the --limit flag and pulls the video's top comments.
func fetchComments(cmd *cobra.Command, videoID string) ([]yt.Comment, error) {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	sess, err := newSession(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := newClient(sess).CommentThreads(ctx, videoID, limit)
	if err != nil {
		var rerr *yt.RemoteError
		if errors.As(err, &rerr) && rerr.Kind == yt.KindRejected {
			return nil, eris.Wrap(err, "fetch comments (comments may be disabled for this video)")
		}
		return nil, err
	}
	return comments, nil
}

func runCommentsList(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	comments, err := fetchComments(cmd, args[0])
	if err != nil {
		return err
	}
	zap.L().With(zap.String("command", "comments")).Debug("comments fetched",
		zap.String("video_id", args[0]),
		zap.Int("comments", len(comments)),
	)

	if format != "table" {
		return render(format, comments)
	}

	fmt.Printf("Comments (%d)\n\n", len(comments))
	now := time.Now()
	for _, c := range comments {
		likes := ""
		if c.Likes > 0 {
			likes = fmt.Sprintf(" (%s likes)", formatCount(c.Likes))
		}
		fmt.Printf("%s%s %s\n", c.Author, likes, timeAgo(c.PublishedAt, now))
		fmt.Printf("  %s\n\n", truncate(c.Text, 150))
	}
	return nil
}

func runCommentsSummary(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	comments, err := fetchComments(cmd, args[0])
	if err != nil {
		return err
	}
	if len(comments) == 0 {
		fmt.Println("No comments found")
		return nil
	}

	sum := derive.AnalyzeSentiment(comments)
	if format != "table" {
		return render(format, sum)
	}

	fmt.Printf("Comment sentiment (%d analyzed)\n\n", sum.Total)
	pct := func(n int) float64 { return float64(n) / float64(sum.Total) * 100 }
	fmt.Printf("%-10s %6d %6.1f%%\n", "positive", sum.Positive, pct(sum.Positive))
	fmt.Printf("%-10s %6d %6.1f%%\n", "negative", sum.Negative, pct(sum.Negative))
	fmt.Printf("%-10s %6d %6.1f%%\n", "neutral", sum.Neutral, pct(sum.Neutral))

	if len(sum.Flagged) > 0 {
		fmt.Println("\nNegative comments:")
		for _, c := range sum.Flagged {
			fmt.Printf("  %s: %s\n", c.Author, truncate(c.Text, 100))
		}
	}
	return nil
}

// timeAgo renders a coarse relative age for comment listings.
func timeAgo(t, now time.Time) string {
	d := now.Sub(t)
	days := int(d.Hours() / 24)
	switch {
	case days > 365:
		return fmt.Sprintf("%dy ago", days/365)
	case days > 30:
		return fmt.Sprintf("%dmo ago", days/30)
	case days > 0:
		return fmt.Sprintf("%dd ago", days)
	case d >= time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return "recently"
}
