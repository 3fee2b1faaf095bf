package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/creatorops/tubectl/internal/seo"
)

var seoCmd = &cobra.Command{
	Use:   "seo",
	Short: "Score video metadata against discoverability guidelines",
}

var seoCheckCmd = &cobra.Command{
	Use:   "check <video-id>",
	Short: "Score one video's metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runSEOCheck,
}

var seoAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Score recent uploads and report the weakest",
	RunE:  runSEOAudit,
}

func init() {
	seoAuditCmd.Flags().Int("limit", 50, "number of recent videos to audit (0=all)")
	seoCmd.AddCommand(seoCheckCmd, seoAuditCmd)
	rootCmd.AddCommand(seoCmd)
}

func seoThresholds() seo.Thresholds {
	return seo.Thresholds{
		TitleMin: cfg.SEO.TitleMin,
		TitleMax: cfg.SEO.TitleMax,
		DescMin:  cfg.SEO.DescMin,
		TagsMin:  cfg.SEO.TagsMin,
	}
}

func runSEOCheck(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	sess, err := newSession(ctx)
	if err != nil {
		return err
	}
	video, err := newClient(sess).GetVideo(ctx, args[0])
	if err != nil {
		return err
	}

	score := seo.Analyze(video, seoThresholds())
	if format != "table" {
		return render(format, score)
	}
	printScore(score)
	return nil
}

func printScore(s seo.Score) {
	fmt.Printf("%s  %s\n", s.VideoID, truncate(s.Title, 60))
	fmt.Printf("  total: %d/100\n", s.Total)
	fmt.Printf("  title: %d  %s\n", s.TitleScore, strings.Join(s.TitleIssues, "; "))
	fmt.Printf("  desc:  %d  %s\n", s.DescScore, strings.Join(s.DescIssues, "; "))
	fmt.Printf("  tags:  %d  %s\n", s.TagsScore, strings.Join(s.TagsIssues, "; "))
}

func runSEOAudit(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	videos, err := listUploads(cmd, limit)
	if err != nil {
		return err
	}

	scores, average := seo.Audit(videos, seoThresholds())
	if format != "table" {
		return render(format, struct {
			Average float64     `json:"average"`
			Scores  []seo.Score `json:"scores"`
		}{average, scores})
	}

	for _, s := range scores {
		if s.Total == 100 {
			continue
		}
		printScore(s)
	}
	fmt.Printf("\n%d videos audited, average score %.1f\n", len(scores), average)
	return nil
}
