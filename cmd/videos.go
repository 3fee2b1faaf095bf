package main

import (
	"fmt"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/creatorops/tubectl/internal/yt"
)

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "List, inspect, and edit channel videos",
}

var videosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the channel's uploads, newest first",
	RunE:  runVideosList,
}

var videosGetCmd = &cobra.Command{
	Use:   "get <video-id>",
	Short: "Show one video's metadata and stats",
	Args:  cobra.ExactArgs(1),
	RunE:  runVideosGet,
}

var videosUpdateCmd = &cobra.Command{
	Use:   "update <video-id>",
	Short: "Update a single video's metadata",
	Long: `Updates title, description, or tags of one video. Only the given flags
change; every other field is carried over from the current remote state.

Examples:
  tubectl videos update VIDEO_ID --title "New title"
  tubectl videos update VIDEO_ID --tags "go,tutorial,backend"`,
	Args: cobra.ExactArgs(1),
	RunE: runVideosUpdate,
}

func init() {
	videosListCmd.Flags().Int("limit", 0, "maximum number of videos (0=all)")
	videosListCmd.Flags().String("sort", "date", "sort order: date, views, or likes")

	f := videosUpdateCmd.Flags()
	f.String("title", "", "new title")
	f.String("description", "", "new description")
	f.String("tags", "", "comma-separated replacement tag list")
	f.Bool("dry-run", false, "show the change without writing it")

	videosCmd.AddCommand(videosListCmd, videosGetCmd, videosUpdateCmd)
	rootCmd.AddCommand(videosCmd)
}

// listUploads drains the uploads playlist up to limit.
func listUploads(cmd *cobra.Command, limit int) ([]yt.Video, error) {
	ctx := cmd.Context()
	_, client, channel, err := connect(ctx)
	if err != nil {
		return nil, err
	}
	videos, err := client.Uploads(channel.UploadsPlaylist).Collect(ctx, limit)
	if err != nil {
		return nil, eris.Wrap(err, "list uploads")
	}
	zap.L().Debug("uploads listed",
		zap.Int("videos", len(videos)),
		zap.Int64("api_calls", client.Calls()),
	)
	return videos, nil
}

func runVideosList(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	sortArg, _ := cmd.Flags().GetString("sort")

	videos, err := listUploads(cmd, limit)
	if err != nil {
		return err
	}
	if err := sortVideos(videos, sortArg); err != nil {
		return err
	}

	if format != "table" {
		return render(format, videos)
	}
	printVideoTable(videos)
	return nil
}

// sortVideos reorders in place. The uploads playlist already arrives newest
// first, so "date" keeps the remote order.
func sortVideos(videos []yt.Video, order string) error {
	switch order {
	case "date":
		return nil
	case "views":
		sort.SliceStable(videos, func(i, j int) bool { return videos[i].Views > videos[j].Views })
	case "likes":
		sort.SliceStable(videos, func(i, j int) bool { return videos[i].Likes > videos[j].Likes })
	default:
		return eris.Errorf("videos list: unsupported sort %q (date, views, likes)", order)
	}
	return nil
}

func printVideoTable(videos []yt.Video) {
	fmt.Printf("%-12s %-50s %-11s %12s %8s %7s\n",
		"ID", "Title", "Published", "Views", "Likes", "Eng%")
	fmt.Println(strings.Repeat("-", 105))
	for _, v := range videos {
		fmt.Printf("%-12s %-50s %-11s %12s %8s %6.2f%%\n",
			v.ID,
			truncate(v.Title, 50),
			v.PublishedAt.Format("2006-01-02"),
			formatCount(v.Views),
			formatCount(v.Likes),
			v.EngagementRate(),
		)
	}
	fmt.Printf("\n%d videos\n", len(videos))
}

func runVideosGet(cmd *cobra.Command, args []string) error {
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

	if format != "table" {
		return render(format, video)
	}

	fmt.Printf("ID:          %s\n", video.ID)
	fmt.Printf("Title:       %s\n", video.Title)
	fmt.Printf("Published:   %s\n", video.PublishedAt.Format("2006-01-02"))
	fmt.Printf("Privacy:     %s\n", video.Privacy)
	fmt.Printf("Duration:    %s\n", video.Duration)
	fmt.Printf("Views:       %s\n", formatCount(video.Views))
	fmt.Printf("Likes:       %s\n", formatCount(video.Likes))
	fmt.Printf("Comments:    %s\n", formatCount(video.Comments))
	fmt.Printf("Engagement:  %.2f%%\n", video.EngagementRate())
	fmt.Printf("Tags:        %s\n", strings.Join(video.Tags, ", "))
	if video.Description != "" {
		fmt.Printf("\n%s\n", video.Description)
	}
	return nil
}

func runVideosUpdate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	tags, _ := cmd.Flags().GetString("tags")
	if title == "" && description == "" && tags == "" {
		return eris.New("videos update: nothing to change (use --title, --description, or --tags)")
	}

	sess, err := newSession(ctx)
	if err != nil {
		return err
	}
	client := newClient(sess)

	current, err := client.GetVideo(ctx, args[0])
	if err != nil {
		return err
	}

	upd := yt.UpdateFrom(current)
	if title != "" {
		upd.Title = title
	}
	if description != "" {
		upd.Description = description
	}
	if tags != "" {
		upd.Tags = splitAndTrim(tags)
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		fmt.Printf("Would update %s (dry run, nothing written):\n", args[0])
		if title != "" {
			fmt.Printf("  title: %s -> %s\n", current.Title, upd.Title)
		}
		if description != "" {
			fmt.Printf("  description: %d -> %d chars\n",
				utf8.RuneCountInString(current.Description), utf8.RuneCountInString(upd.Description))
		}
		if tags != "" {
			fmt.Printf("  tags: [%s] -> [%s]\n", strings.Join(current.Tags, ", "), strings.Join(upd.Tags, ", "))
		}
		return nil
	}

	if err := client.UpdateVideo(ctx, upd); err != nil {
		return err
	}
	fmt.Printf("Updated %s\n", args[0])
	return nil
}
