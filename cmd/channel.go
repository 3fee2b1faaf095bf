package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var channelCmd = &cobra.Command{
	Use:   "channel",
	Short: "Show the authenticated channel",
	RunE:  runChannel,
}

func init() {
	rootCmd.AddCommand(channelCmd)
}

func runChannel(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	_, _, channel, err := connect(ctx)
	if err != nil {
		return err
	}

	if format != "table" {
		return render(format, channel)
	}

	fmt.Printf("Channel:     %s\n", channel.Title)
	fmt.Printf("ID:          %s\n", channel.ID)
	fmt.Printf("Subscribers: %s\n", formatCount(channel.Subscribers))
	fmt.Printf("Total views: %s\n", formatCount(channel.TotalViews))
	fmt.Printf("Videos:      %s\n", formatCount(channel.VideoCount))
	return nil
}
