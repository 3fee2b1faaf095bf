package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/creatorops/tubectl/internal/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect or clear the stored grant",
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current authentication state",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored grant",
	RunE:  runAuthLogout,
}

func init() {
	authCmd.AddCommand(authStatusCmd, authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := auth.NewStore(cfg.Auth.CredentialsFile())
	grant, err := store.Load()
	if err != nil {
		return err
	}
	if grant == nil {
		fmt.Println("Not authenticated. Run 'tubectl login'.")
		return nil
	}

	sess, err := auth.NewSession(ctx, store)
	if err != nil {
		return err
	}

	fmt.Printf("Credentials: %s\n", store.Path())
	fmt.Printf("Monetary:    %v\n", sess.HasMonetaryScope())
	fmt.Println("Scopes:")
	for _, s := range sess.Scopes() {
		fmt.Printf("  %s\n", s)
	}

	// Confirm the grant still works against the live service.
	channel, err := newClient(sess).MyChannel(ctx)
	if err != nil {
		fmt.Println("Grant check: FAILED")
		return err
	}
	fmt.Printf("Channel:     %s (%s)\n", channel.Title, channel.ID)
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	store := auth.NewStore(cfg.Auth.CredentialsFile())
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Println("Grant removed.")
	return nil
}
