package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/creatorops/tubectl/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the video platform",
	Long: `Runs the OAuth browser flow and stores the resulting grant locally.

By default the grant covers read access and metadata editing. Revenue metrics
(estimatedRevenue, cpm, playbackBasedCpm, ...) need the monetary scope, which
is only requested with --monetary.

Examples:
  # Standard login
  tubectl login

  # Login including revenue metrics access
  tubectl login --monetary`,
	RunE: runLogin,
}

func init() {
	f := loginCmd.Flags()
	f.Bool("monetary", false, "also request the revenue-metrics scope")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Auth.ClientID == "" || cfg.Auth.ClientSecret == "" {
		return eris.New("login: auth.client_id and auth.client_secret must be configured " +
			"(config file or TUBECTL_AUTH_CLIENT_ID / TUBECTL_AUTH_CLIENT_SECRET)")
	}

	monetary, _ := cmd.Flags().GetBool("monetary")
	scopes := []string{auth.ScopeReadonly, auth.ScopeForceSSL, auth.ScopeAnalyticsReadonly}
	if monetary {
		scopes = append(scopes, auth.ScopeMonetaryReadonly)
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", cfg.Auth.CallbackPort))
	if err != nil {
		return eris.Wrapf(err, "login: listen on callback port %d", cfg.Auth.CallbackPort)
	}
	defer listener.Close() //nolint:errcheck

	conf := &oauth2.Config{
		ClientID:     cfg.Auth.ClientID,
		ClientSecret: cfg.Auth.ClientSecret,
		Endpoint:     auth.Endpoint,
		Scopes:       scopes,
		RedirectURL:  fmt.Sprintf("http://%s/callback", listener.Addr().String()),
	}

	state := uuid.NewString()
	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	fmt.Println("Open this URL in your browser to authorize:")
	fmt.Println()
	fmt.Println("  " + authURL)
	fmt.Println()
	fmt.Println("Waiting for the callback...")

	code, err := waitForCallback(ctx, listener, state)
	if err != nil {
		return err
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return eris.Wrap(err, "login: exchange authorization code")
	}

	store := auth.NewStore(cfg.Auth.CredentialsFile())
	if err := store.Save(auth.GrantFromToken(conf, tok)); err != nil {
		return err
	}

	zap.L().Info("login complete",
		zap.String("credentials", store.Path()),
		zap.Bool("monetary", monetary),
	)
	fmt.Printf("Authenticated. Grant stored at %s\n", store.Path())
	return nil
}

// callbackResult is what the loopback handler hands back to the flow.
type callbackResult struct {
	code string
	err  error
}

// waitForCallback serves exactly one OAuth redirect on the loopback listener
// and returns the authorization code.
func waitForCallback(ctx context.Context, listener net.Listener, state string) (string, error) {
	results := make(chan callbackResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("state") != state:
			http.Error(w, "state mismatch", http.StatusBadRequest)
			results <- callbackResult{err: eris.New("login: state mismatch in callback")}
		case q.Get("error") != "":
			http.Error(w, "authorization denied", http.StatusBadRequest)
			results <- callbackResult{err: eris.Errorf("login: authorization denied: %s", q.Get("error"))}
		case q.Get("code") == "":
			http.Error(w, "missing code", http.StatusBadRequest)
			results <- callbackResult{err: eris.New("login: callback without authorization code")}
		default:
			fmt.Fprintln(w, "Authenticated. You can close this tab and return to the terminal.")
			results <- callbackResult{code: q.Get("code")}
		}
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			results <- callbackResult{err: eris.Wrap(err, "login: callback server")}
		}
	}()
	defer srv.Close() //nolint:errcheck

	select {
	case <-ctx.Done():
		return "", eris.Wrap(ctx.Err(), "login: cancelled while waiting for callback")
	case res := <-results:
		return res.code, res.err
	}
}
