package main

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/creatorops/tubectl/internal/auth"
	"github.com/creatorops/tubectl/internal/report"
	"github.com/creatorops/tubectl/internal/yt"
)

// newSession opens the stored grant. Every authenticated command starts here.
func newSession(ctx context.Context) (*auth.Session, error) {
	store := auth.NewStore(cfg.Auth.CredentialsFile())
	return auth.NewSession(ctx, store)
}

// newClient builds the API client from config on top of a session.
func newClient(sess *auth.Session) *yt.Client {
	return yt.NewClient(sess.HTTPClient(),
		yt.WithBaseURLs(cfg.API.DataBaseURL, cfg.API.AnalyticsBaseURL),
		yt.WithTimeout(time.Duration(cfg.API.TimeoutSecs)*time.Second),
		yt.WithRateLimit(cfg.API.RatePerSec, cfg.API.RateBurst),
		yt.WithPageSize(cfg.API.PageSize),
	)
}

// connect is the common session+client+channel preamble.
func connect(ctx context.Context) (*auth.Session, *yt.Client, *yt.Channel, error) {
	sess, err := newSession(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	client := newClient(sess)
	channel, err := client.MyChannel(ctx)
	if err != nil {
		return nil, nil, nil, eris.Wrap(err, "resolve channel")
	}
	return sess, client, channel, nil
}

// runRawReport validates raw input against the session's capabilities and
// executes the resulting query.
func runRawReport(ctx context.Context, sess *auth.Session, client *yt.Client, channelID string, raw report.Raw) (*yt.Report, error) {
	spec, err := report.Build(raw, sess.HasMonetaryScope())
	if err != nil {
		return nil, err
	}
	return client.RunReport(ctx, spec.Query(channelID))
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, eris.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// dateFlag parses a date flag, defaulting to def when unset.
func dateFlag(cmd *cobra.Command, name string, def time.Time) (time.Time, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return def, nil
	}
	return parseDate(s)
}

func splitAndTrim(s string) []string {
	var result []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// parseFilters turns "key=value,key=value" into a map.
func parseFilters(s string) (map[string]string, error) {
	if s == "" {
		return nil, nil
	}
	filters := make(map[string]string)
	for _, pair := range splitAndTrim(s) {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" || value == "" {
			return nil, eris.Errorf("invalid filter %q (expected key=value)", pair)
		}
		filters[key] = value
	}
	return filters, nil
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table", "json", "yaml":
		return format, nil
	default:
		return "", eris.Errorf("unsupported format %q (table, json, yaml)", format)
	}
}
