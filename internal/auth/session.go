package auth

import (
	"context"
	"net/http"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/creatorops/tubectl/internal/yt"
)

// OAuth scopes requested on login. The monetary scope unlocks revenue metrics
// and is only requested with --monetary.
const (
	ScopeReadonly          = "https://www.googleapis.com/auth/youtube.readonly"
	ScopeForceSSL          = "https://www.googleapis.com/auth/youtube.force-ssl"
	ScopeAnalyticsReadonly = "https://www.googleapis.com/auth/yt-analytics.readonly"
	ScopeMonetaryReadonly  = "https://www.googleapis.com/auth/yt-analytics-monetary.readonly"
)

// Endpoint is Google's OAuth 2.0 endpoint.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

// Session is an authenticated capability over the stored grant. It exposes an
// HTTP client that attaches and refreshes the access token, and the scope set
// the grant was issued with.
type Session struct {
	scopes []string
	client *http.Client
}

// NewSession builds a Session from the stored grant. Returns a yt.AuthError
// when no grant exists, so callers surface the re-authentication hint.
func NewSession(ctx context.Context, store *Store) (*Session, error) {
	grant, err := store.Load()
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return nil, &yt.AuthError{Reason: "not authenticated, run 'tubectl login' first"}
	}

	conf := &oauth2.Config{
		ClientID:     grant.ClientID,
		ClientSecret: grant.ClientSecret,
		Endpoint:     Endpoint,
		Scopes:       grant.Scopes,
	}
	tok := &oauth2.Token{
		AccessToken:  grant.Token,
		RefreshToken: grant.RefreshToken,
		Expiry:       grant.Expiry,
		TokenType:    "Bearer",
	}

	src := &persistingSource{
		inner: conf.TokenSource(ctx, tok),
		store: store,
		grant: grant,
		last:  tok,
	}
	return &Session{
		scopes: grant.Scopes,
		client: oauth2.NewClient(ctx, src),
	}, nil
}

// HTTPClient returns the authenticated HTTP client.
func (s *Session) HTTPClient() *http.Client { return s.client }

// Scopes returns the granted scope set.
func (s *Session) Scopes() []string { return s.scopes }

// HasMonetaryScope reports whether the grant permits revenue-class metrics.
func (s *Session) HasMonetaryScope() bool {
	return slices.Contains(s.scopes, ScopeMonetaryReadonly)
}

// persistingSource saves refreshed access tokens back to the store so the
// next invocation does not redo the refresh round trip.
type persistingSource struct {
	mu    sync.Mutex
	inner oauth2.TokenSource
	store *Store
	grant *Grant
	last  *oauth2.Token
}

func (p *persistingSource) Token() (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tok, err := p.inner.Token()
	if err != nil {
		return nil, &yt.AuthError{Reason: "token refresh failed, run 'tubectl login' to re-authenticate", Err: err}
	}

	if tok.AccessToken != p.last.AccessToken {
		p.grant.Token = tok.AccessToken
		p.grant.Expiry = tok.Expiry
		if tok.RefreshToken != "" {
			p.grant.RefreshToken = tok.RefreshToken
		}
		if err := p.store.Save(p.grant); err != nil {
			zap.L().Warn("auth: could not persist refreshed token", zap.Error(err))
		}
		p.last = tok
	}
	return tok, nil
}

// GrantFromToken converts an exchanged oauth2 token into a storable Grant.
func GrantFromToken(conf *oauth2.Config, tok *oauth2.Token) *Grant {
	return &Grant{
		Token:        tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenURI:     conf.Endpoint.TokenURL,
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		Scopes:       conf.Scopes,
		Expiry:       tok.Expiry,
	}
}
