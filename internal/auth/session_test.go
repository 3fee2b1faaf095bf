package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorops/tubectl/internal/yt"
)

func TestNewSession_NoGrant(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	_, err := NewSession(context.Background(), store)
	require.Error(t, err)
	assert.True(t, yt.IsAuth(err))
	assert.Contains(t, err.Error(), "tubectl login")
}

func TestSession_Scopes(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, store.Save(testGrant()))

	sess, err := NewSession(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, testGrant().Scopes, sess.Scopes())
	assert.False(t, sess.HasMonetaryScope())
	assert.NotNil(t, sess.HTTPClient())
}

func TestSession_MonetaryScope(t *testing.T) {
	t.Parallel()

	grant := testGrant()
	grant.Scopes = append(grant.Scopes, ScopeMonetaryReadonly)

	store := NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, store.Save(grant))

	sess, err := NewSession(context.Background(), store)
	require.NoError(t, err)
	assert.True(t, sess.HasMonetaryScope())
}
