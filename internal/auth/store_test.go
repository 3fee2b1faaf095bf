package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrant() *Grant {
	return &Grant{
		Token:        "access-token",
		RefreshToken: "refresh-token",
		TokenURI:     Endpoint.TokenURL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Scopes:       []string{ScopeReadonly, ScopeAnalyticsReadonly},
		Expiry:       time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "nested", "credentials.json"))
	require.NoError(t, store.Save(testGrant()))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, testGrant(), got)

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_MissingFile(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	got, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, store.Save(testGrant()))
	require.NoError(t, store.Clear())

	got, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, got)

	// Clearing twice is not an error.
	assert.NoError(t, store.Clear())
}
