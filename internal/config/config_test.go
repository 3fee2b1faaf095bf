package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://www.googleapis.com/youtube/v3", cfg.API.DataBaseURL)
	assert.Equal(t, "https://youtubeanalytics.googleapis.com/v2", cfg.API.AnalyticsBaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSecs)
	assert.Equal(t, 50, cfg.API.PageSize)
	assert.Equal(t, 200, cfg.BulkEdit.MaxCandidates)
	assert.Equal(t, 5.0, cfg.Health.ViralMultiplier)
	assert.Equal(t, -25.0, cfg.Health.EngagementDropPct)
	assert.Equal(t, 3.0, cfg.Health.SubscriberSpikeFactor)
	assert.Equal(t, 30, cfg.SEO.TitleMin)
	assert.Equal(t, 70, cfg.SEO.TitleMax)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TUBECTL_API_PAGE_SIZE", "25")
	t.Setenv("TUBECTL_HEALTH_VIRAL_MULTIPLIER", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.API.PageSize)
	assert.Equal(t, 10.0, cfg.Health.ViralMultiplier)
}

func TestCredentialsFile(t *testing.T) {
	custom := AuthConfig{CredentialsPath: filepath.Join("some", "dir", "creds.json")}
	assert.Equal(t, custom.CredentialsPath, custom.CredentialsFile())

	// Default resolves under the user config dir.
	def := AuthConfig{}
	path := def.CredentialsFile()
	assert.Contains(t, path, "tubectl")
	assert.Contains(t, path, "credentials.json")
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "not-a-level"}))
}
