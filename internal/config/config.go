package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	API      APIConfig      `yaml:"api" mapstructure:"api"`
	Auth     AuthConfig     `yaml:"auth" mapstructure:"auth"`
	BulkEdit BulkEditConfig `yaml:"bulk_edit" mapstructure:"bulk_edit"`
	Health   HealthConfig   `yaml:"health" mapstructure:"health"`
	SEO      SEOConfig      `yaml:"seo" mapstructure:"seo"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// APIConfig configures the YouTube Data and Analytics endpoints.
type APIConfig struct {
	DataBaseURL      string  `yaml:"data_base_url" mapstructure:"data_base_url"`
	AnalyticsBaseURL string  `yaml:"analytics_base_url" mapstructure:"analytics_base_url"`
	TimeoutSecs      int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	PageSize         int     `yaml:"page_size" mapstructure:"page_size"`
	RatePerSec       float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	RateBurst        int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// AuthConfig configures the OAuth client and credential store.
type AuthConfig struct {
	ClientID        string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret    string `yaml:"client_secret" mapstructure:"client_secret"`
	CredentialsPath string `yaml:"credentials_path" mapstructure:"credentials_path"`
	CallbackPort    int    `yaml:"callback_port" mapstructure:"callback_port"`
}

// BulkEditConfig configures the bulk search/replace command.
type BulkEditConfig struct {
	MaxCandidates int `yaml:"max_candidates" mapstructure:"max_candidates"`
}

// HealthConfig holds the health-check alert thresholds.
type HealthConfig struct {
	ViralMultiplier       float64 `yaml:"viral_multiplier" mapstructure:"viral_multiplier"`
	EngagementDropPct     float64 `yaml:"engagement_drop_pct" mapstructure:"engagement_drop_pct"`
	SubscriberSpikeFactor float64 `yaml:"subscriber_spike_factor" mapstructure:"subscriber_spike_factor"`
}

// SEOConfig holds the SEO scoring thresholds.
type SEOConfig struct {
	TitleMin int `yaml:"title_min" mapstructure:"title_min"`
	TitleMax int `yaml:"title_max" mapstructure:"title_max"`
	DescMin  int `yaml:"desc_min" mapstructure:"desc_min"`
	TagsMin  int `yaml:"tags_min" mapstructure:"tags_min"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// CredentialsFile returns the path of the stored OAuth grant, resolving the
// default location under the user config dir when unset.
func (c AuthConfig) CredentialsFile() string {
	if c.CredentialsPath != "" {
		return c.CredentialsPath
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".tubectl-credentials.json")
	}
	return filepath.Join(dir, "tubectl", "credentials.json")
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "tubectl"))
	}

	// Environment
	v.SetEnvPrefix("TUBECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("api.data_base_url", "https://www.googleapis.com/youtube/v3")
	v.SetDefault("api.analytics_base_url", "https://youtubeanalytics.googleapis.com/v2")
	v.SetDefault("api.timeout_secs", 30)
	v.SetDefault("api.page_size", 50)
	v.SetDefault("api.rate_per_sec", 5)
	v.SetDefault("api.rate_burst", 5)
	v.SetDefault("auth.callback_port", 9876)
	v.SetDefault("bulk_edit.max_candidates", 200)
	v.SetDefault("health.viral_multiplier", 5.0)
	v.SetDefault("health.engagement_drop_pct", -25.0)
	v.SetDefault("health.subscriber_spike_factor", 3.0)
	v.SetDefault("seo.title_min", 30)
	v.SetDefault("seo.title_max", 70)
	v.SetDefault("seo.desc_min", 200)
	v.SetDefault("seo.tags_min", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
