package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	defaultServiceName   = "org.mpris.MediaPlayer2.spotify"
	defaultSearchBaseURL = "https://spotify-search-api-test.herokuapp.com"
	defaultHTTPTimeout   = 10 // seconds
	defaultAppName       = "Spotify Notify"
	defaultBackend       = BackendDBus
	defaultIconSize      = 256
	envPrefix            = "MPRISCTL"
)

// Notification backends
const (
	BackendDBus       = "dbus"
	BackendNotifySend = "notify-send"
)

// Options carries the command-line values that take part in loading
type Options struct {
	// Path is an explicit config file; when empty the default location is tried
	Path string
	// ServiceName overrides the configured bus name when non-empty
	ServiceName string
}

// AppConfig holds application configuration
type AppConfig struct {
	ServiceName  string             `mapstructure:"service_name"`
	Search       SearchConfig       `mapstructure:"search"`
	HTTP         HTTPConfig         `mapstructure:"http"`
	Notification NotificationConfig `mapstructure:"notification"`
	Artwork      ArtworkConfig      `mapstructure:"artwork"`
}

// SearchConfig contains track search service settings
type SearchConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// HTTPConfig contains settings shared by the HTTP clients
type HTTPConfig struct {
	Timeout int `mapstructure:"timeout"` // in seconds
}

// NotificationConfig contains desktop notification settings
type NotificationConfig struct {
	AppName string `mapstructure:"app_name"`
	Backend string `mapstructure:"backend"`
}

// ArtworkConfig controls the icon written for notifications
type ArtworkConfig struct {
	IconSize int    `mapstructure:"icon_size"`
	TempDir  string `mapstructure:"temp_dir"`
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/mprisctl/config.toml
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mprisctl", "config.toml")
}

// NewAppConfig loads configuration from defaults, an optional TOML file and
// MPRISCTL_* environment variables, in increasing order of precedence.
// A non-empty Options.ServiceName wins over all of them.
func NewAppConfig(logger *zap.Logger, fs afero.Fs, opts Options) (*AppConfig, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("toml")

	v.SetDefault("service_name", defaultServiceName)
	v.SetDefault("search.base_url", defaultSearchBaseURL)
	v.SetDefault("http.timeout", defaultHTTPTimeout)
	v.SetDefault("notification.app_name", defaultAppName)
	v.SetDefault("notification.backend", defaultBackend)
	v.SetDefault("artwork.icon_size", defaultIconSize)
	v.SetDefault("artwork.temp_dir", os.TempDir())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := opts.Path
	if path == "" {
		// The default file is optional
		if candidate := DefaultConfigPath(); candidate != "" {
			if exists, _ := afero.Exists(fs, candidate); exists {
				path = candidate
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if opts.ServiceName != "" {
		cfg.ServiceName = opts.ServiceName
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Configuration loaded",
		zap.String("file", path),
		zap.String("serviceName", cfg.ServiceName),
		zap.String("searchURL", cfg.Search.BaseURL),
		zap.String("notificationBackend", cfg.Notification.Backend))

	return &cfg, nil
}

// Validate checks the values that cannot be defaulted sensibly
func (c *AppConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name must not be empty")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %d", c.HTTP.Timeout)
	}
	if c.Artwork.IconSize <= 0 {
		return fmt.Errorf("artwork.icon_size must be positive, got %d", c.Artwork.IconSize)
	}
	switch c.Notification.Backend {
	case BackendDBus, BackendNotifySend:
	default:
		return fmt.Errorf("unknown notification backend: %q", c.Notification.Backend)
	}
	return nil
}

// GetServiceName returns the bus name of the controlled player
func (c *AppConfig) GetServiceName() string {
	return c.ServiceName
}

// GetAppName returns the application name shown on notifications
func (c *AppConfig) GetAppName() string {
	return c.Notification.AppName
}

// GetHTTPTimeout returns the HTTP timeout as a time.Duration
func (c *AppConfig) GetHTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.Timeout) * time.Second
}
