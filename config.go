package localhake

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/localhake/localhake/site"
)

// Config holds the runtime settings of the preview server. Site identity
// lives in site.Config and is not configurable here.
type Config struct {
	Addr         string        `mapstructure:"ADDR"`
	DatabasePath string        `mapstructure:"DATABASE_PATH"`
	ContentDir   string        `mapstructure:"CONTENT_DIR"`
	CacheTTL     time.Duration `mapstructure:"CACHE_TTL"`
	LogLevel     string        `mapstructure:"LOG_LEVEL"`

	// LinkAPIRate is the number of /api/links requests allowed per client IP
	// per minute.
	LinkAPIRate int `mapstructure:"LINK_API_RATE"`
}

const envPrefix = "LOCALHAKE"

// LoadConfig reads runtime settings from LOCALHAKE_* environment variables,
// falling back to defaults.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetDefault("ADDR", ":3000")
	v.SetDefault("DATABASE_PATH", "data/site.db")
	v.SetDefault("CONTENT_DIR", "content")
	v.SetDefault("CACHE_TTL", 5*time.Minute)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LINK_API_RATE", 60)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LinkAPIRate <= 0 {
		c.LinkAPIRate = 60
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithViews replaces the default page templates.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// WithLogger sets the logger used for request and error logging.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithSite overrides the site identity. Used by tests; production always
// runs with site.Default().
func WithSite(s site.Config) Option {
	return func(a *App) {
		a.Site = s
	}
}

// WithStore uses an already opened store instead of opening DatabasePath.
func WithStore(s *Store) Option {
	return func(a *App) {
		a.Store = s
	}
}
