// Package config provides configuration management for the application.
// It handles loading, validation, and access to configuration values from
// YAML files, environment variables, and command-line flags via viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/ordersift/ordersift/internal/logger"
)

// Source drivers.
const (
	// DriverBrowser acquires the page through a scripted Chrome session.
	DriverBrowser = "browser"
	// DriverStatic fetches an already-rendered snapshot over HTTP or from
	// a file:// path.
	DriverStatic = "static"
)

// Defaults applied when the config file and environment leave values unset.
const (
	DefaultStatus      = "ALL_ORDERS"
	DefaultMaxRecords  = 500
	DefaultTimeout     = 30 * time.Second
	DefaultScrollSteps = 6
	DefaultScrollPause = 500 * time.Millisecond
	DefaultCSVPath     = "awaiting_shipment_items.csv"
	DefaultTitleWidth  = 80
	DefaultOrdersURL   = "https://www.ebay.com/sh/ord/"
)

// Config represents the application configuration.
type Config struct {
	// App holds application-level settings.
	App AppConfig `mapstructure:"app"`
	// Logger holds logger configuration.
	Logger logger.Config `mapstructure:"logger"`
	// Scrape holds extraction-run settings.
	Scrape ScrapeConfig `mapstructure:"scrape"`
	// Output holds sink settings.
	Output OutputConfig `mapstructure:"output"`
	// Sources lists the accounts/sessions to scrape, in run order.
	Sources []Source `mapstructure:"sources"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ScrapeConfig holds extraction-run settings.
type ScrapeConfig struct {
	// OrdersURL is the seller-orders page the browser driver navigates to.
	OrdersURL string `mapstructure:"orders_url"`
	// Status is the orders status filter applied to the page URL, e.g.
	// AWAITING_SHIPMENT or ALL_ORDERS.
	Status string `mapstructure:"status"`
	// MaxRecords caps records per source run; anchors beyond the cap are
	// not processed.
	MaxRecords int `mapstructure:"max_records"`
	// Timeout bounds page acquisition per source.
	Timeout time.Duration `mapstructure:"timeout"`
	// Parallel runs source sessions concurrently.
	Parallel bool `mapstructure:"parallel"`
	// Filter configures the optional title keyword filter.
	Filter FilterConfig `mapstructure:"filter"`
	// Scroll configures the lazy-load scroll pass.
	Scroll ScrollConfig `mapstructure:"scroll"`
}

// FilterConfig configures the optional title keyword filter.
type FilterConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Keywords []string `mapstructure:"keywords"`
}

// ScrollConfig configures the scroll pass that forces lazy-loaded rows in.
type ScrollConfig struct {
	Steps int           `mapstructure:"steps"`
	Pause time.Duration `mapstructure:"pause"`
}

// OutputConfig holds sink settings.
type OutputConfig struct {
	// CSVPath is where the delimited file is written; empty disables it.
	CSVPath string `mapstructure:"csv_path"`
	// Sort applies the readability sort (order number, then item id) at
	// the sink only.
	Sort bool `mapstructure:"sort"`
	// TitleWidth truncates titles in the console table; CSV is unaffected.
	TitleWidth int `mapstructure:"title_width"`
}

// Source is one independently-scraped account/session.
type Source struct {
	// Name tags every record the source produces.
	Name string `mapstructure:"name"`
	// Driver selects the acquisition collaborator: browser or static.
	Driver string `mapstructure:"driver"`
	// URL overrides the orders URL for this source. Required for static
	// sources; optional for browser sources.
	URL string `mapstructure:"url"`
	// ProfileDir is the Chrome user-data directory, so logins persist
	// between runs. Browser driver only.
	ProfileDir string `mapstructure:"profile_dir"`
	// Headless runs the browser without a window. Leave false for sources
	// that may need an interactive login.
	Headless bool `mapstructure:"headless"`
}

// Load builds the configuration from the given viper instance, applying
// defaults and validating the result.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "ordersift"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "production"
	}
	if cfg.Scrape.OrdersURL == "" {
		cfg.Scrape.OrdersURL = DefaultOrdersURL
	}
	if cfg.Scrape.Status == "" {
		cfg.Scrape.Status = DefaultStatus
	}
	if cfg.Scrape.MaxRecords == 0 {
		cfg.Scrape.MaxRecords = DefaultMaxRecords
	}
	if cfg.Scrape.Timeout == 0 {
		cfg.Scrape.Timeout = DefaultTimeout
	}
	if cfg.Scrape.Scroll.Steps == 0 {
		cfg.Scrape.Scroll.Steps = DefaultScrollSteps
	}
	if cfg.Scrape.Scroll.Pause == 0 {
		cfg.Scrape.Scroll.Pause = DefaultScrollPause
	}
	if cfg.Output.CSVPath == "" {
		cfg.Output.CSVPath = DefaultCSVPath
	}
	if cfg.Output.TitleWidth == 0 {
		cfg.Output.TitleWidth = DefaultTitleWidth
	}
	for i := range cfg.Sources {
		if cfg.Sources[i].Driver == "" {
			cfg.Sources[i].Driver = DriverBrowser
		}
	}
}

// Validate validates the configuration. An empty source list is allowed
// here so inspection commands still run; commands that need sources check
// for ErrNoSources themselves.
func (c *Config) Validate() error {
	if c.Scrape.MaxRecords < 0 {
		return fmt.Errorf("%w: max_records %d", ErrInvalidMaxRecords, c.Scrape.MaxRecords)
	}
	if c.Scrape.Filter.Enabled && len(c.Scrape.Filter.Keywords) == 0 {
		return ErrFilterWithoutKeywords
	}
	for i := range c.Sources {
		if err := c.Sources[i].validate(); err != nil {
			return fmt.Errorf("source %q: %w", c.Sources[i].Name, err)
		}
	}
	return nil
}

func (s *Source) validate() error {
	if s.Name == "" {
		return ErrSourceNameRequired
	}
	switch s.Driver {
	case DriverBrowser:
		// ProfileDir optional: a throwaway profile still works, the
		// operator just logs in every run.
	case DriverStatic:
		if s.URL == "" {
			return ErrStaticSourceURLRequired
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, s.Driver)
	}
	return nil
}

// PageURL returns the orders page URL for a source, applying the status
// filter for browser sources that do not override the URL outright.
func (c *Config) PageURL(src Source) string {
	if src.URL != "" {
		return src.URL
	}
	return c.Scrape.OrdersURL + "?filter=status:" + c.Scrape.Status
}
