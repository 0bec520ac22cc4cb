package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Log    LogConfig
	Report ReportConfig
	Export ExportConfig
	Demo   DemoConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// ReportConfig holds report computation settings
type ReportConfig struct {
	AsOf         string // aging as-of date, "2006-01-02"; empty means today
	BucketBounds []int  // aging band boundaries in days, ascending
	Currency     string // display currency code stamped on exports
}

// ExportConfig holds report export settings
type ExportConfig struct {
	Dir     string   // output directory for rendered reports
	Formats []string // any of: csv, xlsx
}

// DemoConfig holds demo dataset generation settings
type DemoConfig struct {
	Seed      int64
	Days      int
	Customers int
	Suppliers int
}

// asOfLayout is the date format accepted for report.as_of.
const asOfLayout = "2006-01-02"

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with FUELFLOW_ prefix (e.g., FUELFLOW_EXPORT_DIR)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("FUELFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Build config struct
	cfg := &Config{
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Report: ReportConfig{
			AsOf:         v.GetString("report.as_of"),
			BucketBounds: v.GetIntSlice("report.bucket_bounds"),
			Currency:     v.GetString("report.currency"),
		},
		Export: ExportConfig{
			Dir:     v.GetString("export.dir"),
			Formats: v.GetStringSlice("export.formats"),
		},
		Demo: DemoConfig{
			Seed:      v.GetInt64("demo.seed"),
			Days:      v.GetInt("demo.days"),
			Customers: v.GetInt("demo.customers"),
			Suppliers: v.GetInt("demo.suppliers"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		// Report output goes to stdout; keep logs off it
		cfg.Log.Output = "stderr"
	}
	if len(cfg.Report.BucketBounds) == 0 {
		cfg.Report.BucketBounds = []int{30, 60, 90}
	}
	if cfg.Report.Currency == "" {
		cfg.Report.Currency = "PKR"
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "reports"
	}
	if len(cfg.Export.Formats) == 0 {
		cfg.Export.Formats = []string{"csv"}
	}
	if cfg.Demo.Seed == 0 {
		cfg.Demo.Seed = 1
	}
	if cfg.Demo.Days == 0 {
		cfg.Demo.Days = 120
	}
	if cfg.Demo.Customers == 0 {
		cfg.Demo.Customers = 8
	}
	if cfg.Demo.Suppliers == 0 {
		cfg.Demo.Suppliers = 4
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be 'json' or 'console', got %q", c.Log.Format)
	}

	if c.Report.AsOf != "" {
		if _, err := time.Parse(asOfLayout, c.Report.AsOf); err != nil {
			return fmt.Errorf("report.as_of must be formatted as %s: %w", asOfLayout, err)
		}
	}

	prev := 0
	for _, bound := range c.Report.BucketBounds {
		if bound <= prev {
			return fmt.Errorf("report.bucket_bounds must be positive and strictly ascending, got %v", c.Report.BucketBounds)
		}
		prev = bound
	}

	for _, format := range c.Export.Formats {
		switch format {
		case "csv", "xlsx":
		default:
			return fmt.Errorf("export.formats entries must be 'csv' or 'xlsx', got %q", format)
		}
	}

	if c.Demo.Days < 1 {
		return fmt.Errorf("demo.days must be positive, got %d", c.Demo.Days)
	}
	if c.Demo.Customers < 1 {
		return fmt.Errorf("demo.customers must be positive, got %d", c.Demo.Customers)
	}
	if c.Demo.Suppliers < 1 {
		return fmt.Errorf("demo.suppliers must be positive, got %d", c.Demo.Suppliers)
	}

	return nil
}

// AsOfTime returns the configured aging as-of date. The zero time means
// no date was configured and the caller should use today.
func (r *ReportConfig) AsOfTime() (time.Time, error) {
	if r.AsOf == "" {
		return time.Time{}, nil
	}
	return time.Parse(asOfLayout, r.AsOf)
}

// WantsFormat reports whether the given export format is enabled.
func (e *ExportConfig) WantsFormat(format string) bool {
	for _, f := range e.Formats {
		if f == format {
			return true
		}
	}
	return false
}
