package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultSymbols is the fixed watch list. It is not read from files or flags.
var DefaultSymbols = []string{"AAPL", "TSLA", "MSFT", "NVDA", "GOOGL"}

// MaxSymbols matches the number of embeds a single webhook message may carry.
const MaxSymbols = 10

// ErrWebhookMissing is returned by Validate when no webhook endpoint is configured.
var ErrWebhookMissing = errors.New("discord.webhook_url is required (set DISCORD_WEBHOOK_URL)")

// Provider names accepted by data_source.provider.
const (
	ProviderYahoo     = "yahoo"
	ProviderFinanceGo = "financego"
	ProviderREST      = "rest"
)

// Config holds all application configuration.
type Config struct {
	Discord struct {
		WebhookURL string `yaml:"webhook_url"`
		Username   string `yaml:"username"`
	} `yaml:"discord"`
	DataSource struct {
		Provider     string `yaml:"provider"`
		BaseURL      string `yaml:"base_url"`
		APIKey       string `yaml:"api_key"`
		LookbackDays int    `yaml:"lookback_days"`
	} `yaml:"data_source"`
	Report struct {
		Logos     *bool `yaml:"logos"`
		RangeDays int   `yaml:"range_days"`
	} `yaml:"report"`
	Schedule struct {
		Cron     string `yaml:"cron"`
		Timezone string `yaml:"timezone"`
	} `yaml:"schedule"`
	Proxy  string `yaml:"proxy"`
	DryRun bool   `yaml:"dry_run"`

	Symbols []string `yaml:"-"`
}

// Load reads config from a YAML file, then .env, then environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	// Environment variable overrides
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Discord.WebhookURL = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("BARS_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("BARS_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("DRY_RUN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DryRun = b
		}
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if len(c.Symbols) == 0 {
		c.Symbols = append([]string(nil), DefaultSymbols...)
	}
	if c.Discord.Username == "" {
		c.Discord.Username = "Stock Assistant"
	}
	c.DataSource.Provider = strings.ToLower(strings.TrimSpace(c.DataSource.Provider))
	if c.DataSource.Provider == "" {
		if c.DataSource.BaseURL != "" {
			c.DataSource.Provider = ProviderREST
		} else {
			c.DataSource.Provider = ProviderYahoo
		}
	}
	if c.DataSource.LookbackDays == 0 {
		c.DataSource.LookbackDays = 90
	}
	if c.Report.Logos == nil {
		on := true
		c.Report.Logos = &on
	}
	if c.Report.RangeDays == 0 {
		c.Report.RangeDays = 20
	}
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "0 30 21 * * 1-5"
	}
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = "America/New_York"
	}
}

// LogosEnabled reports whether per-symbol icons should be looked up.
func (c *Config) LogosEnabled() bool {
	return c.Report.Logos == nil || *c.Report.Logos
}

// Validate checks that all required fields are set. A missing webhook is
// fatal unless the run is a dry run.
func (c *Config) Validate() error {
	if !c.DryRun {
		if c.Discord.WebhookURL == "" {
			return ErrWebhookMissing
		}
		u, err := url.Parse(c.Discord.WebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("discord.webhook_url must be an absolute http(s) URL")
		}
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("at least one symbol is required")
	}
	if len(c.Symbols) > MaxSymbols {
		return fmt.Errorf("at most %d symbols fit in one report, got %d", MaxSymbols, len(c.Symbols))
	}
	switch c.DataSource.Provider {
	case ProviderYahoo, ProviderFinanceGo:
	case ProviderREST:
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("unknown data_source.provider %q", c.DataSource.Provider)
	}
	if c.DataSource.LookbackDays < 50 {
		return fmt.Errorf("data_source.lookback_days must be at least 50")
	}
	if c.Report.RangeDays < 0 {
		return fmt.Errorf("report.range_days must not be negative")
	}
	return nil
}
