// Package config loads job settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all settings shared by the snapshot jobs.
type Config struct {
	// Output
	OutputDir string
	AssetsDir string

	// Upstreams
	OpenF1BaseURL    string
	ErgastBaseURL    string
	ErgastMirrorURL  string
	CalendarURL      string
	DriversPageURL   string
	UserAgent        string
	RequestTimeout   time.Duration
	MaxRetryAttempts int

	// Failure-report mail (optional; disabled when the API key is empty).
	SendGridAPIKey string
	ReportTo       string
	ReportFrom     string

	Debug bool
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("OUTPUT_DIR", "public/data")
	v.SetDefault("ASSETS_DIR", "public")
	v.SetDefault("OPENF1_BASE_URL", "https://api.openf1.org/v1")
	v.SetDefault("ERGAST_BASE_URL", "https://api.jolpi.ca/ergast/f1")
	v.SetDefault("ERGAST_MIRROR_URL", "https://ergast.com/api/f1")
	v.SetDefault("CALENDAR_URL", "https://ics.ecal.com/ecal-sub/formula-1.ics")
	v.SetDefault("DRIVERS_PAGE_URL", "https://www.formula1.com/en/drivers")
	v.SetDefault("USER_AGENT", "f1snap/1.0 (standings widget; contact@mmredman.dev)")
	v.SetDefault("REQUEST_TIMEOUT", "12s")
	v.SetDefault("MAX_RETRY_ATTEMPTS", 4)
	v.SetDefault("DEBUG", false)

	cfg := &Config{
		OutputDir:        v.GetString("OUTPUT_DIR"),
		AssetsDir:        v.GetString("ASSETS_DIR"),
		OpenF1BaseURL:    v.GetString("OPENF1_BASE_URL"),
		ErgastBaseURL:    v.GetString("ERGAST_BASE_URL"),
		ErgastMirrorURL:  v.GetString("ERGAST_MIRROR_URL"),
		CalendarURL:      v.GetString("CALENDAR_URL"),
		DriversPageURL:   v.GetString("DRIVERS_PAGE_URL"),
		UserAgent:        v.GetString("USER_AGENT"),
		RequestTimeout:   v.GetDuration("REQUEST_TIMEOUT"),
		MaxRetryAttempts: v.GetInt("MAX_RETRY_ATTEMPTS"),
		SendGridAPIKey:   v.GetString("SENDGRID_API_KEY"),
		ReportTo:         v.GetString("REPORT_TO"),
		ReportFrom:       v.GetString("REPORT_FROM"),
		Debug:            v.GetBool("DEBUG"),
	}

	cfg.validate()
	return cfg
}

// MailEnabled reports whether failure-report mail is configured.
func (c *Config) MailEnabled() bool {
	return c.SendGridAPIKey != "" && c.ReportTo != "" && c.ReportFrom != ""
}

func (c *Config) validate() {
	if c.OutputDir == "" {
		log.Fatal("config: OUTPUT_DIR must not be empty")
	}
	if c.RequestTimeout <= 0 {
		log.Fatal("config: REQUEST_TIMEOUT must be positive")
	}
	if c.MaxRetryAttempts < 1 {
		log.Fatal("config: MAX_RETRY_ATTEMPTS must be at least 1")
	}
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (cron uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}
