// Package config loads the certpanel run configuration.
//
// Configuration is environment-first, matching how the tool runs in a
// container: credentials, OTP seed, target product/domain, and certificate
// file paths all come from CP_* environment variables. A .env file in the
// working directory is loaded when present (local development convenience,
// never required). An optional YAML settings file can override non-secret
// values such as the panel base URL, timeouts, and panel selectors; secrets
// are only ever read from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ksyq12/certpanel/internal/errors"
	"github.com/ksyq12/certpanel/internal/logger"
	"github.com/ksyq12/certpanel/internal/panel"
)

// Config holds everything a single run needs.
type Config struct {
	// Credentials and target. Never logged.
	Username  string `env:"CP_USER" yaml:"-"`
	Password  string `env:"CP_PASS" yaml:"-"`
	OtpSecret string `env:"CP_OTP_SECRET" yaml:"-"`

	ProductID string `env:"CP_PRODUCT_ID" yaml:"product_id"`
	Domain    string `env:"CP_DOMAIN" yaml:"domain"`

	BaseURL string `env:"CP_BASE_URL" envDefault:"https://www.customercontrolpanel.de" yaml:"base_url"`

	// Certificate material sources. "-" means stdin.
	CertFile string `env:"CP_CERT_FILE" envDefault:"/data/cert.pem" yaml:"cert_file"`
	KeyFile  string `env:"CP_KEY_FILE" envDefault:"/data/key.pem" yaml:"key_file"`

	// Timeouts. Every blocking point in the run is bounded by one of these;
	// RunTimeout caps the whole invocation.
	RunTimeout    time.Duration `env:"CP_RUN_TIMEOUT" envDefault:"5m" yaml:"run_timeout"`
	NavTimeout    time.Duration `env:"CP_NAV_TIMEOUT" envDefault:"30s" yaml:"nav_timeout"`
	OtpWait       time.Duration `env:"CP_OTP_WAIT" envDefault:"10s" yaml:"otp_wait"`
	VerifyTimeout time.Duration `env:"CP_VERIFY_TIMEOUT" envDefault:"60s" yaml:"verify_timeout"`

	// Browser options.
	Headless       bool   `env:"CP_HEADLESS" envDefault:"true" yaml:"headless"`
	ScreenshotPath string `env:"CP_SCREENSHOT" yaml:"screenshot_path"`

	// Panel layout, overridable per selector from the settings file.
	Layout panel.Layout `env:"-" yaml:"layout"`
}

// settingsDir is the settings file location under the user home directory.
const settingsDir = ".config/certpanel"
const settingsFile = "config.yaml"

// SettingsPath returns the optional settings file path.
func SettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, settingsDir, settingsFile), nil
}

// Load reads configuration from the environment, applying .env and the
// settings file when they exist. The result is validated; a missing or
// malformed required value is a classified INVALID_INPUT error.
func Load() (*Config, error) {
	// Ignore a missing .env; any other read error is worth surfacing.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env: %v", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("failed to parse environment: %v", err))
	}

	if err := cfg.applySettingsFile(); err != nil {
		return nil, err
	}
	cfg.Layout = panel.Default().Merge(cfg.Layout)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applySettingsFile overlays the optional YAML settings file. Absence is
// fine; a present-but-unparseable file is an error, silently ignoring it
// would mask operator typos.
func (c *Config) applySettingsFile() error {
	path, err := SettingsPath()
	if err != nil {
		logger.Debug("Skipping settings file: %v", err)
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.InvalidInput(fmt.Sprintf("failed to read settings file %s: %v", path, err))
	}

	// The file only overrides what it sets, so unmarshal over a zero value
	// and overlay non-empty fields.
	overrides := &Config{}
	if err := yaml.Unmarshal(data, overrides); err != nil {
		return errors.InvalidInput(fmt.Sprintf("failed to parse settings file %s: %v", path, err))
	}
	c.overlay(overrides)
	logger.Debug("Applied settings file %s", path)
	return nil
}

func (c *Config) overlay(o *Config) {
	if o.ProductID != "" {
		c.ProductID = o.ProductID
	}
	if o.Domain != "" {
		c.Domain = o.Domain
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.CertFile != "" {
		c.CertFile = o.CertFile
	}
	if o.KeyFile != "" {
		c.KeyFile = o.KeyFile
	}
	if o.RunTimeout != 0 {
		c.RunTimeout = o.RunTimeout
	}
	if o.NavTimeout != 0 {
		c.NavTimeout = o.NavTimeout
	}
	if o.OtpWait != 0 {
		c.OtpWait = o.OtpWait
	}
	if o.VerifyTimeout != 0 {
		c.VerifyTimeout = o.VerifyTimeout
	}
	if o.ScreenshotPath != "" {
		c.ScreenshotPath = o.ScreenshotPath
	}
	c.Layout = c.Layout.Merge(o.Layout)
}

// Validate checks required fields. The OTP seed is deliberately not
// required here: accounts may have 2FA disabled. Seed syntax is validated
// by the otp package before any navigation happens.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"CP_USER", c.Username},
		{"CP_PASS", c.Password},
		{"CP_PRODUCT_ID", c.ProductID},
		{"CP_DOMAIN", c.Domain},
	}
	for _, r := range required {
		if r.value == "" {
			return errors.InvalidInput(fmt.Sprintf("missing required configuration: %s", r.name))
		}
	}

	if c.RunTimeout <= 0 || c.NavTimeout <= 0 || c.VerifyTimeout <= 0 {
		return errors.InvalidInput("timeouts must be positive")
	}
	return nil
}
