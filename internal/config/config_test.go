package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ksyq12/certpanel/internal/errors"
)

// setRequiredEnv sets the minimum environment for a valid config and points
// HOME at an empty temp dir so a developer's settings file can't leak in.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CP_USER", "12345")
	t.Setenv("CP_PASS", "secret")
	t.Setenv("CP_PRODUCT_ID", "Hosting0000")
	t.Setenv("CP_DOMAIN", "example.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BaseURL != "https://www.customercontrolpanel.de" {
		t.Errorf("unexpected default base URL: %s", cfg.BaseURL)
	}
	if cfg.CertFile != "/data/cert.pem" || cfg.KeyFile != "/data/key.pem" {
		t.Errorf("unexpected default material paths: %s %s", cfg.CertFile, cfg.KeyFile)
	}
	if cfg.RunTimeout != 5*time.Minute {
		t.Errorf("unexpected default run timeout: %v", cfg.RunTimeout)
	}
	if !cfg.Headless {
		t.Error("headless should default to true")
	}
	if cfg.Layout.UserField == "" {
		t.Error("layout should default to panel.Default()")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CP_BASE_URL", "https://panel.test")
	t.Setenv("CP_NAV_TIMEOUT", "10s")
	t.Setenv("CP_HEADLESS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BaseURL != "https://panel.test" {
		t.Errorf("env override ignored: %s", cfg.BaseURL)
	}
	if cfg.NavTimeout != 10*time.Second {
		t.Errorf("duration parse failed: %v", cfg.NavTimeout)
	}
	if cfg.Headless {
		t.Error("CP_HEADLESS=false ignored")
	}
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CP_USER", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load should fail without CP_USER")
	}
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("missing required value should be INVALID_INPUT, got %v", err)
	}
}

func TestSettingsFile(t *testing.T) {
	setRequiredEnv(t)

	home := os.Getenv("HOME")
	dir := filepath.Join(home, ".config", "certpanel")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	settings := "base_url: https://mirror.panel.test\nverify_timeout: 90s\nlayout:\n  save_button: '#btn-save'\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(settings), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.BaseURL != "https://mirror.panel.test" {
		t.Errorf("settings file base_url not applied: %s", cfg.BaseURL)
	}
	if cfg.VerifyTimeout != 90*time.Second {
		t.Errorf("settings file verify_timeout not applied: %v", cfg.VerifyTimeout)
	}
	if cfg.Layout.SaveButton != "#btn-save" {
		t.Errorf("layout override not applied: %s", cfg.Layout.SaveButton)
	}
	if cfg.Layout.UserField == "" {
		t.Error("unset layout fields should keep defaults")
	}
}

func TestSettingsFileInvalid(t *testing.T) {
	setRequiredEnv(t)

	home := os.Getenv("HOME")
	dir := filepath.Join(home, ".config", "certpanel")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if err == nil {
		t.Fatal("Load should fail on an unparseable settings file")
	}
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}
