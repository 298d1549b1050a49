// Package panel centralizes knowledge about the hosting control panel's
// page structure: URL paths, element selectors, and the script used to read
// the installed certificate's fingerprint.
//
// The panel is an external UI this tool does not control. Keeping every
// selector in one Layout value means selector drift after a panel redesign
// is a one-file fix (or a settings-file override, without recompiling).
package panel

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed scripts/installed_cert.js
var installedCertScript string

// InstalledCertScript returns the JavaScript expression that evaluates to
// the installed certificate's fingerprint on the SSL settings page, or an
// empty string when no certificate is installed.
func InstalledCertScript() string {
	return installedCertScript
}

// Layout describes where things live in the control panel UI. Selectors are
// CSS unless they start with "//", in which case they are XPath (needed for
// "row containing text" lookups the panel's markup forces on us).
type Layout struct {
	// Paths relative to the panel base URL.
	LoginPath    string `yaml:"login_path"`
	ProductsPath string `yaml:"products_path"`

	// Login form.
	UserField   string `yaml:"user_field"`
	PassField   string `yaml:"pass_field"`
	LoginButton string `yaml:"login_button"`
	LoginError  string `yaml:"login_error"`

	// 2FA challenge. OtpField doubles as the challenge detector: if it never
	// appears, the account has 2FA disabled.
	OtpField  string `yaml:"otp_field"`
	OtpSubmit string `yaml:"otp_submit"`
	OtpError  string `yaml:"otp_error"`

	// Marker visible only after successful authentication.
	LandingMarker string `yaml:"landing_marker"`

	// SSL settings page.
	CertField     string `yaml:"cert_field"`
	KeyField      string `yaml:"key_field"`
	SaveButton    string `yaml:"save_button"`
	SuccessBanner string `yaml:"success_banner"`
	ErrorBanner   string `yaml:"error_banner"`
	Fingerprint   string `yaml:"fingerprint"`
}

// Default returns the layout matching the current panel build.
func Default() Layout {
	return Layout{
		LoginPath:    "/?login_language=en-US",
		ProductsPath: "/produkte.php",

		UserField:   `input[placeholder="Customer number"]`,
		PassField:   `input[placeholder="Password"]`,
		LoginButton: `form#login button[type="submit"]`,
		LoginError:  `.alert-danger`,

		OtpField:  `input[placeholder="TAN"]`,
		OtpSubmit: `form#token button[type="submit"]`,
		OtpError:  `form#token .alert-danger`,

		LandingMarker: `a[href*="logout"]`,

		CertField:     `textarea[name="certificateText"]`,
		KeyField:      `textarea[name="privateKeyText"]`,
		SaveButton:    `#ssl-save`,
		SuccessBanner: `.alert-success`,
		ErrorBanner:   `.alert-danger`,
		Fingerprint:   `[data-cert-fingerprint]`,
	}
}

// Merge overlays non-empty fields of other on top of l. Used to apply
// settings-file overrides without forcing the file to restate every selector.
func (l Layout) Merge(other Layout) Layout {
	merged := l
	overlay := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	overlay(&merged.LoginPath, other.LoginPath)
	overlay(&merged.ProductsPath, other.ProductsPath)
	overlay(&merged.UserField, other.UserField)
	overlay(&merged.PassField, other.PassField)
	overlay(&merged.LoginButton, other.LoginButton)
	overlay(&merged.LoginError, other.LoginError)
	overlay(&merged.OtpField, other.OtpField)
	overlay(&merged.OtpSubmit, other.OtpSubmit)
	overlay(&merged.OtpError, other.OtpError)
	overlay(&merged.LandingMarker, other.LandingMarker)
	overlay(&merged.CertField, other.CertField)
	overlay(&merged.KeyField, other.KeyField)
	overlay(&merged.SaveButton, other.SaveButton)
	overlay(&merged.SuccessBanner, other.SuccessBanner)
	overlay(&merged.ErrorBanner, other.ErrorBanner)
	overlay(&merged.Fingerprint, other.Fingerprint)
	return merged
}

// LoginURL returns the absolute login page URL.
func (l Layout) LoginURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + l.LoginPath
}

// ProductsURL returns the absolute products overview URL.
func (l Layout) ProductsURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + l.ProductsPath
}

// ProductRow returns the XPath selecting the SSL settings link inside the
// products table row for the given product. XPath because the product id is
// plain row text, not an attribute.
func (l Layout) ProductRow(productID string) string {
	return fmt.Sprintf(`//tr[contains(., %s)]//a[contains(@href, 'ssl')]`, xpathLiteral(productID))
}

// DomainRow returns the XPath selecting the configure link inside the SSL
// settings row for the given domain.
func (l Layout) DomainRow(domain string) string {
	return fmt.Sprintf(`//tr[contains(., %s)]//a[contains(@class, 'ssl-configure')]`, xpathLiteral(domain))
}

// xpathLiteral quotes s as an XPath string literal. XPath 1.0 has no escape
// syntax, so values containing both quote kinds need concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, `'`) {
		return `'` + s + `'`
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, `'`)
	for i, p := range parts {
		parts[i] = `'` + p + `'`
	}
	return `concat(` + strings.Join(parts, `, "'", `) + `)`
}
