package panel

import (
	"strings"
	"testing"
)

func TestDefaultComplete(t *testing.T) {
	l := Default()

	selectors := map[string]string{
		"UserField":     l.UserField,
		"PassField":     l.PassField,
		"LoginButton":   l.LoginButton,
		"OtpField":      l.OtpField,
		"OtpSubmit":     l.OtpSubmit,
		"LandingMarker": l.LandingMarker,
		"CertField":     l.CertField,
		"KeyField":      l.KeyField,
		"SaveButton":    l.SaveButton,
		"SuccessBanner": l.SuccessBanner,
		"ErrorBanner":   l.ErrorBanner,
		"Fingerprint":   l.Fingerprint,
	}
	for name, sel := range selectors {
		if sel == "" {
			t.Errorf("default layout is missing %s", name)
		}
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	merged := base.Merge(Layout{
		SaveButton: `#btn-uploadText-sendText`,
	})

	if merged.SaveButton != `#btn-uploadText-sendText` {
		t.Errorf("override not applied: %s", merged.SaveButton)
	}
	if merged.UserField != base.UserField {
		t.Errorf("unset override should keep base value, got %s", merged.UserField)
	}
}

func TestURLs(t *testing.T) {
	l := Default()

	if got := l.LoginURL("https://panel.example.com/"); got != "https://panel.example.com/?login_language=en-US" {
		t.Errorf("unexpected login URL: %s", got)
	}
	if got := l.ProductsURL("https://panel.example.com"); got != "https://panel.example.com/produkte.php" {
		t.Errorf("unexpected products URL: %s", got)
	}
}

func TestRowSelectors(t *testing.T) {
	l := Default()

	row := l.ProductRow("Hosting0000")
	if !strings.HasPrefix(row, "//tr") || !strings.Contains(row, "'Hosting0000'") {
		t.Errorf("unexpected product row selector: %s", row)
	}

	row = l.DomainRow("example.com")
	if !strings.Contains(row, "'example.com'") {
		t.Errorf("unexpected domain row selector: %s", row)
	}
}

func TestXPathLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"it's", `"it's"`},
		{`a'b"c`, `concat('a', "'", 'b"c')`},
	}
	for _, tt := range tests {
		if got := xpathLiteral(tt.in); got != tt.want {
			t.Errorf("xpathLiteral(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestInstalledCertScript(t *testing.T) {
	js := InstalledCertScript()
	if !strings.Contains(js, "data-cert-fingerprint") {
		t.Errorf("script should probe the fingerprint element")
	}
	if !strings.Contains(js, "sslBootstrap(") {
		t.Errorf("script should fall back to the inline bootstrap blob")
	}
}
