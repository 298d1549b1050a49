package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ksyq12/certpanel/internal/errors"
	"github.com/ksyq12/certpanel/internal/logger"
	"github.com/ksyq12/certpanel/internal/output"
)

var (
	jsonOutput bool
	verbose    bool
	version    = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "certpanel",
	Short: "Control-panel certificate installer",
	Long: `certpanel installs an externally issued TLS certificate on a hosting
product through the provider's web control panel.

The panel has no API, so certpanel drives a headless browser through
login (including TOTP-based 2FA), navigates to the product's SSL
settings, submits the certificate/key pair, and verifies the installed
certificate fingerprint afterwards. Runs are idempotent: when the
installed certificate already matches, nothing is submitted.

Configuration comes from CP_* environment variables (CP_USER, CP_PASS,
CP_OTP_SECRET, CP_PRODUCT_ID, CP_DOMAIN, CP_CERT_FILE, CP_KEY_FILE),
with an optional settings file for panel layout overrides.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits with the classified status for
// the failure category, so schedulers can tell a bad certificate from a
// flaky panel.
func Execute() {
	// Initialize logger based on verbose flag (parsed by cobra)
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		output.Error("%s", err)
		os.Exit(errors.ExitCode(err))
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
}
