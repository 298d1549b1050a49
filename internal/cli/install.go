package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ksyq12/certpanel/internal/output"
	"github.com/ksyq12/certpanel/internal/upload"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the certificate on the configured product",
	Long: `Install the configured certificate/key pair on the target product's
SSL slot, verifying afterwards that the panel reports the new
certificate's fingerprint.

The run is idempotent: when the installed certificate already matches,
nothing is submitted and the command still succeeds.

Exit status: 0 when the certificate was applied or already current;
2 invalid input, 3 login rejected, 4 one-time password rejected,
5 session error, 6 target not found, 7 verification timeout,
8 submission rejected.

Examples:
  certpanel install
  certpanel install --json`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}

	// All input validation happens before the browser starts: a run that
	// can never succeed must not waste a login.
	material, err := loadMaterial(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RunTimeout)
	defer cancel()

	sess, workflow, err := openTargetPage(ctx, cfg, material)
	if err != nil {
		return err
	}
	defer sess.Close()

	outcome, err := workflow.Run(ctx)
	if err != nil {
		captureFailure(ctx, sess, cfg)
		return err
	}

	result := map[string]interface{}{
		"success":     true,
		"outcome":     string(outcome),
		"product_id":  cfg.ProductID,
		"domain":      cfg.Domain,
		"fingerprint": material.Fingerprint(),
	}
	switch outcome {
	case upload.OutcomeAlreadyCurrent:
		return outputResult(result, "Certificate for %s already current", cfg.Domain)
	default:
		if !jsonOutput {
			output.Print("  Fingerprint: %s", material.Fingerprint())
		}
		return outputResult(result, "Certificate installed for %s", cfg.Domain)
	}
}
