package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ksyq12/certpanel/internal/output"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare the installed certificate with the local one",
	Long: `Check logs in, reads the fingerprint of the certificate currently
installed on the target product, and compares it with the local
certificate file. Nothing is submitted.

Examples:
  certpanel check
  certpanel check --json`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}

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

	installed, current, err := workflow.Check(ctx)
	if err != nil {
		captureFailure(ctx, sess, cfg)
		return err
	}

	result := map[string]interface{}{
		"success":     true,
		"current":     current,
		"product_id":  cfg.ProductID,
		"domain":      cfg.Domain,
		"installed":   installed,
		"fingerprint": material.Fingerprint(),
	}
	if jsonOutput {
		return output.JSON(result)
	}
	if current {
		output.Success("Installed certificate for %s is current", cfg.Domain)
	} else if installed == "" {
		output.Warn("No certificate fingerprint reported for %s", cfg.Domain)
	} else {
		output.Warn("Installed certificate for %s differs from %s", cfg.Domain, cfg.CertFile)
		output.Print("  Installed: %s", installed)
		output.Print("  Local:     %s", material.Fingerprint())
	}
	return nil
}
