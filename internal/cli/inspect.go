package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ksyq12/certpanel/internal/certs"
	"github.com/ksyq12/certpanel/internal/errors"
	"github.com/ksyq12/certpanel/internal/output"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [cert-file]",
	Short: "Show a summary of a certificate file",
	Long: `Inspect parses a PEM certificate file offline and prints its subject,
issuer, validity window, SAN entries, and SHA-256 fingerprint. No
browser session is started.

When no file argument is given, the configured CP_CERT_FILE is read.
Use "-" to read from stdin.

Examples:
  certpanel inspect
  certpanel inspect /data/cert.pem
  cat cert.pem | certpanel inspect -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := deps.LoadConfig()
		if err != nil {
			return err
		}
		path = cfg.CertFile
	}

	certPEM, err := deps.Source.Read(path)
	if err != nil {
		return errors.InvalidInput(err.Error())
	}
	info, err := certs.InspectPEM(certPEM)
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(info)
	}

	headers := []string{"Field", "Value"}
	rows := [][]string{
		{"Subject", info.Subject},
		{"Issuer", info.Issuer},
		{"DNS names", strings.Join(info.DNSNames, ", ")},
		{"Not before", info.NotBefore.Format("2006-01-02 15:04 MST")},
		{"Not after", info.NotAfter.Format("2006-01-02 15:04 MST")},
		{"Fingerprint", info.Fingerprint},
	}
	output.Table(headers, rows)
	return nil
}
