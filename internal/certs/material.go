// Package certs handles the certificate/key pair this tool installs.
//
// Material is read once at startup, validated before any browser session
// exists, and held only in memory. Identity comparisons between the local
// certificate and whatever the panel reports use SHA-256 fingerprints over
// the leaf DER, never full PEM text.
package certs

import (
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"strings"
	"time"

	"github.com/ksyq12/certpanel/internal/errors"
)

// PEM block types accepted for the private key.
var keyBlockTypes = map[string]bool{
	"PRIVATE KEY":     true, // PKCS#8
	"RSA PRIVATE KEY": true, // PKCS#1
	"EC PRIVATE KEY":  true, // SEC 1
}

// Material is the certificate/key pair to install. Both fields are
// complete PEM documents; the certificate may include chain certificates,
// the leaf must come first.
type Material struct {
	CertificatePEM string
	PrivateKeyPEM  string

	leaf *x509.Certificate
}

// New validates both PEM documents and returns the material. Validation
// failures are INVALID_INPUT: the run must fail here, before a login is
// wasted on material that can never be submitted.
func New(certPEM, keyPEM string) (*Material, error) {
	leaf, err := parseLeaf(certPEM)
	if err != nil {
		return nil, err
	}
	if err := validateKey(keyPEM); err != nil {
		return nil, err
	}
	return &Material{
		CertificatePEM: certPEM,
		PrivateKeyPEM:  keyPEM,
		leaf:           leaf,
	}, nil
}

// parseLeaf decodes the first PEM block and parses it as an X.509
// certificate.
func parseLeaf(certPEM string) (*x509.Certificate, error) {
	if strings.TrimSpace(certPEM) == "" {
		return nil, errors.InvalidInput("certificate PEM is empty")
	}
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil {
		return nil, errors.InvalidInput("certificate PEM contains no PEM block")
	}
	if block.Type != "CERTIFICATE" {
		return nil, errors.InvalidInput(fmt.Sprintf("certificate PEM starts with %q block, expected CERTIFICATE", block.Type))
	}
	leaf, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("certificate PEM is not parseable: %v", err))
	}
	return leaf, nil
}

// validateKey checks the private key document without fully parsing the
// key: the panel consumes the PEM text as-is, so structural checks suffice.
func validateKey(keyPEM string) error {
	if strings.TrimSpace(keyPEM) == "" {
		return errors.InvalidInput("private key PEM is empty")
	}
	block, _ := pem.Decode([]byte(keyPEM))
	if block == nil {
		return errors.InvalidInput("private key PEM contains no PEM block")
	}
	if !keyBlockTypes[block.Type] {
		return errors.InvalidInput(fmt.Sprintf("unrecognized private key block type %q", block.Type))
	}
	if len(block.Bytes) == 0 {
		return errors.InvalidInput("private key block is empty")
	}
	return nil
}

// Fingerprint returns the SHA-256 digest of the leaf certificate as
// uppercase colon-separated hex, e.g. "AA:BB:...".
func (m *Material) Fingerprint() string {
	sum := sha256.Sum256(m.leaf.Raw)
	return formatFingerprint(sum[:])
}

// Leaf returns the parsed leaf certificate.
func (m *Material) Leaf() *x509.Certificate {
	return m.leaf
}

// Info is the human-readable summary shown by the inspect command.
type Info struct {
	Subject     string    `json:"subject"`
	Issuer      string    `json:"issuer"`
	DNSNames    []string  `json:"dns_names"`
	NotBefore   time.Time `json:"not_before"`
	NotAfter    time.Time `json:"not_after"`
	Fingerprint string    `json:"fingerprint"`
}

// Info summarizes the leaf certificate.
func (m *Material) Info() Info {
	return Info{
		Subject:     m.leaf.Subject.String(),
		Issuer:      m.leaf.Issuer.String(),
		DNSNames:    m.leaf.DNSNames,
		NotBefore:   m.leaf.NotBefore,
		NotAfter:    m.leaf.NotAfter,
		Fingerprint: m.Fingerprint(),
	}
}

// InspectPEM summarizes a certificate PEM without requiring the key,
// for offline inspection.
func InspectPEM(certPEM string) (Info, error) {
	leaf, err := parseLeaf(certPEM)
	if err != nil {
		return Info{}, err
	}
	m := &Material{leaf: leaf}
	return m.Info(), nil
}

// CoversDomain reports whether the leaf is valid for the given domain,
// honoring wildcard SANs.
func (m *Material) CoversDomain(domain string) bool {
	return m.leaf.VerifyHostname(domain) == nil
}

func formatFingerprint(sum []byte) string {
	encoded := strings.ToUpper(hex.EncodeToString(sum))
	parts := make([]string, 0, len(encoded)/2)
	for i := 0; i < len(encoded); i += 2 {
		parts = append(parts, encoded[i:i+2])
	}
	return strings.Join(parts, ":")
}

// NormalizeFingerprint reduces a fingerprint to uppercase hex with no
// separators, so digests rendered by the panel ("aa:bb", "AABB", "aa bb")
// compare equal to ours.
func NormalizeFingerprint(fp string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(fp) {
		if (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SameFingerprint reports whether two rendered fingerprints identify the
// same certificate. Empty strings never match anything: "no certificate
// installed" must not compare equal to "fingerprint unreadable".
func SameFingerprint(a, b string) bool {
	na, nb := NormalizeFingerprint(a), NormalizeFingerprint(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb
}
