// Package upload installs certificate material on a hosting product's SSL
// settings page and confirms it took effect.
//
// The workflow is idempotent and verification-driven: if the installed
// fingerprint already matches the local certificate nothing is submitted,
// and success after a submission is only ever concluded from the observed
// fingerprint, never from the absence of an error banner. The panel's UI
// can lag or fail silently; an unverified run must not report success.
package upload

import (
	"context"
	"time"

	"github.com/ksyq12/certpanel/internal/browser"
	"github.com/ksyq12/certpanel/internal/certs"
	"github.com/ksyq12/certpanel/internal/errors"
	"github.com/ksyq12/certpanel/internal/logger"
	"github.com/ksyq12/certpanel/internal/panel"
)

// Outcome is the terminal result of a successful run.
type Outcome string

// Success outcomes. Failures are classified errors, not outcomes.
const (
	// OutcomeApplied means the certificate was submitted and its
	// fingerprint was observed installed.
	OutcomeApplied Outcome = "applied"

	// OutcomeAlreadyCurrent means the installed certificate already
	// matched and nothing was submitted.
	OutcomeAlreadyCurrent Outcome = "already-current"
)

// Target identifies which product's SSL slot to update.
type Target struct {
	ProductID string
	Domain    string
}

// maxSubmitAttempts allows one full submit+verify retry on timeout, to
// absorb a single slow save without masking genuine failures. Explicit
// rejections are never retried.
const maxSubmitAttempts = 2

// bannerWait bounds the rejection banner check during verification.
const bannerWait = 2 * time.Second

// Workflow performs one certificate installation on one authenticated page.
type Workflow struct {
	page     browser.Page
	layout   panel.Layout
	baseURL  string
	target   Target
	material *certs.Material

	navTimeout    time.Duration
	verifyTimeout time.Duration
	pollInterval  time.Duration
}

// New creates a Workflow. The page must already be authenticated and the
// material already validated.
func New(page browser.Page, layout panel.Layout, baseURL string, target Target, material *certs.Material, navTimeout, verifyTimeout time.Duration) *Workflow {
	return &Workflow{
		page:          page,
		layout:        layout,
		baseURL:       baseURL,
		target:        target,
		material:      material,
		navTimeout:    navTimeout,
		verifyTimeout: verifyTimeout,
		pollInterval:  2 * time.Second,
	}
}

// Run executes the full workflow: resolve target, idempotency check,
// submit, verify. Every failure is a classified error.
func (w *Workflow) Run(ctx context.Context) (Outcome, error) {
	if err := w.resolveTarget(ctx); err != nil {
		return "", err
	}

	installed, err := w.installedFingerprint(ctx)
	if err != nil {
		return "", err
	}

	want := w.material.Fingerprint()
	if certs.SameFingerprint(installed, want) {
		// Re-uploading an identical certificate can trigger a needless
		// service restart on the hosting side.
		logger.Info("Installed certificate already matches (%s)", want)
		return OutcomeAlreadyCurrent, nil
	}
	logger.InfoFields("certificate update needed", map[string]interface{}{
		"installed": displayFingerprint(installed),
		"new":       want,
	})

	for attempt := 1; attempt <= maxSubmitAttempts; attempt++ {
		if err := w.submit(ctx); err != nil {
			return "", err
		}

		err := w.verify(ctx, want)
		if err == nil {
			logger.Info("Certificate %s installed and verified", want)
			return OutcomeApplied, nil
		}
		if !errors.Is(err, errors.ErrVerificationTimeout) {
			return "", err
		}
		if attempt < maxSubmitAttempts {
			logger.Warn("Installation not confirmed in time, retrying submit once")
		}
	}

	return "", errors.Wrap(errors.CodeVerificationTimeout, "verify installation", nil)
}

// Check resolves the target and compares fingerprints without submitting
// anything. Returns the installed fingerprint (empty when none) and
// whether it matches the local material.
func (w *Workflow) Check(ctx context.Context) (string, bool, error) {
	if err := w.resolveTarget(ctx); err != nil {
		return "", false, err
	}
	installed, err := w.installedFingerprint(ctx)
	if err != nil {
		return "", false, err
	}
	return installed, certs.SameFingerprint(installed, w.material.Fingerprint()), nil
}

// resolveTarget navigates from the products overview to the SSL settings
// form for the target product and domain. A missing product or domain is a
// configuration error, fatal and never retried.
func (w *Workflow) resolveTarget(ctx context.Context) error {
	const step = "resolve target product"

	if err := w.page.Navigate(ctx, w.layout.ProductsURL(w.baseURL)); err != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}

	productRow := w.layout.ProductRow(w.target.ProductID)
	found, err := w.page.Exists(ctx, productRow, w.navTimeout)
	if err != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}
	if !found {
		logger.Error("Product %s not found on products page", w.target.ProductID)
		return errors.Wrap(errors.CodeTargetNotFound, step, nil)
	}
	if err := w.page.Click(ctx, productRow); err != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}
	if err := w.page.WaitNavigation(ctx, w.navTimeout); err != nil && ctx.Err() != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}

	domainRow := w.layout.DomainRow(w.target.Domain)
	found, err = w.page.Exists(ctx, domainRow, w.navTimeout)
	if err != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}
	if !found {
		logger.Error("Domain %s not listed under product %s", w.target.Domain, w.target.ProductID)
		return errors.Wrap(errors.CodeTargetNotFound, step, nil)
	}
	if err := w.page.Click(ctx, domainRow); err != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}
	if err := w.page.WaitNavigation(ctx, w.navTimeout); err != nil && ctx.Err() != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}

	logger.Debug("Resolved SSL settings page for %s / %s", w.target.ProductID, w.target.Domain)
	return nil
}

// installedFingerprint reads the currently installed certificate's
// fingerprint from the settings page. Empty means no certificate.
func (w *Workflow) installedFingerprint(ctx context.Context) (string, error) {
	var fp string
	if err := w.page.Evaluate(ctx, panel.InstalledCertScript(), &fp); err != nil {
		return "", errors.Wrap(errors.CodeSessionError, "read installed fingerprint", err)
	}
	return fp, nil
}

// submit fills the certificate and key fields and triggers save.
func (w *Workflow) submit(ctx context.Context) error {
	const step = "submit certificate"
	logger.Info("Submitting certificate for %s", w.target.Domain)

	if err := w.page.Fill(ctx, w.layout.CertField, w.material.CertificatePEM); err != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}
	if err := w.page.Fill(ctx, w.layout.KeyField, w.material.PrivateKeyPEM); err != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}
	if err := w.page.Click(ctx, w.layout.SaveButton); err != nil {
		return errors.Wrap(errors.CodeSessionError, step, err)
	}
	return nil
}

// verify polls the page until the installed fingerprint equals want, an
// explicit rejection banner appears, or the verification budget runs out.
func (w *Workflow) verify(ctx context.Context, want string) error {
	const step = "verify installation"
	deadline := time.Now().Add(w.verifyTimeout)

	for {
		rejected, err := w.page.Exists(ctx, w.layout.ErrorBanner, bannerWait)
		if err != nil {
			return errors.Wrap(errors.CodeSessionError, step, err)
		}
		if rejected {
			return errors.Wrap(errors.CodeRejected, step, nil)
		}

		installed, err := w.installedFingerprint(ctx)
		if err != nil {
			return err
		}
		if certs.SameFingerprint(installed, want) {
			return nil
		}

		if time.Now().After(deadline) {
			return errors.Wrap(errors.CodeVerificationTimeout, step, nil)
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(errors.CodeSessionError, step, ctx.Err())
		case <-time.After(w.pollInterval):
		}
	}
}

func displayFingerprint(fp string) string {
	if fp == "" {
		return "(none)"
	}
	return fp
}
